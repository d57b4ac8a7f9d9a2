package campus

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/enayetsyl/industry-grade-project-format/internal/domain/campus/field"
	"github.com/enayetsyl/industry-grade-project-format/internal/domain/query"
)

var nameRegex = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// DeletedField marks soft-deleted rows, which list and get never return.
const DeletedField = "isDeleted"

// Definition is the declaration an Entity is validated from.
type Definition struct {
	Name       string
	Collection string
	Search     []string
	Fields     []field.Field
	Lookups    []query.Lookup
	// IDPrefix is prepended to generated business ids ("S-"). Empty disables generation.
	IDPrefix string
}

// Entity describes a listable collection (immutable value object).
type Entity struct {
	name       string
	collection string
	search     query.SearchableFields
	fields     []field.Field
	lookups    []query.Lookup
	idPrefix   string
}

// New validates and creates an Entity.
// Every lookup must target a field declared as field.Ref.
func New(def Definition) (Entity, error) {
	if !nameRegex.MatchString(def.Name) {
		return Entity{}, fmt.Errorf("invalid entity name %q", def.Name)
	}
	if !nameRegex.MatchString(def.Collection) {
		return Entity{}, fmt.Errorf("invalid collection name %q for %s", def.Collection, def.Name)
	}

	seen := make(map[string]bool, len(def.Fields))
	for _, f := range def.Fields {
		if seen[f.Name()] {
			return Entity{}, fmt.Errorf("duplicate field %q in %s", f.Name(), def.Name)
		}
		seen[f.Name()] = true
	}
	for _, l := range def.Lookups {
		if l.From == "" {
			return Entity{}, fmt.Errorf("lookup %q in %s: source collection is required", l.Field, def.Name)
		}
		f, ok := findField(def.Fields, l.Field)
		if !ok || f.FieldType() != field.Ref {
			return Entity{}, fmt.Errorf("lookup %q in %s: field must be declared as %s", l.Field, def.Name, field.Ref)
		}
	}
	for _, s := range def.Search {
		if s == "" {
			return Entity{}, fmt.Errorf("empty searchable field in %s", def.Name)
		}
	}

	return Entity{
		name:       def.Name,
		collection: def.Collection,
		search:     slices.Clone(def.Search),
		fields:     slices.Clone(def.Fields),
		lookups:    slices.Clone(def.Lookups),
		idPrefix:   def.IDPrefix,
	}, nil
}

// MustNew is New for package-level declarations.
func MustNew(def Definition) Entity {
	e, err := New(def)
	if err != nil {
		panic(err)
	}
	return e
}

// Name returns the entity's route name.
func (e Entity) Name() string { return e.name }

// Collection returns the backing collection.
func (e Entity) Collection() string { return e.collection }

// SearchableFields returns the fields searchTerm is matched against.
func (e Entity) SearchableFields() query.SearchableFields { return slices.Clone(e.search) }

// Fields returns the declared field types.
func (e Entity) Fields() []field.Field { return slices.Clone(e.fields) }

// Lookups returns the reference expansions attached to every read.
func (e Entity) Lookups() []query.Lookup { return slices.Clone(e.lookups) }

// IDPrefix returns the business id prefix, empty if the entity has none.
func (e Entity) IDPrefix() string { return e.idPrefix }

// FieldByName looks up a declared field.
func (e Entity) FieldByName(name string) (field.Field, bool) {
	return findField(e.fields, name)
}

// Base returns the scoped starting query: live rows only, references expanded.
func (e Entity) Base() query.Base {
	return query.Base{
		Collection: e.collection,
		Scope:      []query.Condition{query.Ne(DeletedField, true)},
		Lookups:    e.Lookups(),
	}
}

// Coerce converts a raw filter value using the declared field type.
// Undeclared fields compare as strings. It satisfies query.Coercer.
func (e Entity) Coerce(name, raw string) any {
	if name == "_id" {
		return query.ID(raw)
	}
	f, ok := e.FieldByName(name)
	if !ok {
		return raw
	}
	return f.Coerce(raw)
}

func findField(fields []field.Field, name string) (field.Field, bool) {
	for _, f := range fields {
		if f.Name() == name {
			return f, true
		}
	}
	return field.Field{}, false
}
