package campus

import (
	"fmt"

	"github.com/enayetsyl/industry-grade-project-format/internal/domain"
	"github.com/enayetsyl/industry-grade-project-format/internal/domain/campus/field"
	"github.com/enayetsyl/industry-grade-project-format/internal/domain/query"
)

var personSearch = []string{
	"email", "id", "contactNo", "emergencyContactNo",
	"name.firstName", "name.lastName", "name.middleName",
}

func personFields(extra ...field.Field) []field.Field {
	return append([]field.Field{
		field.MustNew("id", field.String),
		field.MustNew("user", field.Ref),
		field.MustNew("gender", field.String),
		field.MustNew("email", field.String),
		field.MustNew("bloodGroup", field.String),
		field.MustNew("designation", field.String),
		field.MustNew(DeletedField, field.Bool),
	}, extra...)
}

// Listable entities.
var (
	Students = MustNew(Definition{
		Name:       "students",
		Collection: CollectionStudents,
		Search:     []string{"email", "name.firstName", "presentAddress"},
		Fields: []field.Field{
			field.MustNew("id", field.String),
			field.MustNew("user", field.Ref),
			field.MustNew("gender", field.String),
			field.MustNew("email", field.String),
			field.MustNew("bloodGroup", field.String),
			field.MustNew("admissionSemester", field.Ref),
			field.MustNew("academicDepartment", field.Ref),
			field.MustNew(DeletedField, field.Bool),
		},
		Lookups: []query.Lookup{
			{Field: "admissionSemester", From: CollectionAcademicSemesters},
			{Field: "academicDepartment", From: CollectionAcademicDepartments},
		},
		IDPrefix: "S-",
	})

	Faculties = MustNew(Definition{
		Name:       "faculties",
		Collection: CollectionFaculties,
		Search:     personSearch,
		Fields:     personFields(field.MustNew("academicDepartment", field.Ref)),
		IDPrefix:   "F-",
	})

	Admins = MustNew(Definition{
		Name:       "admins",
		Collection: CollectionAdmins,
		Search:     personSearch,
		Fields:     personFields(field.MustNew("managementDepartment", field.String)),
		IDPrefix:   "A-",
	})

	Courses = MustNew(Definition{
		Name:       "courses",
		Collection: CollectionCourses,
		Search:     []string{"title", "prefix", "code"},
		Fields: []field.Field{
			field.MustNew("title", field.String),
			field.MustNew("prefix", field.String),
			field.MustNew("code", field.Number),
			field.MustNew("credits", field.Number),
			field.MustNew(DeletedField, field.Bool),
		},
	})
)

// Registry resolves entities by route name.
type Registry struct {
	byName map[string]Entity
	order  []string
}

// NewRegistry indexes entities. Names must be unique.
func NewRegistry(entities ...Entity) (*Registry, error) {
	r := &Registry{byName: make(map[string]Entity, len(entities))}
	for _, e := range entities {
		if _, dup := r.byName[e.Name()]; dup {
			return nil, fmt.Errorf("duplicate entity %q", e.Name())
		}
		r.byName[e.Name()] = e
		r.order = append(r.order, e.Name())
	}
	return r, nil
}

// DefaultRegistry holds students, faculties, admins and courses.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(Students, Faculties, Admins, Courses)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the entity registered under name.
func (r *Registry) Lookup(name string) (Entity, error) {
	e, ok := r.byName[name]
	if !ok {
		return Entity{}, domain.NewUnknownEntity(name)
	}
	return e, nil
}

// ByCollection returns the entity backed by collection, if any.
func (r *Registry) ByCollection(collection string) (Entity, bool) {
	for _, name := range r.order {
		if e := r.byName[name]; e.Collection() == collection {
			return e, true
		}
	}
	return Entity{}, false
}

// All returns the entities in registration order.
func (r *Registry) All() []Entity {
	out := make([]Entity, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}
