package query

import (
	"slices"
	"strings"
)

// Op is a condition operator understood by every Source.
type Op string

const (
	// OpEq requires the field to equal the single value.
	OpEq Op = "eq"
	// OpNe requires the field to differ from the single value (missing fields match).
	OpNe Op = "ne"
	// OpIn requires the field to equal any of the values.
	OpIn Op = "in"
	// OpContains requires the field to contain the value as a case-insensitive substring.
	OpContains Op = "contains"
)

// ID marks a value as a document identifier; stores convert it to their native id type.
type ID string

// Condition is a single predicate over a (dot-path) field.
type Condition struct {
	Field  string
	Op     Op
	Values []any
}

// Eq builds an equality condition.
func Eq(field string, v any) Condition {
	return Condition{Field: field, Op: OpEq, Values: []any{v}}
}

// Ne builds an inequality condition.
func Ne(field string, v any) Condition {
	return Condition{Field: field, Op: OpNe, Values: []any{v}}
}

// In builds a set-membership condition.
func In(field string, vs ...any) Condition {
	return Condition{Field: field, Op: OpIn, Values: vs}
}

// Contains builds a case-insensitive substring condition.
func Contains(field, substr string) Condition {
	return Condition{Field: field, Op: OpContains, Values: []any{substr}}
}

// Value returns the first operand, nil if none.
func (c Condition) Value() any {
	if len(c.Values) == 0 {
		return nil
	}
	return c.Values[0]
}

// SortKey orders results by one field.
type SortKey struct {
	Field      string
	Descending bool
}

// ParseSort reads a comma-separated sort list; a leading '-' means descending.
func ParseSort(s string) []SortKey {
	tokens := splitList(s)
	keys := make([]SortKey, 0, len(tokens))
	for _, t := range tokens {
		desc := strings.HasPrefix(t, "-")
		name := strings.TrimSpace(strings.TrimLeft(t, "-+"))
		if name == "" {
			continue
		}
		keys = append(keys, SortKey{Field: name, Descending: desc})
	}
	return keys
}

// SortString renders keys in the store's space-separated form ("-createdAt name").
func SortString(keys []SortKey) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		if k.Descending {
			parts[i] = "-" + k.Field
		} else {
			parts[i] = k.Field
		}
	}
	return strings.Join(parts, " ")
}

// Window selects a page of results. Skip is applied before Limit.
type Window struct {
	Skip  int
	Limit int
}

// Projection restricts the returned fields. Include and Exclude are mutually
// exclusive; Include wins when both are set.
type Projection struct {
	Include []string
	Exclude []string
}

// IsZero reports whether the projection returns every field.
func (p Projection) IsZero() bool {
	return len(p.Include) == 0 && len(p.Exclude) == 0
}

// String renders the store's space-separated selection ("name email" / "-__v").
func (p Projection) String() string {
	if len(p.Include) > 0 {
		return strings.Join(p.Include, " ")
	}
	parts := make([]string, len(p.Exclude))
	for i, f := range p.Exclude {
		parts[i] = "-" + f
	}
	return strings.Join(parts, " ")
}

// Lookup replaces the identifier stored at Field with the referenced document
// from collection From (matched on its _id).
type Lookup struct {
	Field string
	From  string
}

// Base is the already-scoped query a Builder starts from.
type Base struct {
	Collection string
	Scope      []Condition
	Lookups    []Lookup
}

// Spec is an immutable snapshot of an accumulated query, handed to a Source.
type Spec struct {
	Collection string
	Lookups    []Lookup
	// Scope, Search and Match combine as Scope AND (any Search) AND Match.
	Scope      []Condition
	Search     []Condition
	Match      []Condition
	Sort       []SortKey
	Window     *Window
	Projection Projection
}

// ValidField reports whether path names a document field: non-empty
// dot-separated segments, none starting with '$'. Stores reject anything else
// so caller-supplied names never reach them as operators.
func ValidField(path string) bool {
	if path == "" {
		return false
	}
	for seg := range strings.SplitSeq(path, ".") {
		if seg == "" || strings.HasPrefix(seg, "$") {
			return false
		}
	}
	return true
}

// InvalidField returns the first condition, sort or projection field that is
// not a ValidField.
func (s Spec) InvalidField() (string, bool) {
	for _, cs := range [][]Condition{s.Scope, s.Search, s.Match} {
		for _, c := range cs {
			if !ValidField(c.Field) {
				return c.Field, true
			}
		}
	}
	for _, k := range s.Sort {
		if !ValidField(k.Field) {
			return k.Field, true
		}
	}
	for _, f := range slices.Concat(s.Projection.Include, s.Projection.Exclude) {
		if !ValidField(f) {
			return f, true
		}
	}
	return "", false
}

// HasFilter reports whether any predicate narrows the collection.
func (s Spec) HasFilter() bool {
	return len(s.Scope) > 0 || len(s.Search) > 0 || len(s.Match) > 0
}

// CountSpec returns the spec used to count matches: same predicates,
// no ordering, window or projection.
func (s Spec) CountSpec() Spec {
	return Spec{
		Collection: s.Collection,
		Scope:      s.Scope,
		Search:     s.Search,
		Match:      s.Match,
	}
}

// clone deep-copies the slices so snapshots stay independent of the builder.
func (s Spec) clone() Spec {
	cp := s
	cp.Lookups = slices.Clone(s.Lookups)
	cp.Scope = cloneConditions(s.Scope)
	cp.Search = cloneConditions(s.Search)
	cp.Match = cloneConditions(s.Match)
	cp.Sort = slices.Clone(s.Sort)
	if s.Window != nil {
		w := *s.Window
		cp.Window = &w
	}
	cp.Projection = Projection{
		Include: slices.Clone(s.Projection.Include),
		Exclude: slices.Clone(s.Projection.Exclude),
	}
	return cp
}

func cloneConditions(cs []Condition) []Condition {
	if cs == nil {
		return nil
	}
	out := make([]Condition, len(cs))
	for i, c := range cs {
		out[i] = Condition{Field: c.Field, Op: c.Op, Values: slices.Clone(c.Values)}
	}
	return out
}
