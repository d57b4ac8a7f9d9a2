package query

import (
	"net/url"
	"strings"
)

// Control parameter names. Any other key is an equality filter.
const (
	ParamSearchTerm = "searchTerm"
	ParamSort       = "sort"
	ParamLimit      = "limit"
	ParamPage       = "page"
	ParamFields     = "fields"
)

// ReservedNames lists the control parameters never treated as filter fields.
var ReservedNames = []string{ParamSearchTerm, ParamSort, ParamLimit, ParamPage, ParamFields}

// Kind tags the variant held by a Value.
type Kind int

const (
	// Absent means the parameter was not supplied.
	Absent Kind = iota
	// Single holds exactly one string.
	Single
	// List holds several strings (repeated query key).
	List
)

// Value is a decoded query-string value: absent, one string, or a list of strings.
type Value struct {
	kind   Kind
	values []string
}

// String creates a single-string Value.
func String(s string) Value {
	return Value{kind: Single, values: []string{s}}
}

// Strings creates a Value from a list. One element yields a single-string Value,
// zero elements an absent one.
func Strings(ss ...string) Value {
	switch len(ss) {
	case 0:
		return Value{}
	case 1:
		return String(ss[0])
	default:
		cp := make([]string, len(ss))
		copy(cp, ss)
		return Value{kind: List, values: cp}
	}
}

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether the parameter was not supplied.
func (v Value) IsAbsent() bool { return v.kind == Absent }

// First returns the single value, or the first list element.
// Empty string when absent.
func (v Value) First() string {
	if len(v.values) == 0 {
		return ""
	}
	return v.values[0]
}

// All returns a copy of every supplied string.
func (v Value) All() []string {
	if len(v.values) == 0 {
		return nil
	}
	cp := make([]string, len(v.values))
	copy(cp, v.values)
	return cp
}

// Params maps parameter names to decoded values.
type Params map[string]Value

// FromValues converts a decoded query string into Params.
// Keys with no values are dropped.
func FromValues(vals url.Values) Params {
	p := make(Params, len(vals))
	for k, vv := range vals {
		v := Strings(vv...)
		if v.IsAbsent() {
			continue
		}
		p[k] = v
	}
	return p
}

// ParseQuery decodes a raw query string ("a=1&b=2", leading '?' allowed).
func ParseQuery(raw string) (Params, error) {
	vals, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return nil, err //nolint:wrapcheck // url.Error already names the input
	}
	return FromValues(vals), nil
}

// Get returns the value for name, absent if missing.
func (p Params) Get(name string) Value {
	return p[name]
}

// Clone returns a copy that shares no state with p.
func (p Params) Clone() Params {
	cp := make(Params, len(p))
	for k, v := range p {
		cp[k] = Strings(v.values...)
	}
	return cp
}

// Without returns a copy of p minus the given keys.
func (p Params) Without(names ...string) Params {
	cp := p.Clone()
	for _, n := range names {
		delete(cp, n)
	}
	return cp
}

// Values converts Params back into url.Values.
func (p Params) Values() url.Values {
	vals := make(url.Values, len(p))
	for k, v := range p {
		if v.IsAbsent() {
			continue
		}
		vals[k] = v.All()
	}
	return vals
}

// splitList splits a comma-separated parameter, trimming blanks and dropping empties.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
