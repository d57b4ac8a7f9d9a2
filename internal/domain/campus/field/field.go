package field

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/enayetsyl/industry-grade-project-format/internal/domain/query"
)

// Type is the stored type of a filterable field.
type Type string

// Field type constants.
const (
	String Type = "string"
	Number Type = "number"
	Bool   Type = "bool"
	// Ref holds the _id of a document in another collection.
	Ref Type = "ref"
)

// IsValid checks if the field type is supported.
func (t Type) IsValid() bool {
	switch t {
	case String, Number, Bool, Ref:
		return true
	}
	return false
}

// Field is an immutable value object describing a declared entity field.
type Field struct {
	name      string
	fieldType Type
}

// New validates and creates a Field.
// Name must be non-empty, max 64 chars, and must not start with '$'.
func New(name string, ft Type) (Field, error) {
	if name == "" {
		return Field{}, fmt.Errorf("field name is required")
	}
	if len(name) > 64 {
		return Field{}, fmt.Errorf("field name %q too long (max 64)", name)
	}
	if strings.HasPrefix(name, "$") {
		return Field{}, fmt.Errorf("field name %q must not start with '$'", name)
	}
	if !ft.IsValid() {
		return Field{}, fmt.Errorf("invalid field type %q for %q", ft, name)
	}
	return Field{name: name, fieldType: ft}, nil
}

// MustNew is New for static declarations; it panics on invalid input.
func MustNew(name string, ft Type) Field {
	f, err := New(name, ft)
	if err != nil {
		panic(err)
	}
	return f
}

// Name returns the field path.
func (f Field) Name() string { return f.name }

// FieldType returns the field's stored type.
func (f Field) FieldType() Type { return f.fieldType }

// Coerce converts a raw filter string into the value stored for this field.
// Input that does not parse is returned unchanged; it then simply matches nothing.
func (f Field) Coerce(raw string) any {
	switch f.fieldType {
	case Number:
		n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return raw
		}
		return n
	case Bool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return raw
		}
		return b
	case Ref:
		return query.ID(raw)
	default:
		return raw
	}
}
