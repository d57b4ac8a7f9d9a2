package campus

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/enayetsyl/industry-grade-project-format/internal/domain"
	"github.com/enayetsyl/industry-grade-project-format/internal/domain/campus/field"
	"github.com/enayetsyl/industry-grade-project-format/internal/domain/query"
)

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		def     Definition
		wantErr string
	}{
		{"bad name", Definition{Name: "Students!", Collection: "students"}, "invalid entity name"},
		{"bad collection", Definition{Name: "students", Collection: ""}, "invalid collection"},
		{
			"duplicate field",
			Definition{Name: "x", Collection: "x", Fields: []field.Field{
				field.MustNew("a", field.String), field.MustNew("a", field.Number),
			}},
			"duplicate field",
		},
		{
			"lookup on undeclared field",
			Definition{Name: "x", Collection: "x", Lookups: []query.Lookup{{Field: "dept", From: "depts"}}},
			"must be declared",
		},
		{
			"lookup on non-ref field",
			Definition{
				Name: "x", Collection: "x",
				Fields:  []field.Field{field.MustNew("dept", field.String)},
				Lookups: []query.Lookup{{Field: "dept", From: "depts"}},
			},
			"must be declared",
		},
		{
			"lookup without source",
			Definition{
				Name: "x", Collection: "x",
				Fields:  []field.Field{field.MustNew("dept", field.Ref)},
				Lookups: []query.Lookup{{Field: "dept"}},
			},
			"source collection",
		},
		{"empty search field", Definition{Name: "x", Collection: "x", Search: []string{""}}, "empty searchable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.def)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestEntity_Base(t *testing.T) {
	base := Students.Base()

	if base.Collection != "students" {
		t.Errorf("Collection = %q", base.Collection)
	}
	if len(base.Scope) != 1 || base.Scope[0].Field != DeletedField || base.Scope[0].Op != query.OpNe ||
		base.Scope[0].Value() != true {
		t.Errorf("Scope = %+v, want isDeleted != true", base.Scope)
	}
	want := []query.Lookup{
		{Field: "admissionSemester", From: "academicsemesters"},
		{Field: "academicDepartment", From: "academicdepartments"},
	}
	if !slices.Equal(base.Lookups, want) {
		t.Errorf("Lookups = %+v, want %+v", base.Lookups, want)
	}
}

func TestEntity_SearchableFields(t *testing.T) {
	tests := []struct {
		entity Entity
		want   []string
	}{
		{Students, []string{"email", "name.firstName", "presentAddress"}},
		{Faculties, []string{"email", "id", "contactNo", "emergencyContactNo", "name.firstName", "name.lastName", "name.middleName"}},
		{Admins, []string{"email", "id", "contactNo", "emergencyContactNo", "name.firstName", "name.lastName", "name.middleName"}},
		{Courses, []string{"title", "prefix", "code"}},
	}
	for _, tt := range tests {
		if got := tt.entity.SearchableFields(); !slices.Equal(got, tt.want) {
			t.Errorf("%s: SearchableFields = %v, want %v", tt.entity.Name(), got, tt.want)
		}
	}
}

func TestEntity_AccessorsReturnCopies(t *testing.T) {
	s := Students.SearchableFields()
	s[0] = "mutated"
	l := Students.Lookups()
	l[0].From = "mutated"

	if Students.SearchableFields()[0] != "email" || Students.Lookups()[0].From != "academicsemesters" {
		t.Error("entity state changed through accessor")
	}
}

func TestEntity_Coerce(t *testing.T) {
	tests := []struct {
		entity Entity
		field  string
		raw    string
		want   any
	}{
		{Courses, "code", "101", float64(101)},
		{Courses, "credits", "x", "x"},
		{Courses, "prefix", "CSE", "CSE"},
		{Students, "academicDepartment", "abc", query.ID("abc")},
		{Students, "isDeleted", "true", true},
		{Students, "_id", "abc", query.ID("abc")},
		{Students, "undeclared", "42", "42"},
	}
	for _, tt := range tests {
		if got := tt.entity.Coerce(tt.field, tt.raw); got != tt.want {
			t.Errorf("%s.Coerce(%q, %q) = %#v, want %#v", tt.entity.Name(), tt.field, tt.raw, got, tt.want)
		}
	}
}

func TestEntity_IDPrefix(t *testing.T) {
	if Students.IDPrefix() != "S-" || Faculties.IDPrefix() != "F-" || Admins.IDPrefix() != "A-" {
		t.Error("unexpected person id prefixes")
	}
	if Courses.IDPrefix() != "" {
		t.Errorf("courses prefix = %q, want none", Courses.IDPrefix())
	}
}

func TestRegistry_Lookup(t *testing.T) {
	r := DefaultRegistry()

	for _, name := range []string{"students", "faculties", "admins", "courses"} {
		e, err := r.Lookup(name)
		if err != nil {
			t.Errorf("Lookup(%q): %v", name, err)
			continue
		}
		if e.Name() != name {
			t.Errorf("Lookup(%q).Name() = %q", name, e.Name())
		}
	}

	_, err := r.Lookup("users")
	if !errors.Is(err, domain.ErrUnknownEntity) {
		t.Fatalf("err = %v, want ErrUnknownEntity", err)
	}
	var ue *domain.UnknownEntityError
	if !errors.As(err, &ue) || ue.Name != "users" {
		t.Errorf("err = %#v, want UnknownEntityError{users}", err)
	}
}

func TestRegistry_Duplicate(t *testing.T) {
	if _, err := NewRegistry(Students, Students); err == nil {
		t.Fatal("expected duplicate error")
	}
}

func TestRegistry_AllAndByCollection(t *testing.T) {
	r := DefaultRegistry()

	names := make([]string, 0, 4)
	for _, e := range r.All() {
		names = append(names, e.Name())
	}
	if !slices.Equal(names, []string{"students", "faculties", "admins", "courses"}) {
		t.Errorf("All() = %v", names)
	}

	if e, ok := r.ByCollection("courses"); !ok || e.Name() != "courses" {
		t.Errorf("ByCollection(courses) = %v, %v", e.Name(), ok)
	}
	if _, ok := r.ByCollection("academicsemesters"); ok {
		t.Error("academicsemesters is not listable")
	}
}
