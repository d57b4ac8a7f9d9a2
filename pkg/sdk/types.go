package campus

import (
	"slices"
	"strconv"
	"strings"

	domcampus "github.com/enayetsyl/industry-grade-project-format/internal/domain/campus"
	"github.com/enayetsyl/industry-grade-project-format/internal/domain/query"
)

// Row types returned by the typed listings.
type (
	Student            = domcampus.Student
	Faculty            = domcampus.Faculty
	Admin              = domcampus.Admin
	Course             = domcampus.Course
	UserName           = domcampus.UserName
	AcademicSemester   = domcampus.AcademicSemester
	AcademicDepartment = domcampus.AcademicDepartment
	PreRequisite       = domcampus.PreRequisite
)

// Document is an untyped row, used by Client.Entity and Client.Seed.
type Document = map[string]any

// Meta describes the page a result belongs to.
type Meta = query.Meta

// Page is one page of rows with its count metadata.
type Page[T any] struct {
	Meta Meta
	Data []T
}

// Query is a typed list request. Zero fields fall back to the server defaults:
// page 1, the configured limit, newest first, all fields except the version key.
type Query struct {
	// SearchTerm matches case-insensitively against the entity's searchable fields.
	SearchTerm string
	// Filter holds exact-match conditions. Several values for one field match any of them.
	// Control names (searchTerm, sort, limit, page, fields) are ignored here.
	Filter map[string][]string
	// Sort keys, "-" prefix for descending.
	Sort   []string
	Page   int
	Limit  int
	Fields []string
}

// params converts q into the raw parameter map the list pipeline consumes.
func (q Query) params() query.Params {
	p := make(query.Params, len(q.Filter)+5)
	for name, vals := range q.Filter {
		if slices.Contains(query.ReservedNames, name) || len(vals) == 0 {
			continue
		}
		p[name] = query.Strings(vals...)
	}
	if q.SearchTerm != "" {
		p[query.ParamSearchTerm] = query.String(q.SearchTerm)
	}
	if len(q.Sort) > 0 {
		p[query.ParamSort] = query.String(strings.Join(q.Sort, ","))
	}
	if q.Page > 0 {
		p[query.ParamPage] = query.String(strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		p[query.ParamLimit] = query.String(strconv.Itoa(q.Limit))
	}
	if len(q.Fields) > 0 {
		p[query.ParamFields] = query.String(strings.Join(q.Fields, ","))
	}
	return p
}
