package memory

import (
	"fmt"
	"strings"

	"github.com/enayetsyl/industry-grade-project-format/internal/db"
	"github.com/enayetsyl/industry-grade-project-format/internal/domain/query"
)

// predicate is a compiled spec filter: scope AND (any search) AND match.
type predicate func(doc map[string]any) bool

// compile also rejects sort and projection fields the Mongo store would refuse.
func compile(spec query.Spec) (predicate, error) {
	if f, bad := spec.InvalidField(); bad {
		return nil, fmt.Errorf("%w: field %q", db.ErrUnsupported, f)
	}
	scope, err := compileAll(spec.Scope)
	if err != nil {
		return nil, err
	}
	match, err := compileAll(spec.Match)
	if err != nil {
		return nil, err
	}
	search, err := compileAny(spec.Search)
	if err != nil {
		return nil, err
	}
	return func(doc map[string]any) bool {
		return scope(doc) && search(doc) && match(doc)
	}, nil
}

func compileAll(conds []query.Condition) (predicate, error) {
	preds, err := compileEach(conds)
	if err != nil {
		return nil, err
	}
	return func(doc map[string]any) bool {
		for _, p := range preds {
			if !p(doc) {
				return false
			}
		}
		return true
	}, nil
}

// compileAny builds a disjunction; an empty list matches everything.
func compileAny(conds []query.Condition) (predicate, error) {
	preds, err := compileEach(conds)
	if err != nil {
		return nil, err
	}
	return func(doc map[string]any) bool {
		if len(preds) == 0 {
			return true
		}
		for _, p := range preds {
			if p(doc) {
				return true
			}
		}
		return false
	}, nil
}

func compileEach(conds []query.Condition) ([]predicate, error) {
	preds := make([]predicate, 0, len(conds))
	for _, c := range conds {
		p, err := compileCondition(c)
		if err != nil {
			return nil, err
		}
		preds = append(preds, p)
	}
	return preds, nil
}

func compileCondition(c query.Condition) (predicate, error) {
	if !query.ValidField(c.Field) {
		return nil, fmt.Errorf("%w: field %q", db.ErrUnsupported, c.Field)
	}
	switch c.Op {
	case query.OpEq:
		want := normalize(c.Value())
		return func(doc map[string]any) bool {
			return matchesValue(resolve(doc, c.Field), want)
		}, nil
	case query.OpNe:
		want := normalize(c.Value())
		return func(doc map[string]any) bool {
			return !matchesValue(resolve(doc, c.Field), want)
		}, nil
	case query.OpIn:
		wants := make([]any, len(c.Values))
		for i, v := range c.Values {
			wants[i] = normalize(v)
		}
		return func(doc map[string]any) bool {
			found := resolve(doc, c.Field)
			for _, w := range wants {
				if matchesValue(found, w) {
					return true
				}
			}
			return false
		}, nil
	case query.OpContains:
		needle, ok := c.Value().(string)
		if !ok {
			return nil, fmt.Errorf("%w: contains on %q needs a string", db.ErrUnsupported, c.Field)
		}
		needle = strings.ToLower(needle)
		return func(doc map[string]any) bool {
			for _, v := range resolve(doc, c.Field) {
				if containsFold(v, needle) {
					return true
				}
			}
			return false
		}, nil
	}
	return nil, fmt.Errorf("%w: operator %q", db.ErrUnsupported, c.Op)
}

// containsFold matches strings, and strings inside arrays, case-insensitively.
// Non-string values never match, as with a regex against a number.
func containsFold(v any, lowerNeedle string) bool {
	switch x := v.(type) {
	case string:
		return strings.Contains(strings.ToLower(x), lowerNeedle)
	case []any:
		for _, el := range x {
			if s, ok := el.(string); ok && strings.Contains(strings.ToLower(s), lowerNeedle) {
				return true
			}
		}
	}
	return false
}
