package memory

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/enayetsyl/industry-grade-project-format/internal/domain/query"
)

// sortDocs orders docs by keys in place. Ties keep insertion order.
func sortDocs(docs []map[string]any, keys []query.SortKey) {
	if len(keys) == 0 {
		return
	}
	slices.SortStableFunc(docs, func(a, b map[string]any) int {
		for _, k := range keys {
			c := compareValues(sortValue(a, k), sortValue(b, k))
			if k.Descending {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
}

// sortValue picks the value an array field sorts by: its smallest element
// ascending, its largest descending.
func sortValue(doc map[string]any, k query.SortKey) any {
	found := resolve(doc, k.Field)
	var flat []any
	for _, v := range found {
		if arr, ok := v.([]any); ok {
			flat = append(flat, arr...)
			continue
		}
		flat = append(flat, v)
	}
	if len(flat) == 0 {
		return nil
	}
	best := flat[0]
	for _, v := range flat[1:] {
		c := compareValues(v, best)
		if (!k.Descending && c < 0) || (k.Descending && c > 0) {
			best = v
		}
	}
	return best
}

// typeRank follows the BSON comparison order for the types the store holds.
func typeRank(v any) int {
	switch v.(type) {
	case nil:
		return 0
	case float64:
		return 1
	case string:
		return 2
	case map[string]any:
		return 3
	case []any:
		return 4
	case bool:
		return 5
	case time.Time:
		return 6
	}
	return 7
}

func compareValues(a, b any) int {
	ra, rb := typeRank(a), typeRank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch x := a.(type) {
	case float64:
		return cmp.Compare(x, b.(float64))
	case string:
		return strings.Compare(x, b.(string))
	case bool:
		y := b.(bool)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		}
		return 1
	case time.Time:
		return x.Compare(b.(time.Time))
	}
	return 0
}
