package memory

import (
	"reflect"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/enayetsyl/industry-grade-project-format/internal/domain/query"
)

// normalize deep-copies v into the canonical shapes the store works with:
// map[string]any, []any, string, float64, bool, time.Time and nil.
func normalize(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case string:
		return x
	case query.ID:
		return string(x)
	case bool:
		return x
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int8:
		return float64(x)
	case int16:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case uint:
		return float64(x)
	case uint8:
		return float64(x)
	case uint16:
		return float64(x)
	case uint32:
		return float64(x)
	case uint64:
		return float64(x)
	case time.Time:
		return x.UTC()
	case bson.DateTime:
		return x.Time().UTC()
	case bson.ObjectID:
		return x.Hex()
	case map[string]any:
		return normalizeMap(x)
	case bson.M:
		return normalizeMap(x)
	case bson.D:
		out := make(map[string]any, len(x))
		for _, e := range x {
			out[e.Key] = normalize(e.Value)
		}
		return out
	case []any:
		return normalizeSlice(x)
	case bson.A:
		return normalizeSlice(x)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = normalize(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return v
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = normalize(iter.Value().Interface())
		}
		return out
	case reflect.String:
		return rv.String()
	}
	return v
}

func normalizeMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalize(v)
	}
	return out
}

func normalizeSlice(s []any) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = normalize(v)
	}
	return out
}

// resolve walks a dot path, descending through arrays the way Mongo does.
// It returns every value found; an empty result means the path is missing.
func resolve(v any, path string) []any {
	return walk(v, strings.Split(path, "."))
}

func walk(v any, parts []string) []any {
	if len(parts) == 0 {
		return []any{v}
	}
	switch x := v.(type) {
	case map[string]any:
		child, ok := x[parts[0]]
		if !ok {
			return nil
		}
		return walk(child, parts[1:])
	case []any:
		var out []any
		for _, el := range x {
			out = append(out, walk(el, parts)...)
		}
		return out
	}
	return nil
}

// equal compares two normalized values.
func equal(a, b any) bool {
	switch x := a.(type) {
	case time.Time:
		y, ok := b.(time.Time)
		return ok && x.Equal(y)
	case map[string]any, []any:
		return reflect.DeepEqual(a, b)
	}
	return a == b
}

// matchesValue reports whether any candidate equals want, looking inside arrays.
func matchesValue(candidates []any, want any) bool {
	if want == nil && len(candidates) == 0 {
		return true
	}
	for _, c := range candidates {
		if equal(c, want) {
			return true
		}
		if arr, ok := c.([]any); ok {
			for _, el := range arr {
				if equal(el, want) {
					return true
				}
			}
		}
	}
	return false
}
