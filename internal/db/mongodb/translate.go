package mongodb

import (
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/enayetsyl/industry-grade-project-format/internal/db"
	"github.com/enayetsyl/industry-grade-project-format/internal/domain/query"
)

const idField = "_id"

// Query is a spec translated into Mongo terms. Pipeline is set only when the
// spec carries lookups; otherwise Filter and the find options apply.
type Query struct {
	Collection string
	Filter     bson.D
	Sort       bson.D
	Projection bson.D
	Skip       int64
	Limit      int64
	Pipeline   bson.A
}

// UsesPipeline reports whether the query runs as an aggregation.
func (q Query) UsesPipeline() bool { return q.Pipeline != nil }

// ExtJSON renders the query in relaxed Extended JSON, as the shell would run it.
func (q Query) ExtJSON() (string, error) {
	var doc bson.D
	if q.UsesPipeline() {
		doc = bson.D{{Key: "aggregate", Value: q.Collection}, {Key: "pipeline", Value: q.Pipeline}}
	} else {
		doc = bson.D{{Key: "find", Value: q.Collection}, {Key: "filter", Value: q.Filter}}
		if len(q.Sort) > 0 {
			doc = append(doc, bson.E{Key: "sort", Value: q.Sort})
		}
		if len(q.Projection) > 0 {
			doc = append(doc, bson.E{Key: "projection", Value: q.Projection})
		}
		if q.Skip > 0 {
			doc = append(doc, bson.E{Key: "skip", Value: q.Skip})
		}
		if q.Limit > 0 {
			doc = append(doc, bson.E{Key: "limit", Value: q.Limit})
		}
	}
	out, err := bson.MarshalExtJSON(doc, false, false)
	if err != nil {
		return "", fmt.Errorf("render query: %w", err)
	}
	return string(out), nil
}

// Translate converts spec into a Mongo query.
func Translate(spec query.Spec) (Query, error) {
	if f, bad := spec.InvalidField(); bad {
		return Query{}, fmt.Errorf("%w: field %q", db.ErrUnsupported, f)
	}
	filter, err := translateFilter(spec)
	if err != nil {
		return Query{}, err
	}

	q := Query{
		Collection: spec.Collection,
		Filter:     filter,
		Sort:       translateSort(spec.Sort),
		Projection: translateProjection(spec.Projection),
	}
	if spec.Window != nil {
		q.Skip = int64(spec.Window.Skip)
		q.Limit = int64(spec.Window.Limit)
	}
	if len(spec.Lookups) > 0 {
		q.Pipeline = pipeline(q, spec.Lookups)
	}
	return q, nil
}

// pipeline orders stages as $match, lookups, $sort, $skip, $limit, $project.
// Filters run before the lookups so they compare against stored references.
func pipeline(q Query, lookups []query.Lookup) bson.A {
	stages := bson.A{bson.D{{Key: "$match", Value: q.Filter}}}
	for _, l := range lookups {
		stages = append(stages,
			bson.D{{Key: "$lookup", Value: bson.D{
				{Key: "from", Value: l.From},
				{Key: "localField", Value: l.Field},
				{Key: "foreignField", Value: idField},
				{Key: "as", Value: l.Field},
			}}},
			bson.D{{Key: "$unwind", Value: bson.D{
				{Key: "path", Value: "$" + l.Field},
				{Key: "preserveNullAndEmptyArrays", Value: true},
			}}},
		)
	}
	if len(q.Sort) > 0 {
		stages = append(stages, bson.D{{Key: "$sort", Value: q.Sort}})
	}
	if q.Skip > 0 {
		stages = append(stages, bson.D{{Key: "$skip", Value: q.Skip}})
	}
	if q.Limit > 0 {
		stages = append(stages, bson.D{{Key: "$limit", Value: q.Limit}})
	}
	if len(q.Projection) > 0 {
		stages = append(stages, bson.D{{Key: "$project", Value: q.Projection}})
	}
	return stages
}

func translateFilter(spec query.Spec) (bson.D, error) {
	var parts bson.A
	for _, c := range spec.Scope {
		d, err := translateCondition(c)
		if err != nil {
			return nil, err
		}
		parts = append(parts, d)
	}
	if len(spec.Search) > 0 {
		or := make(bson.A, 0, len(spec.Search))
		for _, c := range spec.Search {
			d, err := translateCondition(c)
			if err != nil {
				return nil, err
			}
			or = append(or, d)
		}
		parts = append(parts, bson.D{{Key: "$or", Value: or}})
	}
	for _, c := range spec.Match {
		d, err := translateCondition(c)
		if err != nil {
			return nil, err
		}
		parts = append(parts, d)
	}

	switch len(parts) {
	case 0:
		return bson.D{}, nil
	case 1:
		return parts[0].(bson.D), nil
	}
	return bson.D{{Key: "$and", Value: parts}}, nil
}

func translateCondition(c query.Condition) (bson.D, error) {
	if !query.ValidField(c.Field) {
		return nil, fmt.Errorf("%w: field %q", db.ErrUnsupported, c.Field)
	}
	switch c.Op {
	case query.OpEq:
		return bson.D{{Key: c.Field, Value: toBSON(c.Value())}}, nil
	case query.OpNe:
		return bson.D{{Key: c.Field, Value: bson.D{{Key: "$ne", Value: toBSON(c.Value())}}}}, nil
	case query.OpIn:
		vals := make(bson.A, len(c.Values))
		for i, v := range c.Values {
			vals[i] = toBSON(v)
		}
		return bson.D{{Key: c.Field, Value: bson.D{{Key: "$in", Value: vals}}}}, nil
	case query.OpContains:
		s, ok := c.Value().(string)
		if !ok {
			return nil, fmt.Errorf("%w: contains on %q needs a string", db.ErrUnsupported, c.Field)
		}
		return bson.D{{Key: c.Field, Value: bson.D{
			{Key: "$regex", Value: regexp.QuoteMeta(s)},
			{Key: "$options", Value: "i"},
		}}}, nil
	}
	return nil, fmt.Errorf("%w: operator %q", db.ErrUnsupported, c.Op)
}

// translateSort appends _id ascending unless already a key: Mongo leaves ties
// unordered, and paging needs a total order.
func translateSort(keys []query.SortKey) bson.D {
	if len(keys) == 0 {
		return nil
	}
	d := make(bson.D, 0, len(keys)+1)
	hasID := false
	for _, k := range keys {
		dir := 1
		if k.Descending {
			dir = -1
		}
		d = append(d, bson.E{Key: k.Field, Value: dir})
		hasID = hasID || k.Field == idField
	}
	if !hasID {
		d = append(d, bson.E{Key: idField, Value: 1})
	}
	return d
}

func translateProjection(p query.Projection) bson.D {
	if len(p.Include) > 0 {
		d := make(bson.D, 0, len(p.Include))
		for _, f := range p.Include {
			d = append(d, bson.E{Key: f, Value: 1})
		}
		return d
	}
	if len(p.Exclude) == 0 {
		return nil
	}
	d := make(bson.D, 0, len(p.Exclude))
	for _, f := range p.Exclude {
		d = append(d, bson.E{Key: f, Value: 0})
	}
	return d
}

// toBSON converts identifier values to ObjectIDs when they parse as one.
func toBSON(v any) any {
	id, ok := v.(query.ID)
	if !ok {
		return v
	}
	if oid, err := bson.ObjectIDFromHex(string(id)); err == nil {
		return oid
	}
	return string(id)
}

// toDocument prepares a document for insertion, converting nested identifiers.
func toDocument(v any) any {
	switch x := v.(type) {
	case query.ID:
		return toBSON(x)
	case map[string]any:
		out := make(bson.M, len(x))
		for k, el := range x {
			out[k] = toDocument(el)
		}
		return out
	case []any:
		out := make(bson.A, len(x))
		for i, el := range x {
			out[i] = toDocument(el)
		}
		return out
	}
	return v
}
