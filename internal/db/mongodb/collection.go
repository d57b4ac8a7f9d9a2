package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/enayetsyl/industry-grade-project-format/internal/db"
	"github.com/enayetsyl/industry-grade-project-format/internal/domain/query"
)

// Collection is a typed query.Source over a Store. The spec names the collection.
type Collection[T any] struct {
	store *Store
}

// NewCollection creates a typed source backed by s.
func NewCollection[T any](s *Store) *Collection[T] {
	return &Collection[T]{store: s}
}

// Find runs a plain find, or an aggregation when the spec expands references.
func (c *Collection[T]) Find(ctx context.Context, spec query.Spec) ([]T, error) {
	q, err := Translate(spec)
	if err != nil {
		return nil, &db.Error{Op: db.OpFind, Err: err}
	}
	coll := c.store.db.Collection(spec.Collection)

	var (
		cursor *mongo.Cursor
		op     = db.OpFind
	)
	if q.UsesPipeline() {
		op = db.OpAggregate
		cursor, err = coll.Aggregate(ctx, q.Pipeline)
	} else {
		opts := options.Find()
		if len(q.Sort) > 0 {
			opts.SetSort(q.Sort)
		}
		if len(q.Projection) > 0 {
			opts.SetProjection(q.Projection)
		}
		if q.Skip > 0 {
			opts.SetSkip(q.Skip)
		}
		if q.Limit > 0 {
			opts.SetLimit(q.Limit)
		}
		cursor, err = coll.Find(ctx, q.Filter, opts)
	}
	if err != nil {
		return nil, &db.Error{Op: op, Err: err}
	}
	defer cursor.Close(ctx) //nolint:errcheck // All already drained the cursor

	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, &db.Error{Op: db.OpDecode, Err: err}
	}
	return out, nil
}

// Count counts documents matching the spec's predicates.
func (c *Collection[T]) Count(ctx context.Context, spec query.Spec) (int64, error) {
	q, err := Translate(spec.CountSpec())
	if err != nil {
		return 0, &db.Error{Op: db.OpCount, Err: err}
	}
	n, err := c.store.db.Collection(spec.Collection).CountDocuments(ctx, q.Filter)
	if err != nil {
		return 0, &db.Error{Op: db.OpCount, Err: err}
	}
	return n, nil
}
