package memory

import (
	"context"

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

// Find returns the page described by spec, decoded into T.
func (c *Collection[T]) Find(ctx context.Context, spec query.Spec) ([]T, error) {
	rows, err := c.store.find(ctx, spec)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		v, err := decode[T](row)
		if err != nil {
			return nil, &db.Error{Op: db.OpDecode, Err: err}
		}
		out = append(out, v)
	}
	return out, nil
}

// Count returns the number of documents matching spec's predicates.
func (c *Collection[T]) Count(ctx context.Context, spec query.Spec) (int64, error) {
	return c.store.count(ctx, spec)
}
