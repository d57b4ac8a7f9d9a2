package query

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Source executes specs against a document collection.
type Source[T any] interface {
	Find(ctx context.Context, spec Spec) ([]T, error)
	Count(ctx context.Context, spec Spec) (int64, error)
}

// Meta describes the page a Result belongs to.
type Meta struct {
	Page      int   `json:"page"`
	Limit     int   `json:"limit"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"totalPage"`
}

// NewMeta computes TotalPage from total and limit.
func NewMeta(page, limit int, total int64) Meta {
	m := Meta{Page: page, Limit: limit, Total: total}
	if limit > 0 {
		m.TotalPage = (total + int64(limit) - 1) / int64(limit)
	}
	return m
}

// Result is a materialized page plus its count metadata.
type Result[T any] struct {
	Meta Meta
	Data []T
}

// Execute runs the builder's accumulated query.
func Execute[T any](ctx context.Context, b *Builder[T]) ([]T, error) {
	rows, err := b.src.Find(ctx, b.Spec())
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", b.spec.Collection, err)
	}
	if rows == nil {
		rows = []T{}
	}
	return rows, nil
}

// CountTotal counts every match of the base, search and filter clauses,
// ignoring sort, window and projection.
func CountTotal[T any](ctx context.Context, b *Builder[T]) (Meta, error) {
	total, err := b.src.Count(ctx, b.Spec().CountSpec())
	if err != nil {
		return Meta{}, fmt.Errorf("count %s: %w", b.spec.Collection, err)
	}
	return NewMeta(b.Page(), b.Limit(), total), nil
}

// Materialize runs the page query and the count query concurrently.
func Materialize[T any](ctx context.Context, b *Builder[T]) (Result[T], error) {
	var (
		rows []T
		meta Meta
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = Execute(gctx, b)
		return err
	})
	g.Go(func() error {
		var err error
		meta, err = CountTotal(gctx, b)
		return err
	})
	if err := g.Wait(); err != nil {
		return Result[T]{}, err //nolint:wrapcheck // both branches already wrap
	}

	return Result[T]{Meta: meta, Data: rows}, nil
}
