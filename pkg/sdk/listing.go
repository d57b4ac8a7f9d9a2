package campus

import (
	"context"
	"fmt"
	"net/url"
	"time"

	domcampus "github.com/enayetsyl/industry-grade-project-format/internal/domain/campus"
	"github.com/enayetsyl/industry-grade-project-format/internal/domain/query"
)

// listingUseCase is the internal interface for one entity's list service.
type listingUseCase[T any] interface {
	Entity() domcampus.Entity
	List(ctx context.Context, params query.Params) (query.Result[T], error)
	Get(ctx context.Context, id string) (T, error)
}

// Listing reads one entity.
type Listing[T any] struct {
	svc listingUseCase[T]
	obs *observer
}

// Name returns the entity name, e.g. "students".
func (l *Listing[T]) Name() string {
	return l.svc.Entity().Name()
}

// List returns one page of rows matching q.
func (l *Listing[T]) List(ctx context.Context, q Query) (Page[T], error) {
	return l.list(ctx, q.params())
}

// ListValues accepts a parsed query string, exactly as the HTTP API would receive it.
func (l *Listing[T]) ListValues(ctx context.Context, vals url.Values) (Page[T], error) {
	return l.list(ctx, query.FromValues(vals))
}

// ListRaw parses a raw query string such as "searchTerm=ali&page=2".
func (l *Listing[T]) ListRaw(ctx context.Context, rawQuery string) (Page[T], error) {
	params, err := query.ParseQuery(rawQuery)
	if err != nil {
		return Page[T]{}, fmt.Errorf("list %s: %w", l.Name(), err)
	}
	return l.list(ctx, params)
}

func (l *Listing[T]) list(ctx context.Context, params query.Params) (_ Page[T], err error) {
	start := time.Now()
	defer func() { l.obs.observe(l.Name(), "list", start, err) }()

	res, err := l.svc.List(ctx, params)
	if err != nil {
		return Page[T]{}, fmt.Errorf("campus: %w", err)
	}
	l.obs.page(l.Name(), res.Meta, len(res.Data))
	return Page[T]{Meta: res.Meta, Data: res.Data}, nil
}

// Get returns the live row with the given _id.
func (l *Listing[T]) Get(ctx context.Context, id string) (_ T, err error) {
	start := time.Now()
	defer func() { l.obs.observe(l.Name(), "get", start, err) }()

	row, err := l.svc.Get(ctx, id)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("campus: %w", err)
	}
	return row, nil
}
