package listing

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/enayetsyl/industry-grade-project-format/internal/domain"
	"github.com/enayetsyl/industry-grade-project-format/internal/domain/campus"
	"github.com/enayetsyl/industry-grade-project-format/internal/domain/query"
)

// Service lists and fetches rows of one entity.
type Service[T any] struct {
	entity       campus.Entity
	src          Source[T]
	logger       *zap.Logger
	defaultLimit int
	maxLimit     int
}

// Option configures a Service.
type Option func(*options)

type options struct {
	defaultLimit int
	maxLimit     int
	logger       *zap.Logger
}

// WithPagination sets the default page size and the clamp applied to requested
// limits. maxLimit 0 disables clamping.
func WithPagination(defaultLimit, maxLimit int) Option {
	return func(o *options) {
		o.defaultLimit = defaultLimit
		o.maxLimit = maxLimit
	}
}

// WithLogger sets the service logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New creates a Service for entity backed by src.
func New[T any](entity campus.Entity, src Source[T], opts ...Option) *Service[T] {
	o := options{defaultLimit: query.DefaultLimit, logger: zap.NewNop()}
	for _, fn := range opts {
		fn(&o)
	}
	return &Service[T]{
		entity:       entity,
		src:          src,
		logger:       o.logger,
		defaultLimit: o.defaultLimit,
		maxLimit:     o.maxLimit,
	}
}

// Entity returns the entity the service lists.
func (s *Service[T]) Entity() campus.Entity { return s.entity }

// Builder returns a query builder over the entity's base with params attached
// and every stage applied in canonical order.
func (s *Service[T]) Builder(params query.Params) *query.Builder[T] {
	return query.New[T](s.src, s.entity.Base(), params,
		query.WithDefaultLimit(s.defaultLimit),
		query.WithMaxLimit(s.maxLimit),
		query.WithCoercer(s.entity.Coerce),
	).
		Search(s.entity.SearchableFields()).
		Filter().
		Sort().
		Paginate().
		Fields()
}

// List runs search, filter, sort, paginate and fields over params and
// returns the page with its count metadata.
func (s *Service[T]) List(ctx context.Context, params query.Params) (query.Result[T], error) {
	b := s.Builder(params)

	s.logger.Debug("list query",
		zap.String("entity", s.entity.Name()),
		zap.Any("stages", b.Stages()),
		zap.Int("page", b.Page()),
		zap.Int("limit", b.Limit()),
	)

	res, err := query.Materialize(ctx, b)
	if err != nil {
		return query.Result[T]{}, fmt.Errorf("list %s: %w", s.entity.Name(), err)
	}
	return res, nil
}

// Get returns the live row with the given _id, with references expanded.
func (s *Service[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	id = strings.TrimSpace(id)
	if id == "" {
		return zero, fmt.Errorf("get %s: %w", s.entity.Name(), domain.ErrInvalidID)
	}

	params := query.Params{
		"_id":            query.String(id),
		query.ParamLimit: query.String("1"),
	}
	b := query.New[T](s.src, s.entity.Base(), params, query.WithCoercer(s.entity.Coerce)).
		Filter().
		Paginate().
		Fields()

	rows, err := query.Execute(ctx, b)
	if err != nil {
		return zero, fmt.Errorf("get %s %s: %w", s.entity.Name(), id, err)
	}
	if len(rows) == 0 {
		return zero, fmt.Errorf("%s %s: %w", s.entity.Name(), id, domain.ErrNotFound)
	}
	return rows[0], nil
}
