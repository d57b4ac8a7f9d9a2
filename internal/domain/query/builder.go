package query

import (
	"slices"
	"strconv"
	"strings"
)

// Pagination and projection defaults.
const (
	DefaultPage         = 1
	DefaultLimit        = 10
	DefaultSortField    = "createdAt"
	DefaultVersionField = "__v"
)

// Stage names one builder step.
type Stage string

// Builder stages, in canonical order.
const (
	StageSearch   Stage = "search"
	StageFilter   Stage = "filter"
	StageSort     Stage = "sort"
	StagePaginate Stage = "paginate"
	StageFields   Stage = "fields"
)

// SearchableFields lists the dot-paths that take part in free-text search.
type SearchableFields []string

// Coercer converts a raw filter string for field into the value the store
// compares against. Returning the input unchanged is always valid.
type Coercer func(field, raw string) any

// Option configures a Builder.
type Option func(*options)

type options struct {
	defaultLimit int
	maxLimit     int
	defaultSort  []SortKey
	versionField string
	reserved     []string
	coerce       Coercer
}

func defaultOptions() options {
	return options{
		defaultLimit: DefaultLimit,
		defaultSort:  []SortKey{{Field: DefaultSortField, Descending: true}},
		versionField: DefaultVersionField,
		reserved:     ReservedNames,
	}
}

// WithDefaultLimit overrides the page size used when limit is missing or invalid.
func WithDefaultLimit(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.defaultLimit = n
		}
	}
}

// WithMaxLimit clamps requested page sizes. 0 disables clamping.
func WithMaxLimit(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.maxLimit = n
		}
	}
}

// WithDefaultSort sets the ordering used when sort is absent, in sort-parameter
// syntax ("-createdAt"). Entities without createdAt pass another monotonic key.
func WithDefaultSort(s string) Option {
	return func(o *options) {
		if keys := ParseSort(s); len(keys) > 0 {
			o.defaultSort = keys
		}
	}
}

// WithVersionField names the bookkeeping field hidden when fields is absent.
func WithVersionField(name string) Option {
	return func(o *options) { o.versionField = name }
}

// WithReserved extends the control parameter names excluded from Filter.
func WithReserved(names ...string) Option {
	return func(o *options) {
		o.reserved = append(slices.Clone(o.reserved), names...)
	}
}

// WithCoercer installs a schema-aware converter for filter values.
func WithCoercer(c Coercer) Option {
	return func(o *options) { o.coerce = c }
}

// Builder accumulates a query from raw request parameters.
// A Builder belongs to one request; stage methods must not run concurrently.
type Builder[T any] struct {
	src    Source[T]
	params Params
	spec   Spec
	stages []Stage
	opts   options

	page  int
	limit int
}

// New wraps base and a defensive copy of params. Nothing is validated here;
// each stage reads only the parameters it needs.
func New[T any](src Source[T], base Base, params Params, opts ...Option) *Builder[T] {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return &Builder[T]{
		src:    src,
		params: params.Clone(),
		spec: Spec{
			Collection: base.Collection,
			Scope:      cloneConditions(base.Scope),
			Lookups:    slices.Clone(base.Lookups),
		},
		opts: o,
	}
}

// Search narrows to documents where any of fields contains searchTerm,
// case-insensitively. No-op when searchTerm is absent or empty; the term is
// used as given, surrounding spaces included.
func (b *Builder[T]) Search(fields SearchableFields) *Builder[T] {
	b.record(StageSearch)
	b.spec.Search = nil

	term := b.params.Get(ParamSearchTerm).First()
	if term == "" {
		return b
	}
	for _, f := range fields {
		if f == "" {
			continue
		}
		b.spec.Search = append(b.spec.Search, Contains(f, term))
	}
	return b
}

// Filter turns every non-reserved parameter into an exact-match constraint.
func (b *Builder[T]) Filter() *Builder[T] {
	b.record(StageFilter)
	b.spec.Match = nil

	rest := b.params.Without(b.opts.reserved...)
	keys := make([]string, 0, len(rest))
	for k := range rest {
		keys = append(keys, k)
	}
	// map order is random; stable output keeps cache keys and logs deterministic
	slices.Sort(keys)

	for _, k := range keys {
		v := rest[k]
		switch v.Kind() {
		case Single:
			b.spec.Match = append(b.spec.Match, Eq(k, b.coerce(k, v.First())))
		case List:
			raw := v.All()
			vals := make([]any, len(raw))
			for i, s := range raw {
				vals[i] = b.coerce(k, s)
			}
			b.spec.Match = append(b.spec.Match, In(k, vals...))
		}
	}
	return b
}

// Sort applies the sort parameter, or the default ordering when it is absent.
func (b *Builder[T]) Sort() *Builder[T] {
	b.record(StageSort)

	keys := ParseSort(b.params.Get(ParamSort).First())
	if len(keys) == 0 {
		keys = slices.Clone(b.opts.defaultSort)
	}
	b.spec.Sort = keys
	return b
}

// Paginate applies page and limit. Invalid or non-positive values fall back to
// the defaults; limit=0 means the default page size, not zero rows.
func (b *Builder[T]) Paginate() *Builder[T] {
	b.record(StagePaginate)

	page := positiveInt(b.params.Get(ParamPage).First(), DefaultPage)
	limit := positiveInt(b.params.Get(ParamLimit).First(), b.opts.defaultLimit)
	if b.opts.maxLimit > 0 && limit > b.opts.maxLimit {
		limit = b.opts.maxLimit
	}

	b.page, b.limit = page, limit
	b.spec.Window = &Window{Skip: (page - 1) * limit, Limit: limit}
	return b
}

// Fields applies the fields allow-list, or hides the version field when absent.
// Call it last: it restricts what the returned rows carry.
func (b *Builder[T]) Fields() *Builder[T] {
	b.record(StageFields)

	if include := splitList(b.params.Get(ParamFields).First()); len(include) > 0 {
		b.spec.Projection = Projection{Include: include}
		return b
	}
	if b.opts.versionField == "" {
		b.spec.Projection = Projection{}
		return b
	}
	b.spec.Projection = Projection{Exclude: []string{b.opts.versionField}}
	return b
}

// Spec returns a snapshot of the accumulated query.
func (b *Builder[T]) Spec() Spec {
	return b.spec.clone()
}

// Stages returns the stages applied so far, in call order.
func (b *Builder[T]) Stages() []Stage {
	return slices.Clone(b.stages)
}

// Page returns the page number chosen by Paginate (DefaultPage before it runs).
func (b *Builder[T]) Page() int {
	if b.page == 0 {
		return DefaultPage
	}
	return b.page
}

// Limit returns the page size chosen by Paginate (the default before it runs).
func (b *Builder[T]) Limit() int {
	if b.limit == 0 {
		return b.opts.defaultLimit
	}
	return b.limit
}

func (b *Builder[T]) record(s Stage) {
	b.stages = append(b.stages, s)
}

func (b *Builder[T]) coerce(field, raw string) any {
	if b.opts.coerce == nil {
		return raw
	}
	return b.opts.coerce(field, raw)
}

// positiveInt parses s, returning def for anything that is not a positive integer.
func positiveInt(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
