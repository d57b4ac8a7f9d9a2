package countcache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/mitchellh/hashstructure/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/enayetsyl/industry-grade-project-format/internal/db"
	"github.com/enayetsyl/industry-grade-project-format/internal/domain/query"
)

const cacheKeyPrefix = "campus:count:"

// store is the consumer interface for the count cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Source caches Count results of an inner source. Find always passes through.
type Source[T any] struct {
	inner      query.Source[T]
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New[T any](
	inner query.Source[T],
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *Source[T] {
	return &Source[T]{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Find delegates to the inner source.
func (c *Source[T]) Find(ctx context.Context, spec query.Spec) ([]T, error) {
	return c.inner.Find(ctx, spec) //nolint:wrapcheck // transparent decorator
}

// Count returns a cached total or asks the inner source.
// Cache failures are logged and never fail the request.
func (c *Source[T]) Count(ctx context.Context, spec query.Spec) (int64, error) {
	key, err := cacheKey(spec)
	if err != nil {
		c.logger.Warn("Failed to hash count spec", zap.String("collection", spec.Collection), zap.Error(err))
		return c.count(ctx, spec)
	}

	if n, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return n, nil
	}

	c.incCache("miss")

	n, err := c.count(ctx, spec)
	if err != nil {
		return 0, err
	}

	c.putToCache(ctx, key, n)
	return n, nil
}

func (c *Source[T]) count(ctx context.Context, spec query.Spec) (int64, error) {
	return c.inner.Count(ctx, spec) //nolint:wrapcheck // transparent decorator
}

func (c *Source[T]) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

// keyParts is everything a total depends on; sort, window and projection are not.
type keyParts struct {
	Collection string
	Scope      []query.Condition
	Search     []query.Condition
	Match      []query.Condition
}

func cacheKey(spec query.Spec) (string, error) {
	h, err := hashstructure.Hash(keyParts{
		Collection: spec.Collection,
		Scope:      spec.Scope,
		Search:     spec.Search,
		Match:      spec.Match,
	}, hashstructure.FormatV2, nil)
	if err != nil {
		return "", fmt.Errorf("hash spec: %w", err)
	}
	return KeyPrefix(spec.Collection) + strconv.FormatUint(h, 16), nil
}

func (c *Source[T]) getFromCache(ctx context.Context, key string) (int64, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached count", zap.String("key", key), zap.Error(err))
		}
		return 0, false
	}

	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil || n < 0 {
		c.logger.Warn("Failed to parse cached count", zap.String("key", key), zap.ByteString("value", data))
		return 0, false
	}
	return n, true
}

func (c *Source[T]) putToCache(ctx context.Context, key string, n int64) {
	if err := c.store.SetWithTTL(ctx, key, []byte(strconv.FormatInt(n, 10)), c.ttl); err != nil {
		c.logger.Warn("Failed to cache count", zap.String("key", key), zap.Error(err))
	}
}
