package campus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/enayetsyl/industry-grade-project-format/internal/db"
	"github.com/enayetsyl/industry-grade-project-format/internal/db/memory"
	"github.com/enayetsyl/industry-grade-project-format/internal/db/mongodb"
	dbRedis "github.com/enayetsyl/industry-grade-project-format/internal/db/redis"
	domcampus "github.com/enayetsyl/industry-grade-project-format/internal/domain/campus"
	"github.com/enayetsyl/industry-grade-project-format/internal/domain/query"
	"github.com/enayetsyl/industry-grade-project-format/internal/metrics"
	"github.com/enayetsyl/industry-grade-project-format/internal/repository/countcache"
	"github.com/enayetsyl/industry-grade-project-format/internal/seed"
	healthuc "github.com/enayetsyl/industry-grade-project-format/internal/usecase/health"
	"github.com/enayetsyl/industry-grade-project-format/internal/usecase/listing"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	cacheReadinessTimeout   = 2 * time.Second
	defaultCountTTL         = 30 * time.Second
)

// seeder is the internal interface for fixture loading.
type seeder interface {
	Apply(ctx context.Context, f seed.Fixture) (seed.Report, error)
	LoadFile(ctx context.Context, path string) (seed.Report, error)
}

// Client is the campus SDK entry point.
type Client struct {
	store    db.DocumentStore
	mongo    *mongodb.Store
	memory   *memory.Store
	cache    *dbRedis.Store
	cfg      *clientConfig
	registry *domcampus.Registry
	logger   *zap.Logger

	healthSvc healthUseCase
	seeder    seeder
	keys      db.KeyDeleter
	obs       *observer
}

// New creates a Client and connects to the database.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		defaultLimit: query.DefaultLimit,
		countTTL:     defaultCountTTL,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.driver == "" {
		return nil, errors.New("campus: database required (use WithMongo or WithMemory)")
	}
	if cfg.defaultLimit <= 0 {
		return nil, fmt.Errorf("campus: default limit must be positive, got %d", cfg.defaultLimit)
	}
	if cfg.maxLimit > 0 && cfg.defaultLimit > cfg.maxLimit {
		return nil, fmt.Errorf("campus: default limit %d exceeds max limit %d", cfg.defaultLimit, cfg.maxLimit)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	c := &Client{cfg: cfg, registry: domcampus.DefaultRegistry(), logger: zap.NewNop(), obs: obs}
	if err := c.createStore(); err != nil {
		return nil, err
	}
	if err := c.store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		_ = c.store.Close(ctx)
		return nil, fmt.Errorf("campus: database not ready: %w", err)
	}
	c.openCache(ctx)
	c.wire()
	return c, nil
}

func (c *Client) createStore() error {
	switch c.cfg.driver {
	case driverMongo:
		s, err := mongodb.NewStore(mongodb.Config{URI: c.cfg.uri, Database: c.cfg.database})
		if err != nil {
			return fmt.Errorf("campus: create mongo store: %w", err)
		}
		c.mongo, c.store = s, s
	case driverMemory:
		s := memory.NewStore()
		c.memory, c.store = s, s
	default:
		return fmt.Errorf("campus: unknown driver %q", c.cfg.driver)
	}
	return nil
}

// openCache connects the count cache when configured. Failures leave the
// client uncached.
func (c *Client) openCache(ctx context.Context) {
	if len(c.cfg.cacheAddrs) == 0 {
		return
	}
	s, err := dbRedis.NewStore(dbRedis.Config{Addrs: c.cfg.cacheAddrs, Password: c.cfg.cachePassword})
	if err != nil {
		c.obs.warn("count cache disabled", "error", err)
		return
	}
	if err := s.WaitForReady(ctx, cacheReadinessTimeout); err != nil {
		c.obs.warn("count cache unavailable, continuing without it", "error", err)
		s.Close()
		return
	}
	c.cache = s
	c.keys = s
}

func (c *Client) wire() {
	if c.cache != nil {
		c.healthSvc = healthuc.New(c.store, c.cache)
	} else {
		c.healthSvc = healthuc.New(c.store, nil)
	}
	c.seeder = seed.New(c.store, c.registry, c.logger)
}

// Close releases all resources.
func (c *Client) Close(ctx context.Context) error {
	if c.cache != nil {
		c.cache.Close()
	}
	if c.store == nil {
		return nil
	}
	if err := c.store.Close(ctx); err != nil {
		return fmt.Errorf("campus: close: %w", err)
	}
	return nil
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe(scopeClient, "ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Students lists students with admission semester and department expanded.
func (c *Client) Students() *Listing[Student] {
	return newListing[Student](c, domcampus.Students)
}

// Faculties lists faculty members.
func (c *Client) Faculties() *Listing[Faculty] {
	return newListing[Faculty](c, domcampus.Faculties)
}

// Admins lists administrators.
func (c *Client) Admins() *Listing[Admin] {
	return newListing[Admin](c, domcampus.Admins)
}

// Courses lists courses.
func (c *Client) Courses() *Listing[Course] {
	return newListing[Course](c, domcampus.Courses)
}

// Entity returns an untyped listing for a registered entity name.
func (c *Client) Entity(name string) (*Listing[Document], error) {
	e, err := c.registry.Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("campus: %w", err)
	}
	return newListing[Document](c, e), nil
}

// Entities returns the registered entity names.
func (c *Client) Entities() []string {
	all := c.registry.All()
	names := make([]string, 0, len(all))
	for _, e := range all {
		names = append(names, e.Name())
	}
	return names
}

func newListing[T any](c *Client, e domcampus.Entity) *Listing[T] {
	svc := listing.New[T](e, sourceFor[T](c),
		listing.WithPagination(c.cfg.defaultLimit, c.cfg.maxLimit),
		listing.WithLogger(c.logger),
	)
	return &Listing[T]{svc: svc, obs: c.obs}
}

// sourceFor assembles the read chain: store -> instrumented -> count cache.
func sourceFor[T any](c *Client) listing.Source[T] {
	var base listing.Source[T]
	if c.mongo != nil {
		base = mongodb.NewCollection[T](c.mongo)
	} else {
		base = memory.NewCollection[T](c.memory)
	}

	var src listing.Source[T] = listing.NewInstrumentedSource[T](base, c.logger)
	if c.cache != nil {
		src = countcache.New[T](src, c.cache, c.cfg.countTTL, metrics.CountCacheTotal, c.logger)
	}
	return src
}
