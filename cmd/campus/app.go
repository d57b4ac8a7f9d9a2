package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/enayetsyl/industry-grade-project-format/internal/config"
	"github.com/enayetsyl/industry-grade-project-format/internal/db"
	"github.com/enayetsyl/industry-grade-project-format/internal/db/memory"
	"github.com/enayetsyl/industry-grade-project-format/internal/db/mongodb"
	dbRedis "github.com/enayetsyl/industry-grade-project-format/internal/db/redis"
	"github.com/enayetsyl/industry-grade-project-format/internal/domain/campus"
	logpkg "github.com/enayetsyl/industry-grade-project-format/internal/logger"
	"github.com/enayetsyl/industry-grade-project-format/internal/metrics"
	"github.com/enayetsyl/industry-grade-project-format/internal/repository/countcache"
	"github.com/enayetsyl/industry-grade-project-format/internal/seed"
	"github.com/enayetsyl/industry-grade-project-format/internal/usecase/listing"
)

// app holds the process-wide dependencies shared by commands.
type app struct {
	cfg    config.Config
	logger *zap.Logger
	store  db.DocumentStore
	mongo  *mongodb.Store
	memory *memory.Store
	cache  *dbRedis.Store
}

func loadConfig() (config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath) //nolint:wrapcheck // config errors are self-describing
	}
	return config.Load(envName) //nolint:wrapcheck // config errors are self-describing
}

// newApp loads configuration, builds the logger and connects the stores.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logpkg.NewLogger(envName, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	a := &app{cfg: cfg, logger: logger}
	if err := a.openStore(ctx); err != nil {
		return nil, err
	}
	if err := a.openCache(ctx); err != nil {
		a.close()
		return nil, err
	}
	return a, nil
}

func (a *app) openStore(ctx context.Context) error {
	switch a.cfg.Database.Driver {
	case config.DriverMongo:
		s, err := mongodb.NewStore(mongodb.Config{URI: a.cfg.Database.URI, Database: a.cfg.Database.Name})
		if err != nil {
			return fmt.Errorf("failed to create database store: %w", err)
		}
		a.mongo, a.store = s, s
	case config.DriverMemory:
		s := memory.NewStore()
		a.memory, a.store = s, s
	default:
		return fmt.Errorf("unknown database driver %q", a.cfg.Database.Driver)
	}

	if err := a.store.WaitForReady(ctx, a.cfg.Database.Readiness()); err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}
	a.logger.Info("Connected to database", zap.String("driver", a.cfg.Database.Driver))
	return nil
}

// openCache connects the count cache. A cache that is configured but
// unreachable is logged and skipped; counts then always hit the store.
func (a *app) openCache(ctx context.Context) error {
	if !a.cfg.Cache.Enabled() {
		return nil
	}
	s, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    a.cfg.Cache.Addrs,
		Password: a.cfg.Cache.Password,
		DB:       a.cfg.Cache.DB,
	})
	if errors.Is(err, dbRedis.ErrNoAddrs) {
		return fmt.Errorf("failed to create cache store: %w", err)
	}
	if err != nil {
		a.logger.Warn("Count cache unreachable, continuing without it", zap.Error(err))
		return nil
	}
	if err := s.WaitForReady(ctx, 5*time.Second); err != nil {
		a.logger.Warn("Count cache unavailable, continuing without it", zap.Error(err))
		s.Close()
		return nil
	}
	a.cache = s
	a.logger.Info("Connected to count cache", zap.Strings("addrs", a.cfg.Cache.Addrs))
	return nil
}

func (a *app) close() {
	if a.cache != nil {
		a.cache.Close()
	}
	if a.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.store.Close(ctx); err != nil {
			a.logger.Error("Error closing database", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}

// source assembles the read chain for one entity: store -> instrumented -> count cache.
func source[T any](a *app) listing.Source[T] {
	var base listing.Source[T]
	if a.mongo != nil {
		base = mongodb.NewCollection[T](a.mongo)
	} else {
		base = memory.NewCollection[T](a.memory)
	}

	var src listing.Source[T] = listing.NewInstrumentedSource[T](base, a.logger)
	if a.cache != nil {
		src = countcache.New[T](src, a.cache, a.cfg.Cache.CountTTL(), metrics.CountCacheTotal, a.logger)
	}
	return src
}

func newService[T any](a *app, e campus.Entity) *listing.Service[T] {
	return listing.New[T](e, source[T](a),
		listing.WithPagination(a.cfg.Query.DefaultLimit, a.cfg.Query.MaxLimit),
		listing.WithLogger(a.logger),
	)
}

// seedFile loads a fixture and drops the cached totals of every collection it touched.
func (a *app) seedFile(ctx context.Context, path string) (seed.Report, error) {
	report, err := seed.New(a.store, campus.DefaultRegistry(), a.logger).LoadFile(ctx, path)
	if err != nil {
		return report, fmt.Errorf("seed: %w", err)
	}
	if a.cache == nil {
		return report, nil
	}

	collections := make([]string, 0, len(report))
	for c := range report {
		collections = append(collections, c)
	}
	removed, err := countcache.Invalidate(ctx, a.cache, collections...)
	if err != nil {
		a.logger.Warn("Failed to invalidate cached counts", zap.Error(err))
	} else {
		a.logger.Info("Invalidated cached counts", zap.Int("keys", removed))
	}
	return report, nil
}
