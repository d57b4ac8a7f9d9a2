// Package redis is the count cache backend: a small KV surface over rueidis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/redis/rueidis"

	"github.com/enayetsyl/industry-grade-project-format/internal/db"
)

var (
	_ db.KVStore    = (*Store)(nil)
	_ db.KeyDeleter = (*Store)(nil)
	_ db.Pinger     = (*Store)(nil)
)

// ErrNoAddrs is returned by NewStore when Config.Addrs is empty.
var ErrNoAddrs = errors.New("redis: addrs is required")

const (
	defaultClientName  = "campus"
	defaultDialTimeout = 3 * time.Second
)

// Config holds connection parameters. Zero ClientName and DialTimeout take defaults.
type Config struct {
	Addrs       []string
	Password    string
	DB          int
	ClientName  string
	DialTimeout time.Duration
}

// Store wraps a rueidis client. Server-assisted client caching stays off:
// cached totals are already TTL-bounded and invalidated by prefix.
type Store struct {
	client    rueidis.Client
	closeOnce sync.Once
}

// NewStore creates the client. rueidis dials eagerly, so an unreachable
// server fails here or on the first WaitForReady.
func NewStore(cfg Config) (*Store, error) {
	opt, err := clientOption(cfg)
	if err != nil {
		return nil, err
	}
	client, err := rueidis.NewClient(opt)
	if err != nil {
		return nil, fmt.Errorf("redis: connect %v: %w", cfg.Addrs, err)
	}
	return &Store{client: client}, nil
}

func clientOption(cfg Config) (rueidis.ClientOption, error) {
	if len(cfg.Addrs) == 0 {
		return rueidis.ClientOption{}, ErrNoAddrs
	}
	name := cfg.ClientName
	if name == "" {
		name = defaultClientName
	}
	timeout := cfg.DialTimeout
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}
	return rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Password:     cfg.Password,
		SelectDB:     cfg.DB,
		ClientName:   name,
		Dialer:       net.Dialer{Timeout: timeout},
		DisableCache: true,
	}, nil
}

// NewStoreForTest wraps an existing client (rueidis mock in tests).
func NewStoreForTest(c rueidis.Client) *Store {
	return &Store{client: c}
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Do(ctx, s.client.B().Ping().Build()).Error(); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// WaitForReady polls Ping until the server answers or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	return db.WaitForReady(ctx, s, timeout)
}

// Close releases the connections. Safe to call more than once.
func (s *Store) Close() {
	s.closeOnce.Do(s.client.Close)
}
