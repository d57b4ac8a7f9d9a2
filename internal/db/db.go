package db

import (
	"context"
	"fmt"
	"time"
)

// Document is an untyped stored document.
type Document = map[string]any

// DocumentStore is the document database facade. Typed reads go through
// per-collection sources built on top of a concrete store.
type DocumentStore interface {
	Pinger
	DocumentWriter
	Close(ctx context.Context) error
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// DocumentWriter bulk-inserts documents into a collection.
type DocumentWriter interface {
	InsertMany(ctx context.Context, collection string, docs []Document) (int, error)
}

// KVStore provides simple key-value operations.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// KeyDeleter removes every key under a prefix.
type KeyDeleter interface {
	DeleteByPrefix(ctx context.Context, prefix string) (int, error)
}

// WaitForReady polls p until it answers or timeout expires.
func WaitForReady(ctx context.Context, p Pinger, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := p.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}
