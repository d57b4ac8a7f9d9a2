package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/enayetsyl/industry-grade-project-format/internal/db"
)

// Compile-time check: Store implements db.DocumentStore.
var _ db.DocumentStore = (*Store)(nil)

// Config holds connection parameters for a Mongo store.
type Config struct {
	URI      string
	Database string
}

// Store implements db.DocumentStore over the official driver.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore creates a Mongo store. The driver connects lazily; use
// WaitForReady before serving traffic.
func NewStore(cfg Config) (*Store, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("uri is required")
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("database is required")
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		// rows keep _id as a hex string, the same shape the memory store produces
		SetBSONOptions(&options.BSONOptions{ObjectIDAsHexString: true})
	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Store{client: client, db: client.Database(cfg.Database)}, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, nil); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect: %w", err)
	}
	return nil
}

// WaitForReady polls Ping until the store responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	return db.WaitForReady(ctx, s, timeout)
}

// InsertMany inserts docs; query.ID values holding hex ids become ObjectIDs.
func (s *Store) InsertMany(ctx context.Context, collection string, docs []db.Document) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}
	batch := make([]any, len(docs))
	for i, d := range docs {
		batch[i] = toDocument(d)
	}
	res, err := s.db.Collection(collection).InsertMany(ctx, batch)
	if err != nil {
		return 0, &db.Error{Op: db.OpInsert, Err: err}
	}
	return len(res.InsertedIDs), nil
}
