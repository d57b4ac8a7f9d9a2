package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/enayetsyl/industry-grade-project-format/internal/db"
	"github.com/enayetsyl/industry-grade-project-format/internal/domain/query"
)

// Compile-time check: Store implements db.DocumentStore.
var _ db.DocumentStore = (*Store)(nil)

// Store is an in-process document store. Collections keep insertion order.
type Store struct {
	mu          sync.RWMutex
	collections map[string][]map[string]any
	closed      bool
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{collections: make(map[string][]map[string]any)}
}

// Ping fails only after Close.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return &db.Error{Op: db.OpPing, Err: db.ErrNotConnected}
	}
	return nil
}

// WaitForReady polls Ping until the store responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	return db.WaitForReady(ctx, s, timeout)
}

// Close drops all data; later calls fail with db.ErrNotConnected.
func (s *Store) Close(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.collections = nil
	return nil
}

// InsertMany appends copies of docs to collection, assigning an _id where missing.
func (s *Store) InsertMany(ctx context.Context, collection string, docs []db.Document) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, &db.Error{Op: db.OpInsert, Err: err}
	}

	rows := make([]map[string]any, 0, len(docs))
	for _, d := range docs {
		row := normalizeMap(d)
		if _, ok := row[idField]; !ok {
			row[idField] = bson.NewObjectID().Hex()
		}
		rows = append(rows, row)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, &db.Error{Op: db.OpInsert, Err: db.ErrNotConnected}
	}
	s.collections[collection] = append(s.collections[collection], rows...)
	return len(rows), nil
}

// find evaluates spec and returns independent copies of the resulting rows.
func (s *Store) find(ctx context.Context, spec query.Spec) ([]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, &db.Error{Op: db.OpFind, Err: err}
	}
	pred, err := compile(spec)
	if err != nil {
		return nil, &db.Error{Op: db.OpFind, Err: err}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, &db.Error{Op: db.OpFind, Err: db.ErrNotConnected}
	}

	var out []map[string]any
	for _, row := range s.collections[spec.Collection] {
		if pred(row) {
			out = append(out, normalizeMap(row))
		}
	}
	for _, l := range spec.Lookups {
		s.expand(out, l)
	}
	sortDocs(out, spec.Sort)
	out = window(out, spec.Window)
	for i := range out {
		out[i] = project(out[i], spec.Projection)
	}
	return out, nil
}

func (s *Store) count(ctx context.Context, spec query.Spec) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, &db.Error{Op: db.OpCount, Err: err}
	}
	pred, err := compile(spec)
	if err != nil {
		return 0, &db.Error{Op: db.OpCount, Err: err}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, &db.Error{Op: db.OpCount, Err: db.ErrNotConnected}
	}

	var n int64
	for _, row := range s.collections[spec.Collection] {
		if pred(row) {
			n++
		}
	}
	return n, nil
}

// expand replaces each row's reference with the referenced document, or drops
// the field when nothing matches. Caller holds the read lock.
func (s *Store) expand(rows []map[string]any, l query.Lookup) {
	byID := make(map[string]map[string]any)
	for _, ref := range s.collections[l.From] {
		if id, ok := ref[idField].(string); ok {
			byID[id] = ref
		}
	}
	for _, row := range rows {
		v, ok := row[l.Field]
		if !ok {
			continue
		}
		id, _ := v.(string)
		if ref, found := byID[id]; found {
			row[l.Field] = normalizeMap(ref)
			continue
		}
		delete(row, l.Field)
	}
}

func window(rows []map[string]any, w *query.Window) []map[string]any {
	if w == nil {
		return rows
	}
	if w.Skip > 0 {
		if w.Skip >= len(rows) {
			return nil
		}
		rows = rows[w.Skip:]
	}
	if w.Limit > 0 && w.Limit < len(rows) {
		rows = rows[:w.Limit]
	}
	return rows
}

// decode converts a row into T through a BSON round trip, so the same struct
// tags serve both stores.
func decode[T any](row map[string]any) (T, error) {
	var out T
	raw, err := bson.Marshal(row)
	if err != nil {
		return out, fmt.Errorf("marshal row: %w", err)
	}
	if err := bson.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("unmarshal row: %w", err)
	}
	return out, nil
}
