package countcache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/enayetsyl/industry-grade-project-format/internal/db"
	"github.com/enayetsyl/industry-grade-project-format/internal/domain/query"
)

type row struct{ ID string }

// mockSource counts calls to the inner source.
type mockSource struct {
	rows       []row
	total      int64
	err        error
	findCalls  int
	countCalls int
}

func (m *mockSource) Find(_ context.Context, _ query.Spec) ([]row, error) {
	m.findCalls++
	return m.rows, m.err
}

func (m *mockSource) Count(_ context.Context, _ query.Spec) (int64, error) {
	m.countCalls++
	return m.total, m.err
}

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

func newTestSource(t *testing.T, inner *mockSource) (*Source[row], *mockKVStore) {
	t.Helper()
	ms := &mockKVStore{}
	return New[row](inner, ms, time.Minute, nil, zap.NewNop()), ms
}

func testSpec() query.Spec {
	return query.Spec{
		Collection: "students",
		Scope:      []query.Condition{query.Ne("isDeleted", true)},
		Search:     []query.Condition{query.Contains("email", "ali")},
		Match:      []query.Condition{query.Eq("role", "student")},
		Sort:       []query.SortKey{{Field: "createdAt", Descending: true}},
		Window:     &query.Window{Skip: 5, Limit: 5},
	}
}
