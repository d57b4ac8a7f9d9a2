package redis

import (
	"context"
	"time"

	"github.com/redis/rueidis"

	"github.com/enayetsyl/industry-grade-project-format/internal/db"
)

// Get returns the value at key, or db.ErrKeyNotFound.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Do(ctx, s.client.B().Get().Key(key).Build()).AsBytes()
	switch {
	case rueidis.IsRedisNil(err):
		return nil, db.ErrKeyNotFound
	case err != nil:
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	return data, nil
}

// SetWithTTL stores value under key with an expiration.
func (s *Store) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	cmd := s.client.B().Set().Key(key).Value(rueidis.BinaryString(value)).Ex(ttl).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpSet, Err: err}
	}
	return nil
}

// scanBatch is the COUNT hint per SCAN round trip.
const scanBatch = 100

// DeleteByPrefix unlinks every key starting with prefix and returns how many were removed.
// Keys written concurrently with the scan may survive.
func (s *Store) DeleteByPrefix(ctx context.Context, prefix string) (int, error) {
	var (
		cursor  uint64
		deleted int
	)
	for {
		scan := s.client.B().Scan().Cursor(cursor).Match(prefix + "*").Count(scanBatch).Build()
		entry, err := s.client.Do(ctx, scan).AsScanEntry()
		if err != nil {
			return deleted, &db.Error{Op: db.OpScan, Err: err}
		}

		if len(entry.Elements) > 0 {
			unlink := s.client.B().Unlink().Key(entry.Elements...).Build()
			n, err := s.client.Do(ctx, unlink).AsInt64()
			if err != nil {
				return deleted, &db.Error{Op: db.OpUnlink, Err: err}
			}
			deleted += int(n)
		}

		cursor = entry.Cursor
		if cursor == 0 {
			return deleted, nil
		}
	}
}
