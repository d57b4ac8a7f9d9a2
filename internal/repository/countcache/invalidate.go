package countcache

import (
	"context"
	"fmt"

	"github.com/enayetsyl/industry-grade-project-format/internal/db"
)

// KeyPrefix returns the prefix shared by every cached total of a collection.
func KeyPrefix(collection string) string {
	return cacheKeyPrefix + collection + ":"
}

// Invalidate drops the cached totals of the given collections, typically after
// a seed wrote new documents. It returns the number of removed keys.
func Invalidate(ctx context.Context, d db.KeyDeleter, collections ...string) (int, error) {
	removed := 0
	for _, c := range collections {
		n, err := d.DeleteByPrefix(ctx, KeyPrefix(c))
		removed += n
		if err != nil {
			return removed, fmt.Errorf("invalidate %s counts: %w", c, err)
		}
	}
	return removed, nil
}
