package campus

import (
	"context"
	"fmt"
	"time"

	"github.com/enayetsyl/industry-grade-project-format/internal/repository/countcache"
	"github.com/enayetsyl/industry-grade-project-format/internal/seed"
)

// Batch is a set of documents destined for one collection.
type Batch struct {
	Collection string
	Documents  []Document
}

// Seed inserts batches in order and returns the count inserted per collection.
// Missing _id, business id and timestamps are generated; references to other
// collections may be given as hex strings.
func (c *Client) Seed(ctx context.Context, batches ...Batch) (_ map[string]int, err error) {
	start := time.Now()
	defer func() { c.obs.observe(scopeClient, "seed", start, err) }()

	f := make(seed.Fixture, 0, len(batches))
	for i, b := range batches {
		if b.Collection == "" {
			return nil, fmt.Errorf("campus: batch %d: collection is required", i)
		}
		f = append(f, seed.Batch{Collection: b.Collection, Documents: b.Documents})
	}

	report, err := c.seeder.Apply(ctx, f)
	if err != nil {
		return report, fmt.Errorf("campus: %w", err)
	}
	c.invalidateCounts(ctx, report)
	return report, nil
}

// SeedFile loads a YAML fixture file in the format of config/seed.yaml.
func (c *Client) SeedFile(ctx context.Context, path string) (_ map[string]int, err error) {
	start := time.Now()
	defer func() { c.obs.observe(scopeClient, "seed", start, err) }()

	report, err := c.seeder.LoadFile(ctx, path)
	if err != nil {
		return report, fmt.Errorf("campus: %w", err)
	}
	c.invalidateCounts(ctx, report)
	return report, nil
}

// invalidateCounts drops cached totals for the seeded collections. Failures
// only mean totals may lag until the TTL expires.
func (c *Client) invalidateCounts(ctx context.Context, report seed.Report) {
	if c.keys == nil {
		return
	}
	collections := make([]string, 0, len(report))
	for coll := range report {
		collections = append(collections, coll)
	}
	if _, err := countcache.Invalidate(ctx, c.keys, collections...); err != nil {
		c.obs.warn("count cache invalidation failed", "error", err)
	}
}
