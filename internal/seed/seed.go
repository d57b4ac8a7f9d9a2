// Package seed loads YAML fixtures into a document store.
package seed

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/enayetsyl/industry-grade-project-format/internal/db"
	"github.com/enayetsyl/industry-grade-project-format/internal/domain/campus"
	"github.com/enayetsyl/industry-grade-project-format/internal/domain/campus/field"
	"github.com/enayetsyl/industry-grade-project-format/internal/domain/query"
	"github.com/enayetsyl/industry-grade-project-format/internal/idgen"
)

const (
	fieldID         = "_id"
	fieldBusinessID = "id"
	fieldCreatedAt  = "createdAt"
	fieldUpdatedAt  = "updatedAt"
)

// timeFields hold RFC 3339 strings in fixtures and time values in the store.
var timeFields = []string{fieldCreatedAt, fieldUpdatedAt, "dateOfBirth"}

// Batch is the set of documents destined for one collection.
type Batch struct {
	Collection string        `yaml:"collection"`
	Documents  []db.Document `yaml:"documents"`
}

// Fixture is an ordered list of batches. Referenced collections go first.
type Fixture []Batch

// Report counts inserted documents per collection.
type Report map[string]int

// Total returns the number of inserted documents.
func (r Report) Total() int {
	n := 0
	for _, c := range r {
		n += c
	}
	return n
}

// Parse decodes a YAML fixture.
func Parse(data []byte) (Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	for i, b := range f {
		if b.Collection == "" {
			return nil, fmt.Errorf("batch %d: collection is required", i)
		}
	}
	return f, nil
}

// Seeder writes fixtures through a db.DocumentWriter.
type Seeder struct {
	writer   db.DocumentWriter
	registry *campus.Registry
	logger   *zap.Logger
	now      func() time.Time
}

// Option configures a Seeder.
type Option func(*Seeder)

// WithClock overrides the time source for generated timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Seeder) { s.now = now }
}

// New creates a Seeder.
func New(w db.DocumentWriter, registry *campus.Registry, logger *zap.Logger, opts ...Option) *Seeder {
	s := &Seeder{writer: w, registry: registry, logger: logger, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// LoadFile parses the fixture at path and applies it.
func (s *Seeder) LoadFile(ctx context.Context, path string) (Report, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return s.Apply(ctx, f)
}

// Apply inserts every batch in order. Documents are stamped with createdAt and
// updatedAt one millisecond apart so fixture order is the default newest-last order.
func (s *Seeder) Apply(ctx context.Context, f Fixture) (Report, error) {
	report := make(Report, len(f))
	at := s.now().UTC().Truncate(time.Millisecond)

	for _, b := range f {
		entity, known := s.registry.ByCollection(b.Collection)
		docs := make([]db.Document, 0, len(b.Documents))
		for _, raw := range b.Documents {
			doc, err := prepare(raw, entity, known, at)
			if err != nil {
				return report, fmt.Errorf("seed %s: %w", b.Collection, err)
			}
			docs = append(docs, doc)
			at = at.Add(time.Millisecond)
		}
		if len(docs) == 0 {
			continue
		}

		n, err := s.writer.InsertMany(ctx, b.Collection, docs)
		if err != nil {
			return report, fmt.Errorf("seed %s: %w", b.Collection, err)
		}
		report[b.Collection] += n
		s.logger.Info("seeded collection",
			zap.String("collection", b.Collection),
			zap.Int("documents", n),
		)
	}
	return report, nil
}

func prepare(raw db.Document, entity campus.Entity, known bool, at time.Time) (db.Document, error) {
	doc := maps.Clone(raw)
	if doc == nil {
		doc = db.Document{}
	}

	switch v := doc[fieldID].(type) {
	case nil:
		doc[fieldID] = query.ID(bson.NewObjectID().Hex())
	case string:
		doc[fieldID] = query.ID(v)
	}

	for _, name := range []string{fieldCreatedAt, fieldUpdatedAt} {
		if _, ok := doc[name]; !ok {
			doc[name] = at
		}
	}
	for _, name := range timeFields {
		if v, ok := doc[name].(string); ok {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			doc[name] = t
		}
	}

	if !known {
		return doc, nil
	}
	for _, f := range entity.Fields() {
		if s, ok := doc[f.Name()].(string); ok && f.FieldType() == field.Ref {
			doc[f.Name()] = query.ID(s)
		}
	}
	if prefix := entity.IDPrefix(); prefix != "" {
		if _, ok := doc[fieldBusinessID]; !ok {
			id, err := idgen.New(prefix)
			if err != nil {
				return nil, err
			}
			doc[fieldBusinessID] = id
		}
	}
	return doc, nil
}
