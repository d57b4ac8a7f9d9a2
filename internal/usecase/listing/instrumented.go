package listing

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/enayetsyl/industry-grade-project-format/internal/domain/query"
	"github.com/enayetsyl/industry-grade-project-format/internal/metrics"
)

const (
	opFind  = "find"
	opCount = "count"

	statusOK    = "ok"
	statusError = "error"
)

// InstrumentedSource wraps a Source with query metrics and debug logging.
// It sits below the count cache so cache hits are not recorded as store queries.
type InstrumentedSource[T any] struct {
	inner  Source[T]
	logger *zap.Logger
}

// NewInstrumentedSource wraps inner with observability.
func NewInstrumentedSource[T any](inner Source[T], logger *zap.Logger) *InstrumentedSource[T] {
	return &InstrumentedSource[T]{inner: inner, logger: logger}
}

// Find delegates to the inner source and records the execution.
func (s *InstrumentedSource[T]) Find(ctx context.Context, spec query.Spec) ([]T, error) {
	start := time.Now()
	rows, err := s.inner.Find(ctx, spec)
	s.observe(spec, opFind, time.Since(start), len(rows), err)
	return rows, err //nolint:wrapcheck // transparent decorator
}

// Count delegates to the inner source and records the execution.
func (s *InstrumentedSource[T]) Count(ctx context.Context, spec query.Spec) (int64, error) {
	start := time.Now()
	n, err := s.inner.Count(ctx, spec)
	s.observe(spec, opCount, time.Since(start), int(n), err)
	return n, err //nolint:wrapcheck // transparent decorator
}

func (s *InstrumentedSource[T]) observe(spec query.Spec, op string, d time.Duration, n int, err error) {
	status := statusOK
	if err != nil {
		status = statusError
	}
	metrics.QueryExecutionsTotal.WithLabelValues(spec.Collection, op, status).Inc()
	metrics.QueryDuration.WithLabelValues(spec.Collection, op).Observe(d.Seconds())

	if err != nil {
		s.logger.Error("Query failed",
			zap.String("collection", spec.Collection),
			zap.String("op", op),
			zap.Duration("duration", d),
			zap.Error(err),
		)
		return
	}
	s.logger.Debug("Query completed",
		zap.String("collection", spec.Collection),
		zap.String("op", op),
		zap.Duration("duration", d),
		zap.Int("rows", n),
	)
}
