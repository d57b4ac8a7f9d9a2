package campus

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// scopeClient labels operations that are not bound to one entity (ping, seed).
const scopeClient = "client"

// sdkMetrics holds prometheus metrics registered for the SDK.
type sdkMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	pageRows   *prometheus.HistogramVec
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "campus",
			Subsystem: "sdk",
			Name:      "operations_total",
			Help:      "Total SDK operations by entity, type and status.",
		}, []string{"entity", "operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "campus",
			Subsystem: "sdk",
			Name:      "operation_duration_seconds",
			Help:      "SDK operation duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"entity", "operation"}),
		pageRows: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "campus",
			Subsystem: "sdk",
			Name:      "page_rows",
			Help:      "Rows returned per listed page.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
		}, []string{"entity"}),
	}
	if err := registerOrReuse(reg, &m.operations); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.pageRows); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers a collector or reuses an existing one.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				return fmt.Errorf("campus: metric already registered with incompatible type: %T", are.ExistingCollector)
			}
			*c = existing
			return nil
		}
		return fmt.Errorf("campus: register metric: %w", err)
	}
	return nil
}

// observer provides logging and metrics for SDK operations.
// A nil observer, or one without logger and registerer, does nothing.
type observer struct {
	logger  *slog.Logger
	metrics *sdkMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	var m *sdkMetrics
	if reg != nil {
		var err error
		m, err = newSDKMetrics(reg)
		if err != nil {
			return nil, err
		}
	}
	return &observer{logger: logger, metrics: m}, nil
}

func (o *observer) observe(entity, op string, start time.Time, err error) {
	if o == nil {
		return
	}
	dur := time.Since(start)

	if o.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		o.metrics.operations.WithLabelValues(entity, op, status).Inc()
		o.metrics.duration.WithLabelValues(entity, op).Observe(dur.Seconds())
	}

	if o.logger == nil {
		return
	}
	if err != nil {
		o.logger.Warn("operation failed", "entity", entity, "op", op, "duration", dur, "error", err)
		return
	}
	o.logger.Debug("operation completed", "entity", entity, "op", op, "duration", dur)
}

// page records the size of a listed page.
func (o *observer) page(entity string, meta Meta, rows int) {
	if o == nil {
		return
	}
	if o.metrics != nil {
		o.metrics.pageRows.WithLabelValues(entity).Observe(float64(rows))
	}
	if o.logger != nil {
		o.logger.Debug("page listed",
			"entity", entity, "page", meta.Page, "limit", meta.Limit, "total", meta.Total, "rows", rows)
	}
}

func (o *observer) warn(msg string, args ...any) {
	if o == nil || o.logger == nil {
		return
	}
	o.logger.Warn(msg, args...)
}
