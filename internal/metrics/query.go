package metrics

import "github.com/prometheus/client_golang/prometheus"

// List query Prometheus metrics.
var (
	QueryExecutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "campus",
			Name:      "query_executions_total",
			Help:      "Total number of list query executions against the document store",
		},
		[]string{"collection", "op", "status"}, // op: "find" / "count"
	)

	QueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "campus",
			Name:      "query_duration_seconds",
			Help:      "List query execution duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"collection", "op"},
	)

	CountCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "campus",
			Name:      "count_cache_total",
			Help:      "Count cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var queryMetricsRegistered bool

// RegisterQueryMetrics registers Prometheus query metrics. Must be called once from main.
func RegisterQueryMetrics() {
	if queryMetricsRegistered {
		return
	}
	prometheus.MustRegister(QueryExecutionsTotal)
	prometheus.MustRegister(QueryDuration)
	prometheus.MustRegister(CountCacheTotal)
	queryMetricsRegistered = true
}
