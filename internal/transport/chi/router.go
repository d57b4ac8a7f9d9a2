package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/enayetsyl/industry-grade-project-format/internal/metrics"
)

// NewRouter wires middleware, API routes and /metrics.
func NewRouter(s *Server, logger *zap.Logger) http.Handler {
	metrics.RegisterHTTPMetrics()

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(jsonRecoverer)
	r.Use(metrics.Middleware())

	r.Handle("/metrics", promhttp.Handler())
	s.Mount(r)
	return r
}
