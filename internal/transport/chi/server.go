package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"go.uber.org/zap"

	"github.com/enayetsyl/industry-grade-project-format/internal/db"
	"github.com/enayetsyl/industry-grade-project-format/internal/domain"
	"github.com/enayetsyl/industry-grade-project-format/internal/domain/campus"
	"github.com/enayetsyl/industry-grade-project-format/internal/domain/query"
	logpkg "github.com/enayetsyl/industry-grade-project-format/internal/logger"
	healthuc "github.com/enayetsyl/industry-grade-project-format/internal/usecase/health"
)

// APIPrefix is the mount point of entity routes.
const APIPrefix = "/api/v1"

// Pagination response headers.
const (
	HeaderPage       = "Pagination-Page"
	HeaderLimit      = "Pagination-Limit"
	HeaderTotal      = "Pagination-Total"
	HeaderTotalPages = "Pagination-Total-Pages"
)

// Error codes returned in ErrorResponse.Code.
const (
	CodeBadRequest       = "bad_request"
	CodeInvalidID        = "invalid_id"
	CodeNotFound         = "not_found"
	CodeUnknownEntity    = "unknown_entity"
	CodeUnsupportedQuery = "unsupported_query"
	CodeInternalError    = "internal_error"
)

// Envelope is the success body of every API response.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Meta    *query.Meta `json:"meta,omitempty"`
	Data    any         `json:"data"`
}

// ErrorResponse is the failure body of every API response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Lister is the per-entity use case behind the list and get routes.
type Lister[T any] interface {
	Entity() campus.Entity
	List(ctx context.Context, params query.Params) (query.Result[T], error)
	Get(ctx context.Context, id string) (T, error)
}

// Resource is a Lister with its row type erased for routing.
type Resource interface {
	Name() string
	list(ctx context.Context, params query.Params) (query.Meta, any, error)
	get(ctx context.Context, id string) (any, error)
}

type resource[T any] struct {
	svc Lister[T]
}

// NewResource adapts a typed Lister for the router.
func NewResource[T any](svc Lister[T]) Resource {
	return resource[T]{svc: svc}
}

func (r resource[T]) Name() string { return r.svc.Entity().Name() }

func (r resource[T]) list(ctx context.Context, params query.Params) (query.Meta, any, error) {
	res, err := r.svc.List(ctx, params)
	if err != nil {
		return query.Meta{}, nil, err //nolint:wrapcheck // use case already wraps
	}
	return res.Meta, res.Data, nil
}

func (r resource[T]) get(ctx context.Context, id string) (any, error) {
	return r.svc.Get(ctx, id) //nolint:wrapcheck // use case already wraps
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server serves the campus HTTP API.
type Server struct {
	resources     []Resource
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(resources []Resource, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		resources: resources,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidID, http.StatusBadRequest, CodeInvalidID),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound),
		sentinelHandler(domain.ErrUnknownEntity, http.StatusNotFound, CodeUnknownEntity),
		sentinelHandler(db.ErrUnsupported, http.StatusBadRequest, CodeUnsupportedQuery),
	}
	return s
}

// Mount registers every route on r.
func (s *Server) Mount(r chi.Router) {
	for _, res := range s.resources {
		base := APIPrefix + "/" + res.Name()
		r.Get(base, s.listHandler(res))
		r.Get(base+"/{id}", s.getHandler(res))
	}
	r.Get(APIPrefix+"/{entity}", s.unknownEntity)
	r.Get(APIPrefix+"/{entity}/{id}", s.unknownEntity)
	r.Get("/health", s.HealthCheck)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, CodeNotFound, "route not found: "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, CodeBadRequest, "method not allowed")
	})
}

// listHandler handles GET /api/v1/{entity}.
func (s *Server) listHandler(res Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := query.FromValues(r.URL.Query())
		r = r.WithContext(logpkg.ForEntity(r.Context(), res.Name()))

		meta, data, err := res.list(r.Context(), params)
		if err != nil {
			s.handleDomainError(w, r, err)
			return
		}

		setPaginationHeaders(w, meta)
		writeJSON(w, http.StatusOK, Envelope{
			Success: true,
			Message: fmt.Sprintf("%s retrieved successfully", res.Name()),
			Meta:    &meta,
			Data:    data,
		})
	}
}

// getHandler handles GET /api/v1/{entity}/{id}.
func (s *Server) getHandler(res Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var id string
		err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
			runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
		if err != nil {
			writeError(w, http.StatusBadRequest, CodeInvalidID, fmt.Sprintf("Invalid format for parameter id: %s", err))
			return
		}

		r = r.WithContext(logpkg.ForEntity(r.Context(), res.Name()))
		row, err := res.get(r.Context(), id)
		if err != nil {
			s.handleDomainError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, Envelope{
			Success: true,
			Message: fmt.Sprintf("%s %s retrieved successfully", res.Name(), id),
			Data:    row,
		})
	}
}

// unknownEntity answers entity routes that no registered resource serves.
func (s *Server) unknownEntity(w http.ResponseWriter, r *http.Request) {
	s.handleDomainError(w, r, domain.NewUnknownEntity(chi.URLParam(r, "entity")))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

func setPaginationHeaders(w http.ResponseWriter, m query.Meta) {
	h := w.Header()
	h.Set(HeaderPage, strconv.Itoa(m.Page))
	h.Set(HeaderLimit, strconv.Itoa(m.Limit))
	h.Set(HeaderTotal, strconv.FormatInt(m.Total, 10))
	h.Set(HeaderTotalPages, strconv.FormatInt(m.TotalPage, 10))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Success: false,
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a client-safe message: the error text for known
// domain errors, a generic message otherwise.
func safeDomainMessage(err error) string {
	var unknown *domain.UnknownEntityError
	if errors.As(err, &unknown) {
		return unknown.Error()
	}
	sentinels := []error{
		domain.ErrInvalidID,
		domain.ErrNotFound,
		db.ErrUnsupported,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, safeDomainMessage(err))
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context())
	for _, h := range s.errorHandlers {
		if h(w, err) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
