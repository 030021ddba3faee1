// Package chi exposes the suggest resolver over HTTP.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/soukly/searchd/internal/domain"
	"github.com/soukly/searchd/internal/logger"
	"github.com/soukly/searchd/internal/metrics"
	healthuc "github.com/soukly/searchd/internal/usecase/health"
	"github.com/soukly/searchd/internal/usecase/resolve"
)

// Diagnostic response headers.
const (
	headerSource         = "X-Suggest-Source"
	headerTruncatedQuery = "X-Truncated-Query"
)

// suggestResponse is the 200 body for /api/suggest.
type suggestResponse struct {
	Suggestions []domain.Suggestion `json:"suggestions"`
	Source      resolve.Source      `json:"source"`
}

// errorResponse is the 400 body for rejected queries.
type errorResponse struct {
	Suggestions []domain.Suggestion `json:"suggestions"`
	Error       string              `json:"error"`
}

// Server wires the resolve and health services to HTTP handlers.
type Server struct {
	resolver *resolve.Service
	health   *healthuc.Service
	logger   *zap.Logger
}

// NewServer creates the HTTP API server.
func NewServer(resolver *resolve.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{resolver: resolver, health: health, logger: logger}
}

// Router assembles the route table with the standard middleware stack.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(metrics.Middleware())
	r.Use(requestLogger(s.logger))

	r.Get("/api/suggest", s.Suggest)
	r.Get("/healthz", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	return r
}

// Suggest handles GET /api/suggest?q=...&locale=... The resolver's source
// tag is surfaced in a response header; the two input-error kinds map to
// 400, everything else resolves.
func (s *Server) Suggest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	locale := r.URL.Query().Get("locale")
	if locale == "" {
		locale = "en"
	}

	res, err := s.resolver.Resolve(r.Context(), q, locale)
	if err != nil {
		s.writeQueryError(r.Context(), w, err)
		return
	}

	w.Header().Set(headerSource, string(res.Source))
	writeJSON(w, http.StatusOK, suggestResponse{
		Suggestions: res.Suggestions,
		Source:      res.Source,
	})
}

// HealthCheck handles GET /healthz.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// requestLogger emits one canonical log line per request and stores a
// request-scoped logger with the request ID in the context.
func requestLogger(base *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}
			reqLogger := base.With(zap.String("request_id", requestID))
			ctx := logger.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
			)
		})
	}
}

// writeQueryError maps the two input-error kinds to 400 responses. A
// too-long rejection carries the truncated query as a diagnostic header.
func (s *Server) writeQueryError(ctx context.Context, w http.ResponseWriter, err error) {
	var tooLong *domain.QueryTooLongError
	switch {
	case errors.As(err, &tooLong):
		w.Header().Set(headerTruncatedQuery, tooLong.Truncated)
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Suggestions: []domain.Suggestion{},
			Error:       "query_too_long",
		})
	case errors.Is(err, domain.ErrQueryInvalid):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Suggestions: []domain.Suggestion{},
			Error:       "query_invalid",
		})
	default:
		logger.FromContext(ctx).Error("suggest resolve failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Suggestions: []domain.Suggestion{},
			Error:       "internal",
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
