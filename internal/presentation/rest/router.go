package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/onboardiq/onboardiq/pkg/auth"
)

// Role sets per operation.
var (
	submitRoles = []string{auth.RoleAdmin, auth.RoleOperator, auth.RoleCustomer, auth.RoleAPIClient}
	readRoles   = []string{auth.RoleAdmin, auth.RoleOperator, auth.RoleAuditor}
	manageRoles = []string{auth.RoleAdmin, auth.RoleOperator}
)

// RouterConfig holds the dependencies of the HTTP router.
type RouterConfig struct {
	Submissions  *SubmissionHandler
	Health       *HealthHandler
	Validator    auth.TokenValidator
	Metrics      http.Handler
	RateLimitRPS int
	Logger       *slog.Logger
}

// NewRouter builds the HTTP API. Probes and /metrics are served without a
// token; everything under /api/v1 requires one.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(LoggingMiddleware(cfg.Logger))

	r.Get("/healthz", cfg.Health.Healthz)
	r.Get("/readyz", cfg.Health.Readyz)
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(RateLimitMiddleware(NewRateLimiter(cfg.RateLimitRPS)))
		r.Use(auth.HTTPMiddleware(cfg.Validator, nil))

		h := cfg.Submissions
		r.With(auth.RequireRoles(submitRoles...)).Post("/assessments", h.Assess)
		r.With(auth.RequireRoles(submitRoles...)).Post("/submissions", h.Submit)
		r.With(auth.RequireRoles(readRoles...)).Get("/submissions", h.List)
		r.With(auth.RequireRoles(readRoles...)).Get("/statistics", h.Statistics)

		r.Route("/submissions/{id}", func(r chi.Router) {
			r.With(auth.RequireRoles(readRoles...)).Get("/", h.Get)
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireRoles(manageRoles...))
				r.Patch("/", h.Update)
				r.Delete("/", h.Delete)
				r.Put("/status", h.OverrideStatus)
			})
		})
	})

	return r
}

// Server wraps http.Server with the onboarding router.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates an HTTP server listening on address.
func NewServer(address string, handler http.Handler, logger *slog.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              address,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		logger: logger,
	}
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("HTTP server starting", slog.String("address", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down")
	return s.httpServer.Shutdown(ctx)
}
