// Package server is the HTTP layer: it translates requests into service
// calls and domain errors into status codes. Business rules live in the
// service and storage packages, not here.
package server

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rfeldman/wedsite/internal/auth"
	"github.com/rfeldman/wedsite/internal/metrics"
	"github.com/rfeldman/wedsite/internal/middleware"
	"github.com/rfeldman/wedsite/internal/scraper"
	"github.com/rfeldman/wedsite/internal/service"
)

// Server wires the API handlers to their dependencies.
type Server struct {
	registry      *service.RegistryService
	authenticator *auth.AdminAuthenticator // nil when no admin password is configured
	tokens        *auth.JWTManager
	tokenDuration time.Duration
	scraper       *scraper.Scraper
	metrics       *metrics.Metrics
}

// New creates a Server. authenticator may be nil, in which case admin login
// always reports that no password is configured.
func New(
	registry *service.RegistryService,
	authenticator *auth.AdminAuthenticator,
	tokens *auth.JWTManager,
	tokenDuration time.Duration,
	sc *scraper.Scraper,
	m *metrics.Metrics,
) *Server {
	return &Server{
		registry:      registry,
		authenticator: authenticator,
		tokens:        tokens,
		tokenDuration: tokenDuration,
		scraper:       sc,
		metrics:       m,
	}
}

// Routes builds the API router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Logger(s.metrics))

	r.Route("/api", func(r chi.Router) {
		r.Route("/registry", func(r chi.Router) {
			r.Get("/items", s.handleListItems)
			r.Get("/items/{id}", s.handleGetItem)
			r.Post("/contribute", s.handleContribute)

			r.Post("/add-item", middleware.RequireAdmin(s.tokens, s.handleAddItem))
			r.Put("/items/{id}", middleware.RequireAdmin(s.tokens, s.handleUpdateItem))
			r.Delete("/items/{id}", middleware.RequireAdmin(s.tokens, s.handleDeleteItem))
			r.Post("/scrape", middleware.RequireAdmin(s.tokens, s.handleScrape))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", s.handleAdminLogin)
			r.Post("/logout", s.handleAdminLogout)
			r.Get("/me", s.handleAdminMe)
		})
	})

	r.Method("GET", "/metrics", promhttp.Handler())

	return r
}
