// Package http assembles the API server: router, middleware, and lifecycle.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/stayscope/listing-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/stayscope/listing-intelligence/internal/interfaces/http/handlers"
	"github.com/stayscope/listing-intelligence/internal/interfaces/http/middleware"
)

// RouterDeps carries everything the router mounts.
type RouterDeps struct {
	Profiles *handlers.ProfileHandler
	Health   *handlers.HealthHandler
	Logger   logging.Logger

	// Observer feeds per-request metrics; nil disables them.
	Observer middleware.HTTPObserver

	// MetricsHandler, when set, is mounted at /metrics.
	MetricsHandler http.Handler
}

// NewRouter builds the chi router with the full route table.
func NewRouter(deps RouterDeps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(deps.Logger, deps.Observer))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Get("/healthz", deps.Health.Liveness)
	r.Get("/readyz", deps.Health.Readiness)
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/listings/{id}/profile", func(r chi.Router) {
			r.Get("/", deps.Profiles.GetProfile)
			r.Post("/recompute", deps.Profiles.RecomputeProfile)
		})
		r.Route("/owners/{id}", func(r chi.Router) {
			r.Get("/summary", deps.Profiles.OwnerSummary)
			r.Post("/recompute", deps.Profiles.OwnerRecompute)
		})
		r.Get("/market/overview", deps.Profiles.MarketOverview)
	})

	return r
}
