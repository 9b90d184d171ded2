package api

import (
	"net/http"
	"schedule-comparison-service/internal/api/handlers"
	"schedule-comparison-service/internal/ports"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterDeps are the collaborators the HTTP layer needs.
type RouterDeps struct {
	Engine      handlers.AnalyticsEngine
	Reloader    handlers.Reloader
	Runs        ports.RunLister
	CORSOrigins []string
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	origins := deps.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r.Use(recoverMiddleware)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware)
	r.Use(metricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))

	healthHandler := &handlers.HealthHandler{Engine: deps.Engine}
	analyticsHandler := &handlers.AnalyticsHandler{Engine: deps.Engine}
	runHandler := &handlers.RunHandler{Runs: deps.Runs, Reloader: deps.Reloader}

	r.Get("/health", healthHandler.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/comparison", analyticsHandler.Comparison)
		r.Get("/slots", analyticsHandler.Slots)
		r.Get("/time-shift", analyticsHandler.TimeShift)
		r.Get("/summary", analyticsHandler.Summary)
		r.Get("/visits", analyticsHandler.Visits)

		if deps.Runs != nil {
			r.Get("/runs", runHandler.List)
		}
		if deps.Reloader != nil {
			r.Post("/reload", runHandler.Reload)
		}
	})

	return r
}
