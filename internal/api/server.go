/*
Package api exposes the projection engine over HTTP.

ROUTES:

	POST /api/projections          Run a projection (?save=true&name= stores it)
	GET  /api/projections          List saved runs (?limit=)
	GET  /api/projections/{id}     Load a saved run
	POST /api/compare              Compare a configuration against alternatives
	GET  /api/jurisdictions        List state and local tax tables
	GET  /healthz                  Liveness check

MIDDLEWARE STACK:

 1. Logger:     Request logging
 2. Recoverer:  Panic recovery (500 instead of crash)
 3. RequestID:  Unique ID per request for tracing
 4. CORS:       Cross-origin requests for a browser frontend

No authentication. Bind to localhost unless a proxy in front handles it.
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Options configures the router.
type Options struct {
	// AllowedOrigins for CORS. Empty means the local dev origins.
	AllowedOrigins []string
	// Quiet disables request logging (tests).
	Quiet bool
}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, opts Options) *chi.Mux {
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173", "http://localhost:8080"}
	}

	r := chi.NewRouter()

	if !opts.Quiet {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/projections", func(r chi.Router) {
			r.Get("/", h.ListProjections)
			r.Post("/", h.CreateProjection)
			r.Get("/{id}", h.GetProjection)
		})
		r.Post("/compare", h.Compare)
		r.Get("/jurisdictions", h.ListJurisdictions)
	})

	return r
}
