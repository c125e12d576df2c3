package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gridbatch/tracker/internal/config"
	"github.com/gridbatch/tracker/internal/job"
)

// NewRouter exposes a read-only view of the job collection. All mutation
// happens in the poll loop; these handlers only aggregate.
func NewRouter(cfg *config.Config, jobs *job.Collection) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	h := NewHandlers(cfg, jobs)

	r.Get("/health", h.Health)
	r.Get("/stats", h.Stats)
	r.Get("/jobs", h.Jobs)
	r.Get("/jobs/{name}", h.JobByName)

	return r
}
