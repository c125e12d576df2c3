package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gridbatch/tracker/internal/config"
	"github.com/gridbatch/tracker/internal/job"
)

var startTime = time.Now()

type Handlers struct {
	cfg  *config.Config
	jobs *job.Collection
}

func NewHandlers(cfg *config.Config, jobs *job.Collection) *Handlers {
	return &Handlers{cfg: cfg, jobs: jobs}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"mode":           string(h.cfg.Mode),
		"uptime_seconds": int(time.Since(startTime).Seconds()),
		"jobs": map[string]int{
			"total":     h.jobs.Len(),
			"running":   h.jobs.CountStatus(job.StatusRunning),
			"success":   h.jobs.CountStatus(job.StatusSuccess),
			"failed":    h.jobs.CountStatus(job.StatusFailed),
			"cancelled": h.jobs.CountStatus(job.StatusCancelled),
		},
		"types": map[string]int{
			"local": h.jobs.CountType(job.TypeLocal),
			"batch": h.jobs.CountType(job.TypeBatch),
		},
	})
}

func (h *Handlers) Jobs(w http.ResponseWriter, r *http.Request) {
	f := job.Filter{}
	if status := r.URL.Query().Get("status"); status != "" {
		f.States = map[job.Status]struct{}{job.Status(status): {}}
	}
	if tag := r.URL.Query().Get("tag"); tag != "" {
		f.Tags = map[string]struct{}{tag: {}}
	}

	jobs := h.jobs.Match(f)
	if jobs == nil {
		jobs = []job.Job{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"jobs":  jobs,
		"total": len(jobs),
	})
}

func (h *Handlers) JobByName(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	j, ok := h.jobs.Get(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "job not found"})
		return
	}
	writeJSON(w, http.StatusOK, j)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
