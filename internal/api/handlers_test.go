package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gridbatch/tracker/internal/config"
	"github.com/gridbatch/tracker/internal/job"
)

func testRouter(t *testing.T) (http.Handler, *job.Collection) {
	t.Helper()
	cfg := &config.Config{Mode: config.ModeRun}
	jobs := job.NewCollection()
	return NewRouter(cfg, jobs), jobs
}

func TestHealth(t *testing.T) {
	router, _ := testRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)

	if resp["status"] != "healthy" {
		t.Errorf("expected healthy, got %s", resp["status"])
	}
}

func TestStats(t *testing.T) {
	router, jobs := testRouter(t)
	jobs.Add(job.New("a", job.TypeLocal))
	jobs.Add(job.New("b", job.TypeBatch))
	jobs.SetStatus("a", job.StatusSuccess)

	req := httptest.NewRequest("GET", "/stats", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Mode string         `json:"mode"`
		Jobs map[string]int `json:"jobs"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)

	if resp.Mode != "run" {
		t.Errorf("expected run mode, got %s", resp.Mode)
	}
	if resp.Jobs["total"] != 2 {
		t.Errorf("expected 2 total, got %d", resp.Jobs["total"])
	}
	if resp.Jobs["success"] != 1 {
		t.Errorf("expected 1 success, got %d", resp.Jobs["success"])
	}
}

func TestJobsFilter(t *testing.T) {
	router, jobs := testRouter(t)
	jobs.Add(job.New("a", job.TypeLocal, "fit"))
	jobs.Add(job.New("b", job.TypeBatch, "plot"))
	jobs.SetStatus("a", job.StatusSuccess)

	req := httptest.NewRequest("GET", "/jobs?status=success", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp struct {
		Jobs  []job.Job `json:"jobs"`
		Total int       `json:"total"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)

	if resp.Total != 1 || resp.Jobs[0].Name != "a" {
		t.Errorf("unexpected filter result: %+v", resp)
	}

	req = httptest.NewRequest("GET", "/jobs?tag=plot", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Total != 1 || resp.Jobs[0].Name != "b" {
		t.Errorf("unexpected tag filter result: %+v", resp)
	}
}

func TestJobByName(t *testing.T) {
	router, jobs := testRouter(t)
	jobs.Add(job.New("a", job.TypeLocal))

	req := httptest.NewRequest("GET", "/jobs/a", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	req = httptest.NewRequest("GET", "/jobs/missing", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
