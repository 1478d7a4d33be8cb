package http

import (
	"net/http"
	"testing"

	"checklist-assessment-service/internal/infra/memory"
)

func TestSeedEndpoint(t *testing.T) {
	store := memory.NewSubmissionStore()
	env := newTestEnv(t, store, true)

	for i, method := range []string{http.MethodGet, http.MethodPost} {
		rec, body := env.do(t, method, "/api/test", nil)
		if rec.Code != http.StatusCreated {
			t.Fatalf("%s: expected 201, got %d: %s", method, rec.Code, rec.Body.String())
		}
		if body["message"] != "Dummy record created successfully" || body["id"] != float64(i+1) {
			t.Fatalf("%s: unexpected body %v", method, body)
		}
	}
}

func TestSeedEndpointFailure(t *testing.T) {
	env := newTestEnv(t, failingStore{memory.NewSubmissionStore()}, true)
	rec, body := env.do(t, http.MethodGet, "/api/test", nil)
	if rec.Code != http.StatusInternalServerError || body["error"] != "Failed to create dummy record" || body["details"] != "disk full" {
		t.Fatalf("expected 500, got %d %v", rec.Code, body)
	}
}

func TestCatalogEndpoint(t *testing.T) {
	env := newTestEnv(t, memory.NewSubmissionStore(), true)

	rec, body := env.do(t, http.MethodGet, "/api/catalog?id=travel-health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["totalQuestions"] != float64(47) || body["totalPossible"] != float64(150) {
		t.Fatalf("unexpected totals %v %v", body["totalQuestions"], body["totalPossible"])
	}

	rec, _ = env.do(t, http.MethodGet, "/api/catalog?id=nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRequestIDAndHealth(t *testing.T) {
	env := newTestEnv(t, memory.NewSubmissionStore(), true)

	rec, _ := env.do(t, http.MethodGet, "/api/catalog", nil)
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected generated request id")
	}

	rec, _ = env.do(t, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("unexpected health response %d %q", rec.Code, rec.Body.String())
	}

	rec, _ = env.do(t, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected metrics, got %d", rec.Code)
	}
}
