package metricssvc

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeSet struct{ count int }

func (f fakeSet) Count() int { return f.count }

type fakeRing struct{ nodes int }

func (f fakeRing) NodeCount() int { return f.nodes }

func TestHealthCheckHealthyRing(t *testing.T) {
	h := NewHealthChecker(fakeSet{count: 3}, fakeRing{nodes: 2})
	status := h.Check()
	if status.Status != "healthy" {
		t.Fatalf("Status = %s, want healthy", status.Status)
	}
	if status.Components["local_set"].Status != "healthy" {
		t.Fatalf("local_set component = %+v, want healthy", status.Components["local_set"])
	}
}

func TestHealthCheckDegradedOnEmptyRing(t *testing.T) {
	h := NewHealthChecker(fakeSet{count: 0}, fakeRing{nodes: 0})
	status := h.Check()
	if status.Status != "degraded" {
		t.Fatalf("Status = %s, want degraded", status.Status)
	}
}

func TestHealthHandlerWritesServiceUnavailableWhenDegraded(t *testing.T) {
	h := NewHealthChecker(fakeSet{count: 0}, fakeRing{nodes: 0})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	h.Handler(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}
