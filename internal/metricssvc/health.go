package metricssvc

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// HealthStatus is the JSON body served at /healthz.
type HealthStatus struct {
	Status     string                     `json:"status"`
	Timestamp  time.Time                  `json:"timestamp"`
	Components map[string]ComponentHealth `json:"components"`
}

// ComponentHealth reports one subsystem's check result.
type ComponentHealth struct {
	Status  string `json:"status"`
	Details string `json:"details,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// LocalSet is the narrow surface HealthChecker needs from the node's set.
type LocalSet interface {
	Count() int
}

// Ring is the narrow surface HealthChecker needs from the cluster ring.
type Ring interface {
	NodeCount() int
}

// HealthChecker reports on the local set and the process's ring view.
// There is no replication or failure-detection component to check: each
// value lives on exactly one node, so "healthy" means only "the set is
// reachable and the ring is non-empty".
type HealthChecker struct {
	set  LocalSet
	ring Ring
}

// NewHealthChecker builds a checker around a node's set and, optionally, a
// ring view. ring may be nil for a process that doesn't hold one (the
// storage node doesn't route, so it has no ring; the rebalancer does).
func NewHealthChecker(set LocalSet, ring Ring) *HealthChecker {
	return &HealthChecker{set: set, ring: ring}
}

// Check runs both component checks concurrently and aggregates the result.
func (h *HealthChecker) Check() HealthStatus {
	status := HealthStatus{
		Status:     "healthy",
		Timestamp:  time.Now(),
		Components: make(map[string]ComponentHealth),
	}

	var wg sync.WaitGroup
	var mu sync.Mutex

	wg.Add(1)
	go func() {
		defer wg.Done()
		start := time.Now()
		count := h.set.Count()
		latency := time.Since(start)

		mu.Lock()
		status.Components["local_set"] = ComponentHealth{
			Status:  "healthy",
			Details: fmt.Sprintf("%d values", count),
			Latency: latency.String(),
		}
		mu.Unlock()
	}()

	if h.ring != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			start := time.Now()
			nodes := h.ring.NodeCount()
			latency := time.Since(start)

			mu.Lock()
			if nodes == 0 {
				status.Components["ring"] = ComponentHealth{
					Status:  "unhealthy",
					Details: "ring has no members",
					Latency: latency.String(),
				}
				status.Status = "degraded"
			} else {
				status.Components["ring"] = ComponentHealth{
					Status:  "healthy",
					Details: fmt.Sprintf("%d nodes", nodes),
					Latency: latency.String(),
				}
			}
			mu.Unlock()
		}()
	}

	wg.Wait()
	return status
}

// Handler serves Check as JSON, returning 503 when degraded.
func (h *HealthChecker) Handler(w http.ResponseWriter, r *http.Request) {
	status := h.Check()

	w.Header().Set("Content-Type", "application/json")
	if status.Status != "healthy" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(status)
}
