// Package metricssvc is the node's metrics and health HTTP sidecar. It runs
// on a separate port from the TCP protocol listener and never shares a
// handler with it.
package metricssvc

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics tracks per-opcode request counts and latencies plus the node's
// current local set size, the TCP-protocol analogues of the original
// per-path HTTP metrics.
type Metrics struct {
	requestDuration *prometheus.HistogramVec
	requestCount    *prometheus.CounterVec
	localSetSize    prometheus.Gauge
}

// NewMetrics registers and returns a fresh metrics set. Call once per node
// process; registering twice against the default registry panics.
func NewMetrics() *Metrics {
	return &Metrics{
		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kvset_request_duration_seconds",
			Help:    "Duration of handled TCP requests by opcode",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}, []string{"opcode"}),

		requestCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kvset_requests_total",
			Help: "Total number of TCP requests handled, by opcode",
		}, []string{"opcode"}),

		localSetSize: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "kvset_local_set_size",
			Help: "Number of values currently held by this node's local set",
		}),
	}
}

// ObserveRequest increments the per-opcode request counter.
func (m *Metrics) ObserveRequest(opcode string) {
	m.requestCount.WithLabelValues(opcode).Inc()
}

// ObserveRequestDuration records how long a single request took to handle.
func (m *Metrics) ObserveRequestDuration(opcode string, seconds float64) {
	m.requestDuration.WithLabelValues(opcode).Observe(seconds)
}

// SetLocalSetSize updates the local-set-size gauge.
func (m *Metrics) SetLocalSetSize(n int) {
	m.localSetSize.Set(float64(n))
}

// Handler returns the Prometheus scrape handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.Handler()
}
