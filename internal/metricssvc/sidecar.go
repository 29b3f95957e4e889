package metricssvc

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"kvset/internal/logging"
)

// NewSidecarRouter wires the metrics and health endpoints onto a dedicated
// mux, separate from the TCP protocol listener.
func NewSidecarRouter(log *logrus.Logger, metrics *Metrics, health *HealthChecker) http.Handler {
	router := mux.NewRouter()
	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/healthz", health.Handler).Methods(http.MethodGet)
	return logging.Middleware(log, router)
}
