// Command node runs one storage node: it serves the framed binary protocol
// on --port and exposes a Prometheus/health HTTP sidecar on --metrics-addr.
package main

import (
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"

	"kvset/internal/config"
	"kvset/internal/localset"
	"kvset/internal/logging"
	"kvset/internal/metricssvc"
	"kvset/internal/server"
)

func main() {
	var (
		port                 = flag.Int("port", 4000, "TCP port to serve the framed protocol on")
		metricsAddr          = flag.String("metrics-addr", "", "address for the metrics/health HTTP sidecar (overrides --config)")
		logLevel             = flag.String("log-level", "", "log level: debug, info, warn, error (overrides --config and KVSET_LOG_LEVEL)")
		compressionThreshold = flag.Int("compression-threshold", -1, "gzip-compress frame bodies at or above this many bytes, 0 disables (overrides --config)")
		configPath           = flag.String("config", "", "optional YAML file with ambient node settings")
		expectedElements     = flag.Int("expected-elements", 100000, "expected local set size, used to size the bloom filter")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "node: loading config %s: %v\n", *configPath, err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	} else if env := os.Getenv("KVSET_LOG_LEVEL"); env != "" {
		cfg.LogLevel = env
	}
	if *compressionThreshold >= 0 {
		cfg.CompressionThreshold = *compressionThreshold
	}

	log := logging.New(cfg.LogLevel)

	set := localset.NewBloomSet(*expectedElements)
	metrics := metricssvc.NewMetrics()
	// The node itself holds no ring: it doesn't route, so it has nothing
	// to report a ring component against.
	health := metricssvc.NewHealthChecker(set, nil)

	listener, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", *port))
	if err != nil {
		log.WithError(err).Fatal("failed to bind protocol listener")
	}
	log.WithField("addr", listener.Addr().String()).Info("node listening")

	sidecar := metricssvc.NewSidecarRouter(log, metrics, health)
	go func() {
		if err := http.ListenAndServe(cfg.MetricsAddr, sidecar); err != nil {
			log.WithError(err).Error("metrics sidecar stopped")
		}
	}()
	log.WithField("addr", cfg.MetricsAddr).Info("metrics sidecar listening")

	srv := server.New(set, log, metrics, cfg.CompressionThreshold)
	if err := srv.Serve(listener); err != nil {
		log.WithError(err).Fatal("protocol listener stopped")
	}
}
