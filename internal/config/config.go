// Package config loads the ambient, per-process settings a node or tool
// reads at startup — metrics address, log level, wire compression — as
// distinct from cluster membership, which always comes from the command
// line per spec.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the ambient configuration optionally loaded from a YAML file.
// None of these fields affect ring membership or ownership; they only tune
// logging, the metrics sidecar, and frame compression.
type Config struct {
	MetricsAddr          string `yaml:"metrics_addr"`
	LogLevel             string `yaml:"log_level"`
	CompressionThreshold int    `yaml:"compression_threshold"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		MetricsAddr:          ":9090",
		LogLevel:             "info",
		CompressionThreshold: 0,
	}
}

// Load reads and parses a YAML config file, starting from Default() so an
// omitted field keeps its default rather than zeroing out.
func Load(filename string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
