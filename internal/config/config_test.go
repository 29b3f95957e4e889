package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "node.yaml")
	contents := "metrics_addr: \":9999\"\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MetricsAddr != ":9999" {
		t.Fatalf("MetricsAddr = %q, want :9999", cfg.MetricsAddr)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	// CompressionThreshold wasn't in the file, so it keeps its default.
	if cfg.CompressionThreshold != 0 {
		t.Fatalf("CompressionThreshold = %d, want 0 (default)", cfg.CompressionThreshold)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path.yaml"); err == nil {
		t.Fatal("expected error loading nonexistent file")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.MetricsAddr == "" || cfg.LogLevel == "" {
		t.Fatalf("Default() returned zero-valued fields: %+v", cfg)
	}
}
