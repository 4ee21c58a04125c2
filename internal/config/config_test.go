package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Server != DefaultServer {
		t.Errorf("expected Server=%s, got %s", DefaultServer, cfg.Server)
	}
	if cfg.ReviewedBy != "Faculty" {
		t.Errorf("expected ReviewedBy=Faculty, got %s", cfg.ReviewedBy)
	}
	if !cfg.Discovery.Enabled {
		t.Error("expected discovery enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	t.Setenv("COUNCIL_SERVER", "")
	t.Setenv("COUNCIL_TIMEOUT", "")
	t.Setenv("COUNCIL_REVIEWED_BY", "")
	t.Setenv("COUNCIL_LOG_LEVEL", "")

	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Server = "http://192.168.1.20:8000"
	cfg.ReviewedBy = "Dr. Rao"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Server != "http://192.168.1.20:8000" {
		t.Errorf("expected saved server, got %s", loaded.Server)
	}
	if loaded.ReviewedBy != "Dr. Rao" {
		t.Errorf("expected ReviewedBy=Dr. Rao, got %s", loaded.ReviewedBy)
	}
}

func TestConfig_LoadMissingFile(t *testing.T) {
	t.Setenv("COUNCIL_SERVER", "")
	path := filepath.Join(t.TempDir(), "nope", "config.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("missing file should fall back to defaults: %v", err)
	}
	if cfg.Server != DefaultServer {
		t.Errorf("expected default server, got %s", cfg.Server)
	}
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("COUNCIL_SERVER", "http://10.1.2.3:9000")
	t.Setenv("COUNCIL_LOG_LEVEL", "debug")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server != "http://10.1.2.3:9000" {
		t.Errorf("expected env server, got %s", cfg.Server)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected env log level, got %s", cfg.Logging.Level)
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()

	cfg.Server = "192.168.1.20:8000"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for URL without scheme")
	}

	cfg = DefaultConfig()
	cfg.Timeout = "banana"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for bad timeout")
	}

	cfg = DefaultConfig()
	cfg.Logging.Level = "loud"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for bad log level")
	}
}

func TestConfig_RequestTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timeout = "45s"
	if got := cfg.RequestTimeout().Seconds(); got != 45 {
		t.Errorf("expected 45s, got %vs", got)
	}

	var zero Config
	if zero.RequestTimeout() <= 0 {
		t.Error("zero config should still yield a positive timeout")
	}
}
