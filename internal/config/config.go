// Package config holds the client configuration, stored as YAML at
// ~/.council/config.yaml with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultServer is used when neither flag, env, discovery file, nor
// config names a backend.
const DefaultServer = "http://127.0.0.1:8000"

// Config holds all council client configuration.
type Config struct {
	// Server is the backend base URL, e.g. http://192.168.1.20:8000.
	Server string `yaml:"server"`

	// Timeout bounds a single API request.
	Timeout string `yaml:"timeout"`

	// ReviewedBy is the reviewer name attached to vetting submissions.
	ReviewedBy string `yaml:"reviewed_by"`

	// Discovery configures dev-server metadata lookup.
	Discovery DiscoveryConfig `yaml:"discovery"`

	// Logging configures the client log output.
	Logging LoggingConfig `yaml:"logging"`
}

// DiscoveryConfig points at the dev-server metadata file that names
// the backend host on the LAN.
type DiscoveryConfig struct {
	Enabled      bool   `yaml:"enabled"`
	MetadataPath string `yaml:"metadata_path"`
}

// LoggingConfig controls log verbosity and destination.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // empty: stderr (CLI) / discarded (TUI)
}

// DefaultConfig returns the baseline configuration.
func DefaultConfig() *Config {
	return &Config{
		Server:     DefaultServer,
		Timeout:    "30s",
		ReviewedBy: "Faculty",
		Discovery: DiscoveryConfig{
			Enabled:      true,
			MetadataPath: filepath.Join(configDir(), "server.json"),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".council"
	}
	return filepath.Join(home, ".council")
}

// Load reads the config at path, falling back to defaults when the
// file does not exist, then applies env overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// First run: defaults + env only.
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as YAML, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides lets the environment win over the file.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("COUNCIL_SERVER"); v != "" {
		c.Server = v
	}
	if v := os.Getenv("COUNCIL_TIMEOUT"); v != "" {
		c.Timeout = v
	}
	if v := os.Getenv("COUNCIL_REVIEWED_BY"); v != "" {
		c.ReviewedBy = v
	}
	if v := os.Getenv("COUNCIL_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks invariants before the config is used.
func (c *Config) Validate() error {
	if c.Server == "" {
		return fmt.Errorf("server URL must not be empty")
	}
	if !strings.HasPrefix(c.Server, "http://") && !strings.HasPrefix(c.Server, "https://") {
		return fmt.Errorf("server URL must start with http:// or https://, got %q", c.Server)
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Logging.Level)
	}
	return nil
}

// RequestTimeout parses the configured timeout. Validate guarantees it
// parses; the fallback covers a zero-valued Config.
func (c *Config) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}
