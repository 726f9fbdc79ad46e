// Package config provides YAML-plus-environment-overlay configuration
// for waterscape's CLI and metrics server.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for a waterscape process.
type Config struct {
	Environment string        `yaml:"environment"`
	Logging     LoggingConfig `yaml:"logging"`
	Metrics     MetricsConfig `yaml:"metrics"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug|info|warn|error
	Format string `yaml:"format"` // json|pretty
}

// MetricsConfig controls the Prometheus metrics server.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// Default returns a Config populated with this project's defaults.
func Default() *Config {
	return &Config{
		Environment: "development",
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    ":9090",
		},
	}
}

// LoadFromFile reads and parses a YAML config file, applying Default()
// for any field the file does not set.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// GetEnvironment returns the deployment environment, preferring
// WATERSCAPE_ENV, then defaulting to "development".
func GetEnvironment() string {
	if env := os.Getenv("WATERSCAPE_ENV"); env != "" {
		return env
	}
	return "development"
}

// ApplyEnvironmentOverrides overrides cfg's fields with environment
// variables, the highest-priority configuration source.
func ApplyEnvironmentOverrides(cfg *Config) {
	if level := os.Getenv("WATERSCAPE_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if format := os.Getenv("WATERSCAPE_LOG_FORMAT"); format != "" {
		cfg.Logging.Format = format
	}
	if addr := os.Getenv("WATERSCAPE_METRICS_ADDR"); addr != "" {
		cfg.Metrics.Addr = addr
	}
	if enabled := os.Getenv("WATERSCAPE_METRICS_ENABLED"); enabled != "" {
		cfg.Metrics.Enabled = enabled == "true" || enabled == "1"
	}
}

// Load loads configuration from path if it exists, falling back to
// Default(), then applies environment overrides.
func Load(path string) (*Config, error) {
	var cfg *Config
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			loaded, err := LoadFromFile(path)
			if err != nil {
				return nil, err
			}
			cfg = loaded
		}
	}
	if cfg == nil {
		cfg = Default()
	}
	if cfg.Environment == "" {
		cfg.Environment = GetEnvironment()
	}

	ApplyEnvironmentOverrides(cfg)
	return cfg, nil
}
