// Package config loads application configuration from environment variables.
// All variables use the PAPER_ prefix.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration.
type Config struct {
	Server           ServerConfig
	Database         DatabaseConfig
	Log              LogConfig
	CurriculumPath   string // extra curriculum documents; empty means bundled only
	DistributionMode string // "greedy" or "optimal"
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int
	Host string
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig holds PostgreSQL connection settings. An empty URL disables
// the database curriculum source.
type DatabaseConfig struct {
	URL      string
	MaxConns int
	MinConns int
}

// Enabled reports whether a database is configured.
func (d DatabaseConfig) Enabled() bool {
	return d.URL != ""
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json or text
}

// Load reads configuration from environment variables with PAPER_ prefix.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envInt("PAPER_SERVER_PORT", 8080),
			Host: envStr("PAPER_SERVER_HOST", "0.0.0.0"),
		},
		Database: DatabaseConfig{
			URL:      envStr("PAPER_DATABASE_URL", ""),
			MaxConns: envInt("PAPER_DATABASE_MAX_CONNS", 10),
			MinConns: envInt("PAPER_DATABASE_MIN_CONNS", 1),
		},
		Log: LogConfig{
			Level:  strings.ToLower(envStr("PAPER_LOG_LEVEL", "info")),
			Format: strings.ToLower(envStr("PAPER_LOG_FORMAT", "json")),
		},
		CurriculumPath:   envStr("PAPER_CURRICULUM_PATH", ""),
		DistributionMode: strings.ToLower(envStr("PAPER_DISTRIBUTION_MODE", "greedy")),
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("PAPER_SERVER_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Database.Enabled() {
		if c.Database.MaxConns < 1 {
			return fmt.Errorf("PAPER_DATABASE_MAX_CONNS must be positive, got %d", c.Database.MaxConns)
		}
		if c.Database.MinConns < 0 || c.Database.MinConns > c.Database.MaxConns {
			return fmt.Errorf("PAPER_DATABASE_MIN_CONNS must be between 0 and %d, got %d", c.Database.MaxConns, c.Database.MinConns)
		}
	}

	if c.DistributionMode != "greedy" && c.DistributionMode != "optimal" {
		return fmt.Errorf("PAPER_DISTRIBUTION_MODE must be 'greedy' or 'optimal', got %q", c.DistributionMode)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("PAPER_LOG_LEVEL must be one of debug, info, warn, error, got %q", c.Log.Level)
	}

	if c.Log.Format != "json" && c.Log.Format != "text" {
		return fmt.Errorf("PAPER_LOG_FORMAT must be 'json' or 'text', got %q", c.Log.Format)
	}

	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
