package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v8"
)

// Config holds all runtime settings, sourced from the environment.
type Config struct {
	// Persistence backend: sqlite, file or memory.
	Backend string `env:"OUTLAY_BACKEND" envDefault:"sqlite"`

	// SQLite backend
	SQLiteDBPath string `env:"SQLITE_DB_PATH" envDefault:"./data/outlay.db"`

	// File backend
	StateFilePath string `env:"STATE_FILE_PATH" envDefault:"./data/state.json"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var problems []string

	switch c.Backend {
	case "sqlite":
		if c.SQLiteDBPath == "" {
			problems = append(problems, "SQLITE_DB_PATH cannot be empty when using the sqlite backend")
		}
	case "file":
		if c.StateFilePath == "" {
			problems = append(problems, "STATE_FILE_PATH cannot be empty when using the file backend")
		}
	case "memory":
	default:
		problems = append(problems, fmt.Sprintf("invalid backend '%s': must be one of [sqlite file memory]", c.Backend))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid log level '%s': must be one of [debug info warn error]", c.LogLevel))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// SlogLevel maps the configured level onto slog.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
