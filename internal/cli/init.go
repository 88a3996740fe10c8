// Package cli provides common initialization for the outlay command.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"outlay/internal/backend"
	"outlay/internal/config"
	"outlay/internal/log"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger initializes structured logging at the given level and sets
// it as the process default.
func SetupLogger(level slog.Level) *log.Logger {
	logger := log.New(log.Config{Level: level, Component: log.ComponentApp})
	log.SetDefault(logger)
	return logger
}

// LoadAndValidateConfig loads configuration and validates it, exiting the
// process on failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", log.FieldError, err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// OpenBackend constructs the configured persistence backend, exiting the
// process on failure.
func OpenBackend(logger *log.Logger, cfg *config.Config) *backend.Result {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}
	result, err := backend.New(bcfg, logger)
	if err != nil {
		logger.Error("Failed to initialize backend", log.FieldError, err, log.FieldBackend, bcfg.Type.String())
		os.Exit(1)
	}
	return result
}
