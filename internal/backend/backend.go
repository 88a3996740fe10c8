// Package backend selects and constructs the persistence backend the
// Store writes its state through.
package backend

import (
	"fmt"

	"outlay/internal/config"
	"outlay/internal/log"
	"outlay/internal/storage"
	"outlay/internal/store"
)

// Type identifies a persistence backend.
type Type string

const (
	SQLite Type = "sqlite"
	File   Type = "file"
	Memory Type = "memory"
)

func (t Type) String() string { return string(t) }

// IsValid reports whether the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case SQLite, File, Memory:
		return true
	}
	return false
}

// CleanupFunc releases backend resources.
type CleanupFunc func() error

// Result bundles the constructed persister with its cleanup.
type Result struct {
	Persister store.Persister
	Cleanup   CleanupFunc
}

// Config holds what the factory needs to build a backend.
type Config struct {
	Type          Type
	SQLiteDBPath  string
	StateFilePath string
}

// FromAppConfig converts the application config into a backend config.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}
	t := Type(appConfig.Backend)
	if !t.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.Backend)
	}
	return Config{
		Type:          t,
		SQLiteDBPath:  appConfig.SQLiteDBPath,
		StateFilePath: appConfig.StateFilePath,
	}, nil
}

// New constructs the persister for the configured backend.
func New(cfg Config, logger *log.Logger) (*Result, error) {
	if logger == nil {
		logger = log.New(log.Config{Component: log.ComponentBackend})
	} else {
		logger = logger.WithComponent(log.ComponentBackend)
	}

	switch cfg.Type {
	case SQLite:
		repo, err := storage.NewSQLiteStateStore(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite state store: %w", err)
		}
		logger.Info("Initialized SQLite backend", log.FieldPath, cfg.SQLiteDBPath)
		return &Result{Persister: repo, Cleanup: repo.Close}, nil

	case File:
		fs, err := storage.NewFileStateStore(cfg.StateFilePath)
		if err != nil {
			return nil, fmt.Errorf("initialize file state store: %w", err)
		}
		logger.Info("Initialized file backend", log.FieldPath, cfg.StateFilePath)
		return &Result{Persister: fs, Cleanup: nil}, nil

	case Memory:
		logger.Info("Initialized memory backend")
		return &Result{Persister: storage.NewMemoryStateStore(), Cleanup: nil}, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
	}
}
