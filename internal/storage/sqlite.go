// Package storage implements the Store's Persister port over durable
// local backends: a SQLite key-value slot, a plain JSON file, and an
// in-memory slot for tests and throwaway sessions.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"outlay/internal/store"

	_ "modernc.org/sqlite"
)

// StateKey is the well-known key the full state blob lives under.
const StateKey = "outlay/state"

// SQLiteStateStore persists the state blob in an app_state table keyed by
// StateKey.
type SQLiteStateStore struct {
	db *sql.DB
}

func NewSQLiteStateStore(dbPath string) (*SQLiteStateStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStateStore{db: db}, nil
}

// Load implements store.Persister.
func (s *SQLiteStateStore) Load(ctx context.Context) ([]byte, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM app_state WHERE key = ?`, StateKey).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	return blob, nil
}

// Save implements store.Persister.
func (s *SQLiteStateStore) Save(ctx context.Context, blob []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO app_state (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		StateKey, blob)
	if err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	slog.Debug("State persisted to SQLite", "key", StateKey, "bytes", len(blob))
	return nil
}

func (s *SQLiteStateStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
