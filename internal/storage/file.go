package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"outlay/internal/store"
)

// FileStateStore persists the state blob as a single JSON file. Writes go
// through a temp file and rename so a crash never leaves a half-written
// state behind.
type FileStateStore struct {
	path string
}

func NewFileStateStore(path string) (*FileStateStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}
	return &FileStateStore{path: path}, nil
}

// Load implements store.Persister.
func (f *FileStateStore) Load(_ context.Context) ([]byte, error) {
	blob, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}
	return blob, nil
}

// Save implements store.Persister.
func (f *FileStateStore) Save(_ context.Context, blob []byte) error {
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o600); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}
