package storage

import (
	"context"
	"sync"

	"outlay/internal/store"
)

// MemoryStateStore keeps the blob in memory only. Used for tests and for
// throwaway sessions where nothing should touch disk.
type MemoryStateStore struct {
	mu   sync.Mutex
	blob []byte
}

func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{}
}

// Load implements store.Persister.
func (m *MemoryStateStore) Load(_ context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.blob == nil {
		return nil, store.ErrNotFound
	}
	return append([]byte(nil), m.blob...), nil
}

// Save implements store.Persister.
func (m *MemoryStateStore) Save(_ context.Context, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blob = append([]byte(nil), blob...)
	return nil
}
