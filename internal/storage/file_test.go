package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"outlay/internal/store"
)

func TestFileStateStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	fs, err := NewFileStateStore(path)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	ctx := context.Background()
	if _, err := fs.Load(ctx); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound before first save, got %v", err)
	}

	blob := []byte(`{"expenses":[],"categories":["Other"]}`)
	if err := fs.Save(ctx, blob); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := fs.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != string(blob) {
		t.Fatalf("expected %s, got %s", blob, got)
	}

	// A later save fully replaces the slot.
	if err := fs.Save(ctx, []byte(`{}`)); err != nil {
		t.Fatalf("second save: %v", err)
	}
	got, _ = fs.Load(ctx)
	if string(got) != `{}` {
		t.Fatalf("expected replacement, got %s", got)
	}

	// No temp file left behind.
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
}

func TestMemoryStateStore(t *testing.T) {
	m := NewMemoryStateStore()
	ctx := context.Background()

	if _, err := m.Load(ctx); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := m.Save(ctx, []byte("abc")); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := m.Load(ctx)
	if err != nil || string(got) != "abc" {
		t.Fatalf("expected abc, got %s (err=%v)", got, err)
	}

	// The returned slice is a copy.
	got[0] = 'x'
	again, _ := m.Load(ctx)
	if string(again) != "abc" {
		t.Fatal("Load must not alias the stored blob")
	}
}
