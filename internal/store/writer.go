package store

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// writer performs fire-and-forget persistence. Mutations enqueue the
// encoded state and continue immediately; a single goroutine applies the
// writes in order so a later blob always supersedes an earlier one.
type writer struct {
	jobs      chan saveJob
	group     *errgroup.Group
	persister Persister
	warn      func(op string, err error)
	closed    atomic.Bool
}

type saveJob struct {
	op   string
	blob []byte
}

func newWriter(persister Persister, warn func(string, error)) *writer {
	w := &writer{
		jobs:      make(chan saveJob, 16),
		group:     new(errgroup.Group),
		persister: persister,
		warn:      warn,
	}
	w.group.Go(w.run)
	return w
}

func (w *writer) run() error {
	for job := range w.jobs {
		if job.blob == nil {
			continue
		}
		// Best effort, single attempt. The in-memory state stays
		// authoritative regardless of the outcome.
		if err := w.persister.Save(context.Background(), job.blob); err != nil {
			w.warn(job.op, err)
		}
	}
	return nil
}

func (w *writer) enqueue(op string, blob []byte) {
	if w.closed.Load() {
		return
	}
	select {
	case w.jobs <- saveJob{op: op, blob: blob}:
	default:
		w.warn(op, errPersistBacklog)
	}
}

// close drains the queue and waits for the last write to land.
func (w *writer) close() error {
	if w.closed.CompareAndSwap(false, true) {
		close(w.jobs)
	}
	return w.group.Wait()
}
