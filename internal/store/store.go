// Package store owns the canonical mutable expense state. It applies
// validated mutations in memory, mirrors every successful mutation to a
// durable key-value slot through the Persister port, and surfaces
// recoverable problems as warnings instead of failing the caller.
package store

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"outlay/internal/cache"
	"outlay/internal/core"
	"outlay/internal/log"
)

var (
	// ErrNotReady is returned by mutations issued before Load.
	ErrNotReady = errors.New("store not ready")
	// ErrNotFound is returned by Persister.Load when no state was saved yet.
	ErrNotFound = errors.New("state not found")
	// ErrRecordNotFound is returned when an update targets an unknown id.
	ErrRecordNotFound = errors.New("expense not found")

	errPersistBacklog = errors.New("persistence backlog full, write dropped")
)

type (
	// Persister is the side-effecting port the Store writes its state
	// blob through. Implementations are best-effort: a failed Save is
	// surfaced as a warning and never rolls back memory.
	Persister interface {
		Load(ctx context.Context) ([]byte, error)
		Save(ctx context.Context, blob []byte) error
	}

	// Warning is a recoverable problem surfaced to the presentation
	// layer for transient user feedback.
	Warning struct {
		Op  string
		Err error
	}

	// Draft is the raw user input for a new expense. Amount and Date
	// arrive as strings and are validated before any state changes.
	Draft struct {
		Title       string
		Amount      string
		Category    string
		Date        string
		Description string
	}
)

// Store is the single process-wide state container. All other components
// receive copies; nothing outside the Store mutates its collections.
type Store struct {
	mu        sync.RWMutex
	state     State
	rev       uint64
	ready     bool
	persister Persister
	writer    *writer
	views     *cache.LRU[[]core.Bucket]
	warnings  chan Warning
	logger    *log.Logger
	now       func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock injects the current-time source, letting tests pin the
// reference moment for relative date windows.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger overrides the default logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) { s.logger = logger.WithComponent(log.ComponentStore) }
}

// New creates a Store in the uninitialized state. Call Load before
// issuing mutations.
func New(persister Persister, opts ...Option) *Store {
	s := &Store{
		state:     DefaultState(),
		persister: persister,
		views:     cache.New[[]core.Bucket](32, time.Minute),
		warnings:  make(chan Warning, 16),
		logger:    log.New(log.Config{Component: log.ComponentStore}),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.writer = newWriter(persister, s.warn)
	return s
}

// Load attempts to read persisted state exactly once and transitions the
// Store to ready. Absent or corrupt state is not fatal: the Store comes
// up ready on the built-in defaults and the problem is surfaced as a
// warning.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		return
	}
	s.ready = true

	blob, err := s.persister.Load(ctx)
	switch {
	case errors.Is(err, ErrNotFound):
		s.logger.InfoContext(ctx, "No persisted state, starting fresh")
	case err != nil:
		s.logger.WarnContext(ctx, "Failed to load persisted state, using defaults", log.FieldError, err)
		s.warn(log.OpLoad, err)
	default:
		st, derr := decodeState(blob)
		if derr != nil {
			s.logger.WarnContext(ctx, "Persisted state unparsable, using defaults", log.FieldError, derr)
			s.warn(log.OpLoad, derr)
			return
		}
		s.state = st
		s.logger.InfoContext(ctx, "State loaded",
			log.FieldCount, len(st.Expenses),
			"categories", len(st.Categories))
	}
}

// Ready reports whether the load attempt has completed.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// AddExpense validates the draft, assigns a fresh id and creation
// timestamp, appends the record and triggers persistence.
func (s *Store) AddExpense(ctx context.Context, d Draft) (core.Record, error) {
	amount, err := core.ParseAmount(d.Amount)
	if err != nil {
		return core.Record{}, err
	}
	date, err := core.ParseDate(d.Date)
	if err != nil {
		return core.Record{}, err
	}
	rec := core.Record{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(d.Title),
		Amount:      amount,
		Category:    d.Category,
		Date:        date,
		Description: d.Description,
		CreatedAt:   s.now().UTC(),
	}
	if err := rec.Validate(); err != nil {
		return core.Record{}, err
	}

	s.mu.Lock()
	if !s.ready {
		s.mu.Unlock()
		return core.Record{}, ErrNotReady
	}
	s.state.Expenses = append(s.state.Expenses, rec)
	blob := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Expense added",
		log.FieldExpenseID, rec.ID,
		log.FieldTitle, rec.Title,
		log.FieldAmount, rec.Amount.Cents,
		log.FieldCategory, rec.Category,
		log.FieldDate, rec.Date.String())
	s.writer.enqueue(log.OpAdd, blob)
	return rec, nil
}

// UpdateExpense replaces the stored record with the same id wholesale and
// refreshes its update timestamp. The record's id and creation timestamp
// are preserved from the original.
func (s *Store) UpdateExpense(ctx context.Context, rec core.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	if !s.ready {
		s.mu.Unlock()
		return ErrNotReady
	}
	i := s.indexOfLocked(rec.ID)
	if i < 0 {
		s.mu.Unlock()
		s.warn(log.OpUpdate, ErrRecordNotFound)
		return ErrRecordNotFound
	}
	updated := s.now().UTC()
	rec.CreatedAt = s.state.Expenses[i].CreatedAt
	rec.UpdatedAt = &updated
	s.state.Expenses[i] = rec
	blob := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Expense updated", log.FieldExpenseID, rec.ID)
	s.writer.enqueue(log.OpUpdate, blob)
	return nil
}

// DeleteExpense removes the record with the given id. A missing id is a
// no-op, reported through the warning channel but not an error.
func (s *Store) DeleteExpense(ctx context.Context, id string) bool {
	s.mu.Lock()
	if !s.ready {
		s.mu.Unlock()
		return false
	}
	i := s.indexOfLocked(id)
	if i < 0 {
		s.mu.Unlock()
		s.warn(log.OpDelete, ErrRecordNotFound)
		return false
	}
	s.state.Expenses = append(s.state.Expenses[:i], s.state.Expenses[i+1:]...)
	blob := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Expense deleted", log.FieldExpenseID, id)
	s.writer.enqueue(log.OpDelete, blob)
	return true
}

// AddCategory appends a new category name. Empty names and exact
// (case-sensitive) duplicates are no-ops. The category set never shrinks.
func (s *Store) AddCategory(ctx context.Context, name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}

	s.mu.Lock()
	if !s.ready {
		s.mu.Unlock()
		return false
	}
	for _, existing := range s.state.Categories {
		if existing == name {
			s.mu.Unlock()
			return false
		}
	}
	s.state.Categories = append(s.state.Categories, name)
	blob := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Category added", log.FieldCategory, name)
	s.writer.enqueue(log.OpCategory, blob)
	return true
}

// SetFilters shallow-merges the patch into the current filter spec,
// leaving fields the patch does not mention untouched.
func (s *Store) SetFilters(ctx context.Context, patch core.FilterPatch) {
	s.mu.Lock()
	if !s.ready {
		s.mu.Unlock()
		return
	}
	s.state.Filters = s.state.Filters.Apply(patch)
	blob := s.snapshotLocked()
	s.mu.Unlock()

	s.writer.enqueue(log.OpSetFilters, blob)
}

// Expenses returns a snapshot copy of the record collection.
func (s *Store) Expenses() []core.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone().Expenses
}

// Categories returns a snapshot copy of the category set.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.state.Categories...)
}

// Filters returns the current filter spec.
func (s *Store) Filters() core.FilterSpec {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Filters
}

// Filtered returns the records matching the current filter spec.
func (s *Store) Filtered() []core.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return core.Filter(s.state.Expenses, s.state.Filters, s.now())
}

// CategoryView returns the category breakdown over all records,
// memoized until the next mutation.
func (s *Store) CategoryView() []core.Bucket {
	return s.cachedView("cat", core.CategoryTotals)
}

// MonthlyView returns the full chronological monthly rollup, memoized
// until the next mutation.
func (s *Store) MonthlyView() []core.Bucket {
	return s.cachedView("month", core.MonthlyTotals)
}

// WeeklyView returns the full chronological weekly rollup, memoized
// until the next mutation.
func (s *Store) WeeklyView() []core.Bucket {
	return s.cachedView("week", core.WeeklyTotals)
}

// Stats returns the headline totals for the dashboard overview.
func (s *Store) Stats() core.Overview {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return core.OverviewStats(s.state.Expenses, s.now())
}

// Warnings exposes the recoverable-warning channel. Reads are optional;
// the channel is buffered and never blocks a mutation.
func (s *Store) Warnings() <-chan Warning {
	return s.warnings
}

// Close flushes pending persistence writes and stops the writer.
func (s *Store) Close() error {
	return s.writer.close()
}

func (s *Store) cachedView(kind string, compute func([]core.Record) []core.Bucket) []core.Bucket {
	s.mu.RLock()
	key := kind + ":" + strconv.FormatUint(s.rev, 10)
	if buckets, ok := s.views.Get(key); ok {
		s.mu.RUnlock()
		return buckets
	}
	buckets := compute(s.state.Expenses)
	s.mu.RUnlock()
	s.views.Set(key, buckets)
	return buckets
}

// snapshotLocked bumps the revision and encodes the state for the
// persistence writer. Callers must hold the write lock.
func (s *Store) snapshotLocked() []byte {
	s.rev++
	blob, err := s.state.encode()
	if err != nil {
		// Leave blob nil; the writer treats it as a failed serialization.
		s.warn(log.OpPersist, err)
		return nil
	}
	return blob
}

func (s *Store) indexOfLocked(id string) int {
	for i, r := range s.state.Expenses {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) warn(op string, err error) {
	s.logger.Warn("Recoverable problem", log.FieldOperation, op, log.FieldError, err)
	select {
	case s.warnings <- Warning{Op: op, Err: err}:
	default:
	}
}
