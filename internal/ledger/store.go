// Package ledger owns the canonical ordered collection of transaction
// records. All mutations go through the Store; derived aggregates are
// never held here, consumers recompute them from Snapshot.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"tracker/internal/core"
	"tracker/internal/storage"
)

// ErrPersistFailed marks a durability failure on a mutation that already
// applied in memory. Callers surface it as a warning, not a failure.
var ErrPersistFailed = errors.New("ledger persist failed")

// Store holds the ledger and writes every mutation back to the slot.
type Store struct {
	mu      sync.Mutex
	slot    storage.Slot
	records []core.Transaction

	now   func() time.Time
	newID func() string
}

// Option customizes a Store. Used by tests to pin clocks and ids.
type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDFunc(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// Open hydrates a Store from the slot. A failing or malformed slot
// degrades to an empty ledger; it never blocks startup.
func Open(ctx context.Context, slot storage.Slot, opts ...Option) *Store {
	s := &Store{
		slot:  slot,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	records, err := slot.Load(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Failed to load persisted ledger, starting empty", "error", err)
		records = nil
	}
	s.records = records

	slog.InfoContext(ctx, "Ledger hydrated", "records", len(records))
	return s
}

// Add validates the input, appends a new record and persists the full
// collection. The returned record carries the assigned id and timestamp.
func (s *Store) Add(ctx context.Context, title, amount, category string, kind core.Kind) (core.Transaction, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return core.Transaction{}, core.ErrEmptyTitle
	}
	amt, err := core.ParseAmount(amount)
	if err != nil {
		return core.Transaction{}, err
	}
	if err := kind.Validate(); err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := core.Transaction{
		ID:        s.newID(),
		Title:     title,
		Amount:    amt,
		Category:  core.NormalizeCategory(category),
		Kind:      kind,
		CreatedAt: s.now(),
	}
	s.records = append(s.records, tx)

	return tx, s.persist(ctx)
}

// Update replaces title, amount and category of the record with the given
// id. Id, creation time and kind are left untouched.
func (s *Store) Update(ctx context.Context, id, title, amount, category string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return core.ErrEmptyTitle
	}
	amt, err := core.ParseAmount(amount)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].ID != id {
			continue
		}
		s.records[i].Title = title
		s.records[i].Amount = amt
		s.records[i].Category = core.NormalizeCategory(category)
		return s.persist(ctx)
	}
	return fmt.Errorf("update %q: %w", id, core.ErrNotFound)
}

// Remove deletes the record with the given id. A missing id is a silent
// no-op; the collection is persisted either way.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.records[:0]
	for _, tx := range s.records {
		if tx.ID != id {
			kept = append(kept, tx)
		}
	}
	s.records = kept

	return s.persist(ctx)
}

// ResetAll empties the ledger and clears the persisted copy.
func (s *Store) ResetAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	if err := s.slot.Clear(ctx); err != nil {
		slog.WarnContext(ctx, "Failed to clear persisted ledger", "error", err)
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	return nil
}

// Snapshot returns a copy of the current collection in insertion order.
func (s *Store) Snapshot() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.Transaction, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records in the ledger.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// persist writes the full collection back to the slot. The in-memory
// mutation is never rolled back on failure. Callers hold s.mu.
func (s *Store) persist(ctx context.Context) error {
	if err := s.slot.Save(ctx, s.records); err != nil {
		slog.WarnContext(ctx, "Failed to persist ledger, in-memory state kept",
			"records", len(s.records), "error", err)
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	return nil
}
