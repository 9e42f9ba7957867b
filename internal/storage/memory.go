package storage

import (
	"context"
	"sync"

	"tracker/internal/core"
)

// MemorySlot keeps the persisted ledger in process memory. It backs the
// default backend and doubles as the test fake for the ledger store.
type MemorySlot struct {
	mu      sync.Mutex
	records []core.Transaction
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

func (s *MemorySlot) Load(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *MemorySlot) Save(_ context.Context, records []core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make([]core.Transaction, len(records))
	copy(s.records, records)
	return nil
}

func (s *MemorySlot) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	return nil
}
