// Package backend selects and builds the persistence slot the ledger
// writes through.
package backend

import (
	"fmt"
	"log/slog"

	"tracker/internal/config"
	"tracker/internal/storage"
)

type Type string

const (
	MemoryBackend Type = "memory"
	FileBackend   Type = "file"
	SQLiteBackend Type = "sqlite"
)

func (t Type) String() string { return string(t) }

func (t Type) IsValid() bool {
	switch t {
	case MemoryBackend, FileBackend, SQLiteBackend:
		return true
	}
	return false
}

// Types returns all valid backend types.
func Types() []Type {
	return []Type{MemoryBackend, FileBackend, SQLiteBackend}
}

// NewSlot builds the persistence slot named by cfg.DataBackend. The
// returned cleanup releases backend resources and is safe to call once
// on shutdown.
func NewSlot(cfg *config.Config, logger *slog.Logger) (storage.Slot, func() error, error) {
	if logger == nil {
		logger = slog.Default()
	}
	noop := func() error { return nil }

	t := Type(cfg.DataBackend)
	switch t {
	case MemoryBackend:
		logger.Info("Using in-memory backend, data will not survive restarts")
		return storage.NewMemorySlot(), noop, nil

	case FileBackend:
		logger.Info("Using file backend", "path", cfg.LedgerFilePath)
		return storage.NewFileSlot(cfg.LedgerFilePath), noop, nil

	case SQLiteBackend:
		logger.Info("Using SQLite backend", "path", cfg.SQLiteDBPath)
		slot, err := storage.NewSQLiteSlot(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create SQLite backend: %w", err)
		}
		return slot, slot.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown backend type: %s", cfg.DataBackend)
	}
}
