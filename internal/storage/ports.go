package storage

import (
	"context"

	"tracker/internal/core"
)

// Slot is the durable key-value slot holding the full ledger.
// Save always overwrites the entire persisted representation; there is no
// incremental format. Load must treat malformed stored data as "no data"
// rather than surfacing a parse failure.
type Slot interface {
	Load(ctx context.Context) ([]core.Transaction, error)
	Save(ctx context.Context, records []core.Transaction) error
	Clear(ctx context.Context) error
}
