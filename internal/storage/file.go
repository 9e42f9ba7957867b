package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"tracker/internal/core"
)

// FileSlot persists the ledger as a single JSON document on disk.
type FileSlot struct {
	path string
}

// transactionJSON is the on-disk shape of a record.
type transactionJSON struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Amount    float64   `json:"amount"`
	Category  string    `json:"category,omitempty"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewFileSlot(path string) *FileSlot {
	return &FileSlot{path: path}
}

// Load reads the persisted ledger. A missing file or unparseable content
// degrades to an empty ledger.
func (s *FileSlot) Load(ctx context.Context) ([]core.Transaction, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read ledger file: %w", err)
	}

	var stored []transactionJSON
	if err := json.Unmarshal(data, &stored); err != nil {
		slog.WarnContext(ctx, "Ledger file is malformed, starting empty",
			"path", s.path, "error", err)
		return nil, nil
	}

	records := make([]core.Transaction, len(stored))
	for i, r := range stored {
		records[i] = core.Transaction{
			ID:        r.ID,
			Title:     r.Title,
			Amount:    r.Amount,
			Category:  core.NormalizeCategory(r.Category),
			Kind:      core.Kind(r.Kind),
			CreatedAt: r.CreatedAt,
		}
	}
	return records, nil
}

// Save overwrites the whole document. The write goes through a temp file
// and a rename so a crash never leaves a half-written ledger behind.
func (s *FileSlot) Save(_ context.Context, records []core.Transaction) error {
	stored := make([]transactionJSON, len(records))
	for i, r := range records {
		stored[i] = transactionJSON{
			ID:        r.ID,
			Title:     r.Title,
			Amount:    r.Amount,
			Category:  string(r.Category),
			Kind:      string(r.Kind),
			CreatedAt: r.CreatedAt,
		}
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("marshal ledger: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create ledger directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".ledger-*.json")
	if err != nil {
		return fmt.Errorf("create temp ledger file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write ledger file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close ledger file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace ledger file: %w", err)
	}
	return nil
}

// Clear removes the persisted document entirely.
func (s *FileSlot) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove ledger file: %w", err)
	}
	return nil
}
