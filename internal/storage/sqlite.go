package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"tracker/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteSlot persists the ledger in a local SQLite database. The slot
// contract is unchanged: Save rewrites the full set inside one
// transaction, keeping insertion order in the position column.
type SQLiteSlot struct {
	db *sql.DB
}

func NewSQLiteSlot(dbPath string) (*SQLiteSlot, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteSlot{db: db}, nil
}

func (s *SQLiteSlot) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteSlot) Load(ctx context.Context) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, amount, category, kind, created_at FROM transactions ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var records []core.Transaction
	for rows.Next() {
		var (
			tx        core.Transaction
			category  string
			kind      string
			createdAt string
		)
		if err := rows.Scan(&tx.ID, &tx.Title, &tx.Amount, &category, &kind, &createdAt); err != nil {
			slog.WarnContext(ctx, "Ledger rows are malformed, starting empty", "error", err)
			return nil, nil
		}
		ts, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			slog.WarnContext(ctx, "Ledger timestamp is malformed, starting empty",
				"id", tx.ID, "created_at", createdAt)
			return nil, nil
		}
		tx.Category = core.NormalizeCategory(category)
		tx.Kind = core.Kind(kind)
		tx.CreatedAt = ts
		records = append(records, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return records, nil
}

func (s *SQLiteSlot) Save(ctx context.Context, records []core.Transaction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	for _, r := range records {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO transactions (id, title, amount, category, kind, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
			r.ID, r.Title, r.Amount, string(r.Category), string(r.Kind),
			r.CreatedAt.UTC().Format(time.RFC3339Nano))
		if err != nil {
			return fmt.Errorf("insert transaction %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

func (s *SQLiteSlot) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	return nil
}
