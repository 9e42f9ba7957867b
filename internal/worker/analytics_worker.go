// Package worker recomputes and reports ledger aggregates out of band.
// The worker process consumes ledger change events and refreshes its
// view from the shared persistence slot, so the API process never pays
// for reporting work.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tracker/internal/amqp"
	"tracker/internal/analytics"
	"tracker/internal/storage"
)

type AnalyticsWorker struct {
	slot storage.Slot
	now  func() time.Time
}

func NewAnalyticsWorker(slot storage.Slot) *AnalyticsWorker {
	return &AnalyticsWorker{
		slot: slot,
		now:  time.Now,
	}
}

// HandleLedgerEvent processes a single ledger change event by reloading
// the persisted collection and recomputing its aggregates.
func (w *AnalyticsWorker) HandleLedgerEvent(ctx context.Context, msg *amqp.LedgerEventMessage) error {
	slog.InfoContext(ctx, "Processing ledger event",
		"op", msg.Op,
		"id", msg.ID,
		"count", msg.Count)

	if err := w.RefreshAggregates(ctx); err != nil {
		return fmt.Errorf("refresh after %s event: %w", msg.Op, err)
	}
	return nil
}

// RefreshAggregates reloads the ledger and logs its current totals and
// trailing daily series. Also called periodically as a backup in case
// events are lost.
func (w *AnalyticsWorker) RefreshAggregates(ctx context.Context) error {
	records, err := w.slot.Load(ctx)
	if err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}

	totals := analytics.ComputeTotals(records)
	series := analytics.DailySeries(records, w.now())

	var trailing float64
	for _, day := range series {
		trailing += day.Total
	}

	slog.InfoContext(ctx, "Ledger aggregates refreshed",
		"records", len(records),
		"income", totals.Income,
		"expense", totals.Expense,
		"balance", totals.Balance,
		"series_days", len(series),
		"series_total", trailing)

	if max, err := analytics.MaxByAmount(records); err == nil {
		slog.InfoContext(ctx, "Largest transaction",
			"id", max.ID,
			"title", max.Title,
			"amount", max.Amount)
	}

	return nil
}

// RunPeriodicRefresh refreshes aggregates every interval until the
// context is cancelled.
func (w *AnalyticsWorker) RunPeriodicRefresh(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.RefreshAggregates(ctx); err != nil {
				slog.WarnContext(ctx, "Periodic refresh failed", "error", err)
			}
		}
	}
}
