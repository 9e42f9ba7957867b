package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"tracker/internal/amqp"
	"tracker/internal/core"
	"tracker/internal/storage"
)

type failingSlot struct{ err error }

func (s *failingSlot) Load(context.Context) ([]core.Transaction, error) { return nil, s.err }
func (s *failingSlot) Save(context.Context, []core.Transaction) error   { return nil }
func (s *failingSlot) Clear(context.Context) error                      { return nil }

func TestHandleLedgerEvent(t *testing.T) {
	slot := storage.NewMemorySlot()
	ctx := context.Background()
	slot.Save(ctx, []core.Transaction{
		{ID: "1", Title: "Coffee", Amount: 4.5, Category: core.CategoryFood, Kind: core.Expense, CreatedAt: time.Now()},
	})

	w := NewAnalyticsWorker(slot)
	msg := amqp.NewLedgerEventMessage(amqp.OpAdd, "1", 1)

	if err := w.HandleLedgerEvent(ctx, msg); err != nil {
		t.Fatalf("HandleLedgerEvent: %v", err)
	}
}

func TestHandleLedgerEventPropagatesLoadFailure(t *testing.T) {
	loadErr := errors.New("backend gone")
	w := NewAnalyticsWorker(&failingSlot{err: loadErr})
	msg := amqp.NewLedgerEventMessage(amqp.OpRemove, "1", 0)

	err := w.HandleLedgerEvent(context.Background(), msg)
	if !errors.Is(err, loadErr) {
		t.Fatalf("HandleLedgerEvent error = %v, want wrapped load failure", err)
	}
}

func TestRefreshAggregatesEmptyLedger(t *testing.T) {
	w := NewAnalyticsWorker(storage.NewMemorySlot())
	if err := w.RefreshAggregates(context.Background()); err != nil {
		t.Fatalf("RefreshAggregates on empty ledger: %v", err)
	}
}

func TestRunPeriodicRefreshStopsOnCancel(t *testing.T) {
	w := NewAnalyticsWorker(storage.NewMemorySlot())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- w.RunPeriodicRefresh(ctx, 10*time.Millisecond)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("RunPeriodicRefresh error = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("RunPeriodicRefresh did not stop after cancel")
	}
}
