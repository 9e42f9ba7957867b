package ledger

import (
	"context"
	"errors"
	"testing"

	"tracker/internal/amqp"
	"tracker/internal/core"
	"tracker/internal/storage"
)

type capturingPublisher struct {
	events []*amqp.LedgerEventMessage
	err    error
}

func (p *capturingPublisher) PublishLedgerEvent(_ context.Context, msg *amqp.LedgerEventMessage) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, msg)
	return nil
}

func newTestService(t *testing.T, pub EventPublisher) *Service {
	t.Helper()
	store := Open(context.Background(), storage.NewMemorySlot())
	return NewService(store, pub)
}

func TestServicePublishesEventPerMutation(t *testing.T) {
	pub := &capturingPublisher{}
	svc := newTestService(t, pub)
	ctx := context.Background()

	tx, err := svc.Add(ctx, "Coffee", "4.50", "food", core.Expense)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := svc.Update(ctx, tx.ID, "Espresso", "3", "food"); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := svc.Remove(ctx, tx.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := svc.ResetAll(ctx); err != nil {
		t.Fatalf("ResetAll: %v", err)
	}

	wantOps := []string{amqp.OpAdd, amqp.OpUpdate, amqp.OpRemove, amqp.OpReset}
	if len(pub.events) != len(wantOps) {
		t.Fatalf("published %d events, want %d", len(pub.events), len(wantOps))
	}
	for i, want := range wantOps {
		if pub.events[i].Op != want {
			t.Errorf("event %d op = %q, want %q", i, pub.events[i].Op, want)
		}
	}
	if pub.events[0].ID != tx.ID || pub.events[0].Count != 1 {
		t.Errorf("add event = %+v, want id %q count 1", pub.events[0], tx.ID)
	}
	if pub.events[3].Count != 0 {
		t.Errorf("reset event count = %d, want 0", pub.events[3].Count)
	}
}

func TestServiceSkipsEventOnRejectedInput(t *testing.T) {
	pub := &capturingPublisher{}
	svc := newTestService(t, pub)

	if _, err := svc.Add(context.Background(), "Coffee", "abc", "food", core.Expense); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("Add error = %v, want ErrInvalidAmount", err)
	}
	if len(pub.events) != 0 {
		t.Fatalf("rejected mutation must not publish, got %d events", len(pub.events))
	}
}

func TestServicePublishFailureDoesNotFailMutation(t *testing.T) {
	pub := &capturingPublisher{err: errors.New("broker down")}
	svc := newTestService(t, pub)

	tx, err := svc.Add(context.Background(), "Coffee", "4.50", "food", core.Expense)
	if err != nil {
		t.Fatalf("Add should succeed despite publish failure: %v", err)
	}
	if tx.ID == "" || len(svc.Snapshot()) != 1 {
		t.Fatal("mutation should be applied despite publish failure")
	}
}

func TestServiceWithoutPublisher(t *testing.T) {
	svc := newTestService(t, nil)

	if _, err := svc.Add(context.Background(), "Coffee", "4.50", "food", core.Expense); err != nil {
		t.Fatalf("Add without publisher: %v", err)
	}
}
