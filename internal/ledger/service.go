package ledger

import (
	"context"
	"errors"
	"log/slog"

	"tracker/internal/amqp"
	"tracker/internal/core"
)

// EventPublisher announces ledger changes to interested consumers.
type EventPublisher interface {
	PublishLedgerEvent(ctx context.Context, msg *amqp.LedgerEventMessage) error
}

// Service wraps the Store and publishes a change event after every
// successful mutation. Publishing is best-effort: a failed publish is
// logged and never fails the mutation, mirroring how persistence
// failures are reported.
type Service struct {
	store     *Store
	publisher EventPublisher
}

func NewService(store *Store, publisher EventPublisher) *Service {
	return &Service{
		store:     store,
		publisher: publisher,
	}
}

func (s *Service) Add(ctx context.Context, title, amount, category string, kind core.Kind) (core.Transaction, error) {
	tx, err := s.store.Add(ctx, title, amount, category, kind)
	if err != nil && !errors.Is(err, ErrPersistFailed) {
		return core.Transaction{}, err
	}
	s.publish(ctx, amqp.OpAdd, tx.ID)
	return tx, err
}

func (s *Service) Update(ctx context.Context, id, title, amount, category string) error {
	err := s.store.Update(ctx, id, title, amount, category)
	if err != nil && !errors.Is(err, ErrPersistFailed) {
		return err
	}
	s.publish(ctx, amqp.OpUpdate, id)
	return err
}

func (s *Service) Remove(ctx context.Context, id string) error {
	err := s.store.Remove(ctx, id)
	if err != nil && !errors.Is(err, ErrPersistFailed) {
		return err
	}
	s.publish(ctx, amqp.OpRemove, id)
	return err
}

func (s *Service) ResetAll(ctx context.Context) error {
	err := s.store.ResetAll(ctx)
	if err != nil && !errors.Is(err, ErrPersistFailed) {
		return err
	}
	s.publish(ctx, amqp.OpReset, "")
	return err
}

func (s *Service) Snapshot() []core.Transaction {
	return s.store.Snapshot()
}

func (s *Service) publish(ctx context.Context, op, id string) {
	if s.publisher == nil {
		return
	}
	msg := amqp.NewLedgerEventMessage(op, id, s.store.Len())
	if err := s.publisher.PublishLedgerEvent(ctx, msg); err != nil {
		slog.WarnContext(ctx, "Failed to publish ledger event",
			"op", op, "id", id, "error", err)
	}
}
