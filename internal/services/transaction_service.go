// Package services orchestrates the ledger operations across the
// store and the mirror queue.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"finanzas/internal/amqp"
	"finanzas/internal/core"
	"finanzas/internal/ledger"
)

// EventPublisher emits mirror events. Publishing is best effort: the
// worker's backfill pass catches anything the queue misses.
type EventPublisher interface {
	PublishTransactionEvent(ctx context.Context, transactionID, action string) error
	Close() error
}

type TransactionService struct {
	store     ledger.Store
	publisher EventPublisher
	closers   []func() error
}

func NewTransactionService(store ledger.Store, publisher EventPublisher, closers ...func() error) *TransactionService {
	return &TransactionService{
		store:     store,
		publisher: publisher,
		closers:   closers,
	}
}

// Create classifies an entry form and appends the resulting record.
func (s *TransactionService) Create(ctx context.Context, e core.Entry) (core.Transaction, error) {
	t, err := e.Classify()
	if err != nil {
		return core.Transaction{}, fmt.Errorf("classify entry: %w", err)
	}

	id, err := s.store.Append(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}
	t.ID = id

	s.publish(ctx, id, amqp.ActionCreated)
	return t, nil
}

func (s *TransactionService) List(ctx context.Context, ownerID string) ([]core.Transaction, error) {
	txs, err := s.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// Settle moves a pending sale to paid. ledger.ErrNotFound and
// ledger.ErrNotPending pass through for the handler to map.
func (s *TransactionService) Settle(ctx context.Context, id string) error {
	if err := s.store.UpdateStatus(ctx, id, core.Paid); err != nil {
		return err
	}

	s.publish(ctx, id, amqp.ActionSettled)
	return nil
}

func (s *TransactionService) Delete(ctx context.Context, id string) error {
	if err := s.store.Remove(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, id, amqp.ActionDeleted)
	return nil
}

func (s *TransactionService) publish(ctx context.Context, id, action string) {
	if s.publisher == nil {
		slog.WarnContext(ctx, "Publisher not available, skipping mirror event",
			"transaction_id", id, "action", action)
		return
	}

	if err := s.publisher.PublishTransactionEvent(ctx, id, action); err != nil {
		// The record is already persisted, do not fail the request.
		slog.ErrorContext(ctx, "Failed to publish mirror event",
			"transaction_id", id, "action", action, "error", err)
	}
}

func (s *TransactionService) Close() error {
	var errs []error

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("publisher: %w", err))
		}
	}
	for _, close := range s.closers {
		if err := close(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close transaction service: %v", errs)
	}
	return nil
}
