// Package worker copies ledger records into the spreadsheet mirror,
// driven by queue events with a periodic backfill as backstop.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"finanzas/internal/amqp"
	"finanzas/internal/core"
	"finanzas/internal/ledger"
	"finanzas/internal/sheets"
)

// Store is the slice of the repository the worker needs.
type Store interface {
	Get(ctx context.Context, id string) (core.Transaction, error)
	ListUnmirrored(ctx context.Context, limit int) ([]core.Transaction, error)
	MarkMirrored(ctx context.Context, id string) error
}

type MirrorWorker struct {
	store     Store
	mirror    sheets.Mirror
	batchSize int
}

func NewMirrorWorker(store Store, mirror sheets.Mirror, batchSize int) *MirrorWorker {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &MirrorWorker{
		store:     store,
		mirror:    mirror,
		batchSize: batchSize,
	}
}

// HandleEvent processes one queue event. Errors bubble up so the
// delivery gets requeued.
func (w *MirrorWorker) HandleEvent(ctx context.Context, msg *amqp.TransactionEventMessage) error {
	slog.InfoContext(ctx, "Processing mirror event",
		"transaction_id", msg.TransactionID,
		"action", msg.Action)

	switch msg.Action {
	case amqp.ActionCreated:
		return w.mirrorCreated(ctx, msg.TransactionID)
	case amqp.ActionSettled:
		return w.mirrorSettled(ctx, msg.TransactionID)
	case amqp.ActionDeleted:
		if err := w.mirror.RemoveRow(ctx, msg.TransactionID); err != nil {
			return fmt.Errorf("remove mirrored row: %w", err)
		}
		return nil
	default:
		// Validate catches this on decode, kept for safety.
		return fmt.Errorf("unknown action %q", msg.Action)
	}
}

func (w *MirrorWorker) mirrorCreated(ctx context.Context, id string) error {
	t, err := w.store.Get(ctx, id)
	if errors.Is(err, ledger.ErrNotFound) {
		// Deleted before the event was consumed, nothing to mirror.
		slog.WarnContext(ctx, "Transaction gone before mirroring", "transaction_id", id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get transaction: %w", err)
	}

	if err := w.mirror.AppendRow(ctx, t); err != nil {
		return fmt.Errorf("append mirrored row: %w", err)
	}
	if err := w.store.MarkMirrored(ctx, id); err != nil {
		return fmt.Errorf("mark mirrored: %w", err)
	}
	return nil
}

func (w *MirrorWorker) mirrorSettled(ctx context.Context, id string) error {
	t, err := w.store.Get(ctx, id)
	if errors.Is(err, ledger.ErrNotFound) {
		slog.WarnContext(ctx, "Transaction gone before mirroring", "transaction_id", id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get transaction: %w", err)
	}

	if err := w.mirror.UpdateRowStatus(ctx, id, t.Status); err != nil {
		return fmt.Errorf("update mirrored status: %w", err)
	}
	return nil
}

// Backfill mirrors records the queue missed. Failures are logged and
// skipped so one bad record does not block the batch.
func (w *MirrorWorker) Backfill(ctx context.Context) error {
	pending, err := w.store.ListUnmirrored(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("list unmirrored: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Backfilling unmirrored transactions", "count", len(pending))

	for _, t := range pending {
		if err := w.mirror.AppendRow(ctx, t); err != nil {
			slog.ErrorContext(ctx, "Failed to backfill row",
				"transaction_id", t.ID, "error", err)
			continue
		}
		if err := w.store.MarkMirrored(ctx, t.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to mark mirrored",
				"transaction_id", t.ID, "error", err)
		}
	}
	return nil
}
