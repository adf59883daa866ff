// Package ledger declares the narrow storage contract the engine
// consumes. Classification and validation always run before a draft
// reaches a store; stores persist what they are handed.
package ledger

import (
	"context"
	"errors"

	"finanzas/internal/core"
)

var (
	// ErrNotFound is returned when an id does not resolve to a record.
	ErrNotFound = errors.New("transaction not found")
	// ErrNotPending is returned when settling a record that is not
	// awaiting collection. The status machine only moves pending→paid.
	ErrNotPending = errors.New("transaction is not pending")
)

type (
	Appender interface {
		Append(ctx context.Context, t core.Transaction) (id string, err error)
	}

	Getter interface {
		Get(ctx context.Context, id string) (core.Transaction, error)
	}

	// Lister returns one owner's records ordered by date descending.
	Lister interface {
		ListByOwner(ctx context.Context, ownerID string) ([]core.Transaction, error)
	}

	// StatusUpdater applies the pending→paid settlement transition.
	StatusUpdater interface {
		UpdateStatus(ctx context.Context, id string, status core.Status) error
	}

	Remover interface {
		Remove(ctx context.Context, id string) error
	}

	// Store composes the full contract.
	Store interface {
		Appender
		Getter
		Lister
		StatusUpdater
		Remover
	}
)
