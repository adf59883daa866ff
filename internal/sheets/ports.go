package sheets

import (
	"context"

	"finanzas/internal/core"
)

// Ports for the spreadsheet mirror. The spreadsheet is a read-only
// copy for the bookkeeper, never a source of truth.
type (
	RowAppender interface {
		AppendRow(ctx context.Context, t core.Transaction) error
	}

	RowUpdater interface {
		UpdateRowStatus(ctx context.Context, id string, status core.Status) error
	}

	RowRemover interface {
		RemoveRow(ctx context.Context, id string) error
	}

	Mirror interface {
		RowAppender
		RowUpdater
		RowRemover
	}
)
