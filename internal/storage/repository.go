// Package storage persists the ledger in SQLite. Records are written
// exactly as classified; aggregation always happens in memory on the
// listing result.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"finanzas/internal/core"
	"finanzas/internal/ledger"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

var _ ledger.Store = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
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

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) Append(ctx context.Context, t core.Transaction) (string, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions
			(id, amount_cents, type, origin, category, status, date, note, client, consumer, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Amount.Cents, string(t.Type), string(t.Origin), t.Category,
		string(t.Status), t.Date.UTC().Format(time.RFC3339Nano),
		t.Note, t.Client, t.Consumer, t.UserID)
	if err != nil {
		return "", fmt.Errorf("insert transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", t.ID,
		"origin", t.Origin,
		"category", t.Category,
		"amount_cents", t.Amount.Cents)

	return t.ID, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, amount_cents, type, origin, category, status, date, note, client, consumer, user_id
		FROM transactions WHERE id = ?`, id)

	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, ledger.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

func (r *SQLiteRepository) ListByOwner(ctx context.Context, ownerID string) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, amount_cents, type, origin, category, status, date, note, client, consumer, user_id
		FROM transactions WHERE user_id = ?
		ORDER BY date DESC, id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

// UpdateStatus moves a record to paid. The transition is guarded so a
// concurrent double settle cannot slip through.
func (r *SQLiteRepository) UpdateStatus(ctx context.Context, id string, status core.Status) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin settle: %w", err)
	}
	defer tx.Rollback()

	var current string
	err = tx.QueryRowContext(ctx, `SELECT status FROM transactions WHERE id = ?`, id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("read status: %w", err)
	}

	if status == core.Paid && core.Status(current) != core.Pending {
		return ledger.ErrNotPending
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE transactions SET status = ? WHERE id = ?`, string(status), id); err != nil {
		return fmt.Errorf("update status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit settle: %w", err)
	}

	slog.InfoContext(ctx, "Transaction status updated", "id", id, "status", status)
	return nil
}

func (r *SQLiteRepository) Remove(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ledger.ErrNotFound
	}

	slog.InfoContext(ctx, "Transaction deleted", "id", id)
	return nil
}

// ListUnmirrored returns the oldest records not yet copied to the
// spreadsheet, for the worker's backfill pass.
func (r *SQLiteRepository) ListUnmirrored(ctx context.Context, limit int) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, amount_cents, type, origin, category, status, date, note, client, consumer, user_id
		FROM transactions WHERE mirrored_at IS NULL
		ORDER BY created_at
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list unmirrored: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate unmirrored: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) MarkMirrored(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET mirrored_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark mirrored: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		t       core.Transaction
		typ     string
		origin  string
		status  string
		rawDate string
	)
	err := row.Scan(&t.ID, &t.Amount.Cents, &typ, &origin, &t.Category,
		&status, &rawDate, &t.Note, &t.Client, &t.Consumer, &t.UserID)
	if err != nil {
		return core.Transaction{}, err
	}

	t.Type = core.Type(typ)
	t.Origin = core.Origin(origin)
	t.Status = core.Status(status)
	t.Date, err = time.Parse(time.RFC3339Nano, rawDate)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse date %q: %w", rawDate, err)
	}
	return t, nil
}
