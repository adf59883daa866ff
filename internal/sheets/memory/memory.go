// Package memory keeps mirror rows in a map. Used by the worker tests
// and as the mirror target when no spreadsheet is configured.
package memory

import (
	"context"
	"fmt"
	"sync"

	"finanzas/internal/core"
	"finanzas/internal/sheets"
)

type Mirror struct {
	mu   sync.Mutex
	rows map[string]core.Transaction
}

var _ sheets.Mirror = (*Mirror)(nil)

func New() *Mirror {
	return &Mirror{rows: make(map[string]core.Transaction)}
}

func (m *Mirror) AppendRow(_ context.Context, t core.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[t.ID] = t
	return nil
}

func (m *Mirror) UpdateRowStatus(_ context.Context, id string, status core.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.rows[id]
	if !ok {
		return fmt.Errorf("row %s not mirrored", id)
	}
	t.Status = status
	m.rows[id] = t
	return nil
}

func (m *Mirror) RemoveRow(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, id)
	return nil
}

// Row returns the mirrored copy, for assertions in tests.
func (m *Mirror) Row(id string) (core.Transaction, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.rows[id]
	return t, ok
}

func (m *Mirror) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}
