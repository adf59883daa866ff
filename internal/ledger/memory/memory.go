// Package memory is a process-local Store for tests and the
// zero-setup backend.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"finanzas/internal/core"
	"finanzas/internal/ledger"
)

type Store struct {
	mu   sync.RWMutex
	byID map[string]core.Transaction
}

var _ ledger.Store = (*Store)(nil)

func New() *Store {
	return &Store{byID: make(map[string]core.Transaction)}
}

func (s *Store) Append(_ context.Context, t core.Transaction) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	s.byID[t.ID] = t
	return t.ID, nil
}

func (s *Store) ListByOwner(_ context.Context, ownerID string) ([]core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.Transaction, 0, len(s.byID))
	for _, t := range s.byID {
		if t.UserID == ownerID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) UpdateStatus(_ context.Context, id string, status core.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.byID[id]
	if !ok {
		return ledger.ErrNotFound
	}
	if status == core.Paid && t.Status != core.Pending {
		return ledger.ErrNotPending
	}
	t.Status = status
	s.byID[id] = t
	return nil
}

func (s *Store) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return ledger.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

// Get is used by the mirror worker to resolve events to records.
func (s *Store) Get(_ context.Context, id string) (core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.byID[id]
	if !ok {
		return core.Transaction{}, ledger.ErrNotFound
	}
	return t, nil
}
