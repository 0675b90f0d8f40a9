// Package store provides the append-only record stores that lead requests
// are inserted into.
package store

import (
	"context"
	"sync"

	"github.com/cbummouad/appall/internal/model"
)

// Store inserts one validated lead request. No read, update or delete is offered.
type Store interface {
	Insert(ctx context.Context, rec *model.LeadRequest) error
}

// MemoryStore keeps inserted records in memory. It backs local development
// and tests.
type MemoryStore struct {
	mu      sync.Mutex
	records []model.LeadRequest
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Insert appends a copy of rec.
func (s *MemoryStore) Insert(ctx context.Context, rec *model.LeadRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, *rec)
	return nil
}

// Records returns a snapshot of everything inserted so far.
func (s *MemoryStore) Records() []model.LeadRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.LeadRequest, len(s.records))
	copy(out, s.records)
	return out
}
