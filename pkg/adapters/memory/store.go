package memory

import (
	"context"
	"sync"

	"github.com/aretw0/simchain/pkg/domain"
)

// Store implements ports.MonitorStore in memory.
// Safe for concurrent use.
type Store struct {
	records []domain.ArrivalRecord
	mu      sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{}
}

// Record appends a record.
func (s *Store) Record(ctx context.Context, rec domain.ArrivalRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

// List returns a copy of the records so callers can't mutate the store.
func (s *Store) List(ctx context.Context) ([]domain.ArrivalRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.ArrivalRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

// Reset drops every record.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	return nil
}
