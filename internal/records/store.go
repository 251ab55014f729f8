package records

import (
	"context"
	"slices"
	"sync"
)

// InMemoryStore keeps rows for the life of the process in insertion order.
type InMemoryStore struct {
	mu   sync.RWMutex
	rows []Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, rows ...Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, rows...)
	return nil
}

func (s *InMemoryStore) List(_ context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := slices.Clone(s.rows)
	if out == nil {
		out = []Record{}
	}
	return out, nil
}
