package cache

import (
	"context"
	"slices"
	"sync"
	"time"

	"intake/internal/autofill"
)

type cachedCandidates struct {
	candidates []autofill.Candidate
	storedAt   time.Time
}

// sweepInterval bounds how often Set scans for expired entries.
const sweepInterval = time.Minute

// InMemoryStore keeps geocode results in process with TTL expiration.
// Expired entries are removed on read and by a periodic sweep on write.
type InMemoryStore struct {
	mu        sync.Mutex
	entries   map[string]cachedCandidates
	ttl       time.Duration
	nextSweep time.Time
	now       func() time.Time
}

// NewInMemoryStore creates an in-memory store with the specified TTL.
func NewInMemoryStore(ttl time.Duration) *InMemoryStore {
	return &InMemoryStore{
		entries: make(map[string]cachedCandidates),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns ErrMiss if the key is absent or has expired.
func (s *InMemoryStore) Get(_ context.Context, key string) ([]autofill.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cached, ok := s.entries[key]
	if !ok {
		return nil, ErrMiss
	}
	if s.expired(cached, s.now()) {
		delete(s.entries, key)
		return nil, ErrMiss
	}
	return slices.Clone(cached.candidates), nil
}

func (s *InMemoryStore) Set(_ context.Context, key string, candidates []autofill.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if !now.Before(s.nextSweep) {
		for k, cached := range s.entries {
			if s.expired(cached, now) {
				delete(s.entries, k)
			}
		}
		s.nextSweep = now.Add(sweepInterval)
	}
	s.entries[key] = cachedCandidates{candidates: slices.Clone(candidates), storedAt: now}
	return nil
}

func (s *InMemoryStore) expired(cached cachedCandidates, now time.Time) bool {
	return now.Sub(cached.storedAt) >= s.ttl
}
