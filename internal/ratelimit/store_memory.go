// Package ratelimit throttles expensive endpoints per client with a sliding window.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Result is the outcome of one Allow call.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter int // seconds; set when not allowed
}

// sweepInterval bounds how often idle keys are dropped.
const sweepInterval = time.Minute

type window struct {
	stamps  []time.Time
	expires time.Time
}

// InMemoryStore keeps a sliding window of request timestamps per key. It is
// local to the process. Keys whose window has fully elapsed are dropped.
type InMemoryStore struct {
	mu        sync.Mutex
	windows   map[string]*window
	nextSweep time.Time
	now       func() time.Time
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

// Allow records one request for key if fewer than limit requests fell inside
// the trailing window.
func (s *InMemoryStore) Allow(_ context.Context, key string, limit int, span time.Duration) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	w, ok := s.windows[key]
	if !ok {
		w = &window{}
		s.windows[key] = w
	}
	w.stamps = prune(w.stamps, now.Add(-span))

	if len(w.stamps) >= limit {
		resetAt := w.stamps[0].Add(span)
		retry := int(resetAt.Sub(now).Seconds())
		if retry < 1 {
			retry = 1
		}
		return Result{Limit: limit, ResetAt: resetAt, RetryAfter: retry}, nil
	}

	w.stamps = append(w.stamps, now)
	w.expires = now.Add(span)
	return Result{
		Allowed:   true,
		Limit:     limit,
		Remaining: limit - len(w.stamps),
		ResetAt:   w.stamps[0].Add(span),
	}, nil
}

// sweep drops keys with no timestamp left inside their window.
func (s *InMemoryStore) sweep(now time.Time) {
	if now.Before(s.nextSweep) {
		return
	}
	for key, w := range s.windows {
		if !now.Before(w.expires) {
			delete(s.windows, key)
		}
	}
	s.nextSweep = now.Add(sweepInterval)
}

// prune drops timestamps at or before cutoff. Timestamps are in ascending order.
func prune(stamps []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for ; i < len(stamps); i++ {
		if stamps[i].After(cutoff) {
			break
		}
	}
	return stamps[i:]
}
