// Package preferences stores the display preferences shared by every client.
package preferences

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Preferences is the display state clients restore on load.
type Preferences struct {
	DarkMode bool `json:"darkMode"`
}

// InMemoryStore holds preferences for the life of the process.
type InMemoryStore struct {
	mu    sync.RWMutex
	prefs Preferences
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Get(_ context.Context) (Preferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs, nil
}

func (s *InMemoryStore) Set(_ context.Context, p Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs = p
	return nil
}

const redisKey = "intake:preferences"

// RedisStore keeps preferences across restarts. An absent key reads as defaults.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context) (Preferences, error) {
	raw, err := s.client.Get(ctx, redisKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return Preferences{}, nil
	}
	if err != nil {
		return Preferences{}, fmt.Errorf("redis get preferences: %w", err)
	}
	var p Preferences
	if err := json.Unmarshal(raw, &p); err != nil {
		return Preferences{}, fmt.Errorf("decode preferences: %w", err)
	}
	return p, nil
}

func (s *RedisStore) Set(ctx context.Context, p Preferences) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	return s.client.Set(ctx, redisKey, raw, 0).Err()
}
