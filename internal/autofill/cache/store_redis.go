package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"intake/internal/autofill"
)

const keyPrefix = "intake:geocode:"

// RedisStore shares geocode results across instances. Expiry is delegated to
// Redis key TTLs.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]autofill.Candidate, error) {
	raw, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get geocode: %w", err)
	}
	var candidates []autofill.Candidate
	if err := json.Unmarshal(raw, &candidates); err != nil {
		return nil, fmt.Errorf("decode cached geocode: %w", err)
	}
	return candidates, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, candidates []autofill.Candidate) error {
	raw, err := json.Marshal(candidates)
	if err != nil {
		return fmt.Errorf("encode geocode: %w", err)
	}
	return s.client.Set(ctx, keyPrefix+key, raw, s.ttl).Err()
}
