package ratelimit

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStoreSlidingWindow(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	s := NewInMemoryStore()
	s.now = func() time.Time { return now }

	for i := range 3 {
		res, err := s.Allow(ctx, "k", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, 2-i, res.Remaining)
		now = now.Add(10 * time.Second)
	}

	res, err := s.Allow(ctx, "k", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 30, res.RetryAfter)

	t.Run("other keys are independent", func(t *testing.T) {
		res, err := s.Allow(ctx, "other", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	})

	t.Run("oldest request leaves the window", func(t *testing.T) {
		now = now.Add(31 * time.Second)
		res, err := s.Allow(ctx, "k", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, 0, res.Remaining)
	})
}

func TestInMemoryStoreDropsIdleKeys(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	s := NewInMemoryStore()
	s.now = func() time.Time { return now }

	for i := range 1000 {
		_, err := s.Allow(ctx, fmt.Sprintf("autofill:198.51.100.%d", i), 30, time.Minute)
		require.NoError(t, err)
	}
	require.Len(t, s.windows, 1000)

	t.Run("keys idle for a full window are dropped", func(t *testing.T) {
		now = now.Add(sweepInterval)
		_, err := s.Allow(ctx, "autofill:192.0.2.1", 30, time.Minute)
		require.NoError(t, err)
		assert.Len(t, s.windows, 1)
	})

	t.Run("an hour later only the key in use remains", func(t *testing.T) {
		now = now.Add(time.Hour)
		res, err := s.Allow(ctx, "autofill:192.0.2.2", 30, time.Minute)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Len(t, s.windows, 1)
	})
}
