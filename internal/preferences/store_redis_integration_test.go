//go:build integration

package preferences_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"intake/internal/preferences"
	"intake/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *preferences.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.store = preferences.NewRedisStore(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestDefaultsWhenUnset() {
	p, err := s.store.Get(context.Background())
	s.Require().NoError(err)
	s.False(p.DarkMode)
}

func (s *RedisStoreSuite) TestSurvivesNewStore() {
	ctx := context.Background()
	s.Require().NoError(s.store.Set(ctx, preferences.Preferences{DarkMode: true}))

	p, err := preferences.NewRedisStore(s.redis.Client).Get(ctx)
	s.Require().NoError(err)
	s.True(p.DarkMode)
}
