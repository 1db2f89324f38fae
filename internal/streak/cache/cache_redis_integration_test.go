//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"regimen/internal/engine"
	"regimen/pkg/testutil/containers"
)

type RedisCacheSuite struct {
	suite.Suite
	container *containers.RedisContainer
	cache     *Redis
	ctx       context.Context
}

func TestRedisCacheSuite(t *testing.T) {
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) SetupSuite() {
	s.container = containers.GetManager().GetRedis(s.T())
	s.cache = NewRedis(s.container.Client, time.Minute)
	s.ctx = context.Background()
}

func (s *RedisCacheSuite) SetupTest() {
	s.Require().NoError(s.container.FlushAll(s.ctx))
}

func (s *RedisCacheSuite) TestMissReturnsNilNil() {
	summary, err := s.cache.Get(s.ctx, "u1")
	s.Require().NoError(err)
	s.Nil(summary)
}

func (s *RedisCacheSuite) TestSetThenGetRoundTrips() {
	want := engine.Summary{
		UserID:  "u1",
		Balance: -12.5,
		Counts:  map[string]int{"gym": 3, "food": 0},
	}
	s.Require().NoError(s.cache.Set(s.ctx, want))

	got, err := s.cache.Get(s.ctx, "u1")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(want, *got)
}

func (s *RedisCacheSuite) TestInvalidate() {
	s.Require().NoError(s.cache.Set(s.ctx, engine.Summary{UserID: "u1"}))
	s.Require().NoError(s.cache.Invalidate(s.ctx, "u1"))

	summary, err := s.cache.Get(s.ctx, "u1")
	s.Require().NoError(err)
	s.Nil(summary)
}

func (s *RedisCacheSuite) TestInvalidateMissingKeyIsANoOp() {
	s.Require().NoError(s.cache.Invalidate(s.ctx, "ghost"))
}

func (s *RedisCacheSuite) TestEntriesExpire() {
	short := NewRedis(s.container.Client, 100*time.Millisecond)
	s.Require().NoError(short.Set(s.ctx, engine.Summary{UserID: "u1"}))

	s.Eventually(func() bool {
		summary, err := short.Get(s.ctx, "u1")
		return err == nil && summary == nil
	}, 2*time.Second, 50*time.Millisecond)
}
