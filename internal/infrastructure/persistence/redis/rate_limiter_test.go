package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storyverse-api/internal/application/admission"
	"storyverse-api/pkg/clock"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestLimiter(t *testing.T) (*RateLimiter, *miniredis.Miniredis, *clock.Fake) {
	t.Helper()
	server := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	fc := clock.NewFake(epoch)
	return NewRateLimiter(NewClientFromRedis(rdb), "test", fc), server, fc
}

func TestRateLimiter_FixedWindow(t *testing.T) {
	ctx := context.Background()
	limiter, server, fc := newTestLimiter(t)
	policy := admission.Policy{Window: time.Minute, MaxRequests: 3}

	for i := 0; i < 3; i++ {
		d, err := limiter.Take(ctx, "ai:ann", policy)
		require.NoError(t, err)
		assert.True(t, d.Allowed)
		assert.Equal(t, 2-i, d.Remaining)
		assert.Equal(t, epoch.Add(time.Minute), d.ResetAt)
	}

	server.FastForward(20 * time.Second)
	fc.Advance(20 * time.Second)

	d, err := limiter.Take(ctx, "ai:ann", policy)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, 40*time.Second, d.RetryAfter)

	// 拒绝不增加计数
	got, err := server.Get("test:ai:ann")
	require.NoError(t, err)
	assert.Equal(t, "3", got)

	server.FastForward(40 * time.Second)
	fc.Advance(40 * time.Second)

	d, err = limiter.Take(ctx, "ai:ann", policy)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 2, d.Remaining)
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	limiter, _, _ := newTestLimiter(t)
	policy := admission.Policy{Window: time.Minute, MaxRequests: 1}

	d, _ := limiter.Take(ctx, "auth:ann", policy)
	require.True(t, d.Allowed)
	d, _ = limiter.Take(ctx, "auth:ann", policy)
	require.False(t, d.Allowed)

	d, _ = limiter.Take(ctx, "auth:bob", policy)
	assert.True(t, d.Allowed)
	d, _ = limiter.Take(ctx, "ai:ann", policy)
	assert.True(t, d.Allowed)

	require.NoError(t, limiter.Reset(ctx, "auth:ann"))
	d, _ = limiter.Take(ctx, "auth:ann", policy)
	assert.True(t, d.Allowed)
}

func TestRateLimiter_ThroughController(t *testing.T) {
	ctx := context.Background()
	limiter, _, _ := newTestLimiter(t)

	ctrl, err := admission.NewController(admission.Policies{
		admission.ClassAuth: {Window: time.Minute, MaxRequests: 2},
	}, limiter)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		d, err := ctrl.Check(ctx, admission.ClassAuth, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, d.Allowed)
	}
	d, err := ctrl.Check(ctx, admission.ClassAuth, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
}

func TestRateLimiter_ServerDown(t *testing.T) {
	limiter, server, _ := newTestLimiter(t)
	server.Close()

	_, err := limiter.Take(context.Background(), "ai:ann", admission.Policy{Window: time.Minute, MaxRequests: 1})
	assert.Error(t, err)
}

func TestClient_HealthCheck(t *testing.T) {
	server := miniredis.RunT(t)
	c := NewClientFromRedis(redis.NewClient(&redis.Options{Addr: server.Addr()}))
	defer c.Close()

	assert.NoError(t, c.HealthCheck(context.Background()))
}
