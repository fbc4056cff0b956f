package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisLimiter(t *testing.T, limit int, window time.Duration) (*RedisLimiter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisLimiter(client, limit, window), mr
}

func TestRedisLimiter_FixedWindow(t *testing.T) {
	ctx := context.Background()
	l, mr := newRedisLimiter(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, "login:1.2.3.4")
		require.NoError(t, err)
		assert.True(t, ok, "request %d", i+1)
	}

	ok, err := l.Allow(ctx, "login:1.2.3.4")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = l.Allow(ctx, "login:5.6.7.8")
	require.NoError(t, err)
	assert.True(t, ok, "keys are independent")

	assert.Equal(t, time.Minute, mr.TTL("ratelimit:login:1.2.3.4"))

	mr.FastForward(time.Minute + time.Second)

	ok, err = l.Allow(ctx, "login:1.2.3.4")
	require.NoError(t, err)
	assert.True(t, ok, "window resets")
}

func TestRedisLimiter_Unavailable(t *testing.T) {
	l, mr := newRedisLimiter(t, 3, time.Minute)
	mr.Close()

	_, err := l.Allow(context.Background(), "signup:1.2.3.4")
	assert.Error(t, err)
}

func TestMemoryLimiter_BurstAndRefill(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	l := NewMemoryLimiter(2, time.Minute)
	l.now = func() time.Time { return now }

	ok, _ := l.Allow(ctx, "k")
	assert.True(t, ok)
	ok, _ = l.Allow(ctx, "k")
	assert.True(t, ok)
	ok, _ = l.Allow(ctx, "k")
	assert.False(t, ok)

	ok, _ = l.Allow(ctx, "other")
	assert.True(t, ok)

	now = now.Add(31 * time.Second)
	ok, _ = l.Allow(ctx, "k")
	assert.True(t, ok, "one token refilled after half a window")
}

func TestMemoryLimiter_Cleanup(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	l := NewMemoryLimiter(2, time.Minute)
	l.now = func() time.Time { return now }

	_, _ = l.Allow(context.Background(), "old")
	now = now.Add(4 * time.Minute)
	_, _ = l.Allow(context.Background(), "fresh")

	l.Cleanup()

	assert.NotContains(t, l.visitors, "old")
	assert.Contains(t, l.visitors, "fresh")
}
