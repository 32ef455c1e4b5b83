package store

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-task-manager/internal/config"
	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redisSessionCache) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, newRedisSessionCache(client, time.Hour, "sign-key")
}

func TestRedisSessionCache_AddContains(t *testing.T) {
	mr, cache := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, cache.Add(ctx, 1, "token-a"))

	found, err := cache.Contains(ctx, 1, "token-a")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = cache.Contains(ctx, 1, "token-b")
	require.NoError(t, err)
	assert.False(t, found)

	found, err = cache.Contains(ctx, 2, "token-a")
	require.NoError(t, err)
	assert.False(t, found, "sets are per user")

	members, err := mr.Members("sessions:1")
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.NotEqual(t, "token-a", members[0], "raw tokens never reach redis")

	assert.Equal(t, time.Hour, mr.TTL("sessions:1"))
}

func TestRedisSessionCache_TTLExpiry(t *testing.T) {
	mr, cache := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, cache.Add(ctx, 1, "token-a"))
	mr.FastForward(2 * time.Hour)

	found, err := cache.Contains(ctx, 1, "token-a")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisSessionCache_Remove(t *testing.T) {
	_, cache := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, cache.Add(ctx, 1, "token-a"))
	require.NoError(t, cache.Add(ctx, 1, "token-b"))

	require.NoError(t, cache.Remove(ctx, 1, "token-a"))
	require.NoError(t, cache.Remove(ctx, 1, "never-added"))

	found, err := cache.Contains(ctx, 1, "token-a")
	require.NoError(t, err)
	assert.False(t, found)

	found, err = cache.Contains(ctx, 1, "token-b")
	require.NoError(t, err)
	assert.True(t, found)

	require.NoError(t, cache.RemoveAll(ctx, 1))
	found, err = cache.Contains(ctx, 1, "token-b")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisSessionCache_BackendDown(t *testing.T) {
	mr, cache := newTestRedis(t)
	mr.Close()

	_, err := cache.Contains(context.Background(), 1, "token-a")
	require.ErrorIs(t, err, ErrCache)
	require.ErrorIs(t, cache.Add(context.Background(), 1, "token-a"), ErrCache)
}

func TestNewRedisSessionCache(t *testing.T) {
	mr := miniredis.RunT(t)

	cache, err := NewRedisSessionCache(context.Background(), config.Cache{RedisAddress: mr.Addr(), TTL: time.Minute}, "k", logger.Nop())
	require.NoError(t, err)
	require.NoError(t, cache.Add(context.Background(), 5, "t"))
	assert.True(t, mr.Exists("sessions:5"))

	_, err = NewRedisSessionCache(context.Background(), config.Cache{RedisAddress: "127.0.0.1:1"}, "k", logger.Nop())
	require.ErrorIs(t, err, ErrCache)
}

func TestNopSessionCache(t *testing.T) {
	cache := NewNopSessionCache()
	ctx := context.Background()

	require.NoError(t, cache.Add(ctx, 1, "t"))
	found, err := cache.Contains(ctx, 1, "t")
	require.NoError(t, err)
	assert.False(t, found)
	require.NoError(t, cache.Remove(ctx, 1, "t"))
	require.NoError(t, cache.RemoveAll(ctx, 1))
}
