package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-task-manager/internal/config"
	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/utils"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "sessions:"

// redisSessionCache mirrors each user's token set as a Redis set of keyed
// token hashes under "sessions:<userID>". Raw tokens are never written to
// Redis. Ordering against Postgres writes is up to the session service.
type redisSessionCache struct {
	client  redis.UniversalClient
	ttl     time.Duration
	hashKey string
}

// NewRedisSessionCache connects to Redis and verifies the connection.
// hashKey keys the HMAC applied to tokens before they are stored.
func NewRedisSessionCache(ctx context.Context, cfg config.Cache, hashKey string, log *logger.Logger) (SessionCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Err(err).Str("func", "NewRedisSessionCache").Msg("error connecting redis (ping)")
		_ = client.Close()
		return nil, fmt.Errorf("%w: %w", ErrCache, err)
	}
	log.Info().Str("func", "NewRedisSessionCache").Msg("connected to redis successfully")

	return newRedisSessionCache(client, cfg.TTL, hashKey), nil
}

func newRedisSessionCache(client redis.UniversalClient, ttl time.Duration, hashKey string) *redisSessionCache {
	return &redisSessionCache{
		client:  client,
		ttl:     ttl,
		hashKey: hashKey,
	}
}

func (c *redisSessionCache) key(userID int64) string {
	return fmt.Sprintf("%s%d", sessionKeyPrefix, userID)
}

func (c *redisSessionCache) member(token string) string {
	return utils.HashString(token, c.hashKey)
}

// Add records token and refreshes the TTL of the user's set.
func (c *redisSessionCache) Add(ctx context.Context, userID int64, token string) error {
	key := c.key(userID)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, key, c.member(token))
		if c.ttl > 0 {
			pipe.Expire(ctx, key, c.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCache, err)
	}
	return nil
}

func (c *redisSessionCache) Contains(ctx context.Context, userID int64, token string) (bool, error) {
	found, err := c.client.SIsMember(ctx, c.key(userID), c.member(token)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrCache, err)
	}
	return found, nil
}

func (c *redisSessionCache) Remove(ctx context.Context, userID int64, token string) error {
	if err := c.client.SRem(ctx, c.key(userID), c.member(token)).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCache, err)
	}
	return nil
}

func (c *redisSessionCache) RemoveAll(ctx context.Context, userID int64) error {
	if err := c.client.Del(ctx, c.key(userID)).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCache, err)
	}
	return nil
}

// Close releases the Redis connection pool.
func (c *redisSessionCache) Close() error {
	return c.client.Close()
}

// nopSessionCache is used when no Redis address is configured: every lookup
// misses and every write succeeds.
type nopSessionCache struct{}

// NewNopSessionCache returns a [SessionCache] that caches nothing.
func NewNopSessionCache() SessionCache {
	return nopSessionCache{}
}

func (nopSessionCache) Add(context.Context, int64, string) error { return nil }

func (nopSessionCache) Contains(context.Context, int64, string) (bool, error) { return false, nil }

func (nopSessionCache) Remove(context.Context, int64, string) error { return nil }

func (nopSessionCache) RemoveAll(context.Context, int64) error { return nil }
