package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var _ Backend = (*RedisBackend)(nil)

// RedisBackend shares call windows across bridge server replicas.
type RedisBackend struct {
	client *redis.Client
	window callWindow
}

// NewRedisBackend allows callsPerSecond channel calls per client each second.
func NewRedisBackend(client *redis.Client, callsPerSecond int) *RedisBackend {
	return &RedisBackend{
		client: client,
		window: callWindow{size: time.Second, calls: max(callsPerSecond, 1)},
	}
}

func (r *RedisBackend) Allow(ctx context.Context, key string) (RateLimitResult, error) {
	result, err := r.window.admit(ctx, r.client, key)
	if err != nil {
		return RateLimitResult{}, fmt.Errorf("failed to check rate limit: %w", err)
	}
	return result, nil
}

func (r *RedisBackend) Close() error {
	return r.client.Close()
}

func (r *RedisBackend) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
