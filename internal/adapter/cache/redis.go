package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{
		client: client,
		ttl:    ttl,
	}
}

func (r *Redis) Get(ctx context.Context, id int64) (string, bool, error) {
	const op = "adapter.cache.Redis.Get"

	val, err := r.client.Get(ctx, key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%s: failed to get key: %w", op, err)
	}

	return val, true, nil
}

func (r *Redis) Set(ctx context.Context, id int64, originalURL string) error {
	const op = "adapter.cache.Redis.Set"

	if err := r.client.Set(ctx, key(id), originalURL, r.ttl).Err(); err != nil {
		return fmt.Errorf("%s: failed to set key: %w", op, err)
	}

	return nil
}
