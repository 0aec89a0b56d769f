// Package redisdb connects to a Redis server.
package redisdb

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-retry"
)

const (
	defaultConnectRetries = 5
	defaultConnectBackoff = 500 * time.Millisecond
)

type Config struct {
	Addr     string
	Password string
	DB       int
}

type options struct {
	connectRetries uint64
	connectBackoff time.Duration
}

type Option func(*options)

func WithConnectRetries(n uint64, backoff time.Duration) Option {
	return func(o *options) {
		o.connectRetries = n
		o.connectBackoff = backoff
	}
}

// Connect returns a client for the server described by cfg once it answers PING.
func Connect(ctx context.Context, cfg Config, opts ...Option) (*redis.Client, error) {
	const op = "redisdb.Connect"

	o := options{
		connectRetries: defaultConnectRetries,
		connectBackoff: defaultConnectBackoff,
	}
	for _, opt := range opts {
		opt(&o)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	b := retry.WithMaxRetries(o.connectRetries, retry.NewExponential(o.connectBackoff))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: failed to ping server: %w", op, err)
	}

	return client, nil
}
