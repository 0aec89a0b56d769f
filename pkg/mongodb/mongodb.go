// Package mongodb connects to a MongoDB deployment.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	defaultConnectTimeout = 10 * time.Second
	defaultConnectRetries = 5
	defaultConnectBackoff = 500 * time.Millisecond
)

type config struct {
	connectTimeout time.Duration
	connectRetries uint64
	connectBackoff time.Duration
}

type Option func(*config)

func WithConnectTimeout(d time.Duration) Option {
	return func(c *config) {
		c.connectTimeout = d
	}
}

func WithConnectRetries(n uint64, backoff time.Duration) Option {
	return func(c *config) {
		c.connectRetries = n
		c.connectBackoff = backoff
	}
}

// Connect creates a client for uri and pings the primary until it answers or
// the retries run out.
func Connect(ctx context.Context, uri string, opts ...Option) (*mongo.Client, error) {
	const op = "mongodb.Connect"

	c := config{
		connectTimeout: defaultConnectTimeout,
		connectRetries: defaultConnectRetries,
		connectBackoff: defaultConnectBackoff,
	}
	for _, opt := range opts {
		opt(&c)
	}

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetConnectTimeout(c.connectTimeout).
		SetServerSelectionTimeout(c.connectTimeout))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create client: %w", op, err)
	}

	b := retry.WithMaxRetries(c.connectRetries, retry.NewExponential(c.connectBackoff))
	err = retry.Do(ctx, b, func(ctx context.Context) error {
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%s: failed to ping server: %w", op, err)
	}

	return client, nil
}
