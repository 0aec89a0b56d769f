package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sethvargo/go-retry"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	defaultConnMaxIdleTime = 5 * time.Minute
	defaultConnMaxLifetime = 30 * time.Minute
	defaultMaxIdleConns    = 5
	defaultMaxOpenConns    = 25
	defaultConnectRetries  = 5
	defaultConnectBackoff  = 500 * time.Millisecond
)

type options struct {
	connMaxIdleTime time.Duration
	connMaxLifetime time.Duration
	maxIdleConns    int
	maxOpenConns    int
	connectRetries  uint64
	connectBackoff  time.Duration
}

type Option func(*options)

func WithConnMaxIdleTime(d time.Duration) Option {
	return func(o *options) {
		o.connMaxIdleTime = d
	}
}

func WithConnMaxLifetime(d time.Duration) Option {
	return func(o *options) {
		o.connMaxLifetime = d
	}
}

func WithMaxIdleConns(n int) Option {
	return func(o *options) {
		o.maxIdleConns = n
	}
}

func WithMaxOpenConns(n int) Option {
	return func(o *options) {
		o.maxOpenConns = n
	}
}

// WithConnectRetries sets how many times a failed initial connection is retried,
// waiting exponentially longer from backoff between attempts.
func WithConnectRetries(n uint64, backoff time.Duration) Option {
	return func(o *options) {
		o.connectRetries = n
		o.connectBackoff = backoff
	}
}

// New opens a connection pool to the PostgreSQL database at dsn and checks
// that it is reachable.
func New(ctx context.Context, dsn string, opts ...Option) (*sqlx.DB, error) {
	const op = "postgres.New"

	o := options{
		connMaxIdleTime: defaultConnMaxIdleTime,
		connMaxLifetime: defaultConnMaxLifetime,
		maxIdleConns:    defaultMaxIdleConns,
		maxOpenConns:    defaultMaxOpenConns,
		connectRetries:  defaultConnectRetries,
		connectBackoff:  defaultConnectBackoff,
	}
	for _, opt := range opts {
		opt(&o)
	}

	var db *sqlx.DB

	b := retry.WithMaxRetries(o.connectRetries, retry.NewExponential(o.connectBackoff))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		var err error

		db, err = sqlx.ConnectContext(ctx, "pgx", dsn)
		if err != nil {
			return retry.RetryableError(err)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect to database: %w", op, err)
	}

	db.SetConnMaxIdleTime(o.connMaxIdleTime)
	db.SetConnMaxLifetime(o.connMaxLifetime)
	db.SetMaxIdleConns(o.maxIdleConns)
	db.SetMaxOpenConns(o.maxOpenConns)

	return db, nil
}
