package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// CounterRepository hands out values of named, monotonically increasing counters.
type CounterRepository struct {
	db *sqlx.DB
}

func NewCounterRepository(db *sqlx.DB) *CounterRepository {
	return &CounterRepository{db: db}
}

// Next increments the counter and returns its new value. The first value of a
// counter is 1. The increment and read happen in a single statement, so
// concurrent callers never observe the same value.
func (r *CounterRepository) Next(ctx context.Context, name string) (int64, error) {
	const op = "adapter.repository.postgres.CounterRepository.Next"
	const query = `INSERT INTO counters (name, seq) VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET seq = counters.seq + 1
		RETURNING seq`

	var seq int64

	if err := r.db.GetContext(ctx, &seq, query, name); err != nil {
		return 0, fmt.Errorf("%s: failed to increment counter: %w", op, err)
	}

	return seq, nil
}
