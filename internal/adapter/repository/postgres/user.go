package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/vadimbarashkov/microservices/internal/entity"
)

type userDB struct {
	ID       string `db:"id"`
	Username string `db:"username"`
}

func (u *userDB) toEntity() *entity.User {
	return &entity.User{
		ID:       u.ID,
		Username: u.Username,
	}
}

// UserRepository stores users and their ordered exercise logs.
// A log entry is a row of exercise_log; its position gives the append order.
type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Save(ctx context.Context, id, username string) (*entity.User, error) {
	const op = "adapter.repository.postgres.UserRepository.Save"
	const query = `INSERT INTO users (id, username) VALUES ($1, $2) RETURNING id, username`

	var user userDB

	if err := r.db.GetContext(ctx, &user, query, id, username); err != nil {
		return nil, fmt.Errorf("%s: failed to insert into users table: %w", op, err)
	}

	return user.toEntity(), nil
}

// RetrieveByID returns the user with its log of exercise ids.
func (r *UserRepository) RetrieveByID(ctx context.Context, id string) (*entity.User, error) {
	const op = "adapter.repository.postgres.UserRepository.RetrieveByID"
	const userQuery = `SELECT id, username FROM users WHERE id = $1`
	const logQuery = `SELECT exercise_id FROM exercise_log WHERE user_id = $1 ORDER BY position`

	var user userDB

	if err := r.db.GetContext(ctx, &user, userQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrUserNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get row from users table: %w", op, err)
	}

	var log []string

	if err := r.db.SelectContext(ctx, &log, logQuery, id); err != nil {
		return nil, fmt.Errorf("%s: failed to get rows from exercise_log table: %w", op, err)
	}

	u := user.toEntity()
	u.Log = log

	return u, nil
}

// RetrieveAll returns every user in creation order, without logs.
func (r *UserRepository) RetrieveAll(ctx context.Context) ([]*entity.User, error) {
	const op = "adapter.repository.postgres.UserRepository.RetrieveAll"
	const query = `SELECT id, username FROM users ORDER BY created_at, id`

	var rows []userDB

	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("%s: failed to get rows from users table: %w", op, err)
	}

	users := make([]*entity.User, 0, len(rows))
	for i := range rows {
		users = append(users, rows[i].toEntity())
	}

	return users, nil
}

func (r *UserRepository) AppendLog(ctx context.Context, userID, exerciseID string) error {
	const op = "adapter.repository.postgres.UserRepository.AppendLog"
	const query = `INSERT INTO exercise_log (user_id, exercise_id) VALUES ($1, $2)`

	if _, err := r.db.ExecContext(ctx, query, userID, exerciseID); err != nil {
		if isForeignKeyViolationError(err) {
			return fmt.Errorf("%s: %w", op, entity.ErrUserNotFound)
		}

		return fmt.Errorf("%s: failed to insert into exercise_log table: %w", op, err)
	}

	return nil
}
