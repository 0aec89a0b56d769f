package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/vadimbarashkov/microservices/internal/entity"
)

type exerciseDB struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	Description string    `db:"description"`
	Duration    int       `db:"duration"`
	Date        time.Time `db:"date"`
}

func (e *exerciseDB) toEntity() *entity.Exercise {
	return &entity.Exercise{
		ID:          e.ID,
		UserID:      e.UserID,
		Description: e.Description,
		Duration:    e.Duration,
		Date:        entity.DateOf(e.Date),
	}
}

type ExerciseRepository struct {
	db *sqlx.DB
}

func NewExerciseRepository(db *sqlx.DB) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

func (r *ExerciseRepository) Save(ctx context.Context, exercise *entity.Exercise) (*entity.Exercise, error) {
	const op = "adapter.repository.postgres.ExerciseRepository.Save"
	const query = `INSERT INTO exercises (id, user_id, description, duration, date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, description, duration, date`

	var e exerciseDB

	err := r.db.GetContext(ctx, &e, query,
		exercise.ID, exercise.UserID, exercise.Description, exercise.Duration, exercise.Date)
	if err != nil {
		if isForeignKeyViolationError(err) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrUserNotFound)
		}

		return nil, fmt.Errorf("%s: failed to insert into exercises table: %w", op, err)
	}

	return e.toEntity(), nil
}

// RetrieveByIDs returns the exercises with the given ids in no particular order.
// Unknown ids are skipped.
func (r *ExerciseRepository) RetrieveByIDs(ctx context.Context, ids []string) ([]*entity.Exercise, error) {
	const op = "adapter.repository.postgres.ExerciseRepository.RetrieveByIDs"

	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`SELECT id, user_id, description, duration, date FROM exercises WHERE id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var rows []exerciseDB

	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("%s: failed to get rows from exercises table: %w", op, err)
	}

	exercises := make([]*entity.Exercise, 0, len(rows))
	for i := range rows {
		exercises = append(exercises, rows[i].toEntity())
	}

	return exercises, nil
}
