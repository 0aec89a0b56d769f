package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vadimbarashkov/microservices/internal/entity"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

type userRepository interface {
	Save(ctx context.Context, id, username string) (*entity.User, error)
	RetrieveByID(ctx context.Context, id string) (*entity.User, error)
	RetrieveAll(ctx context.Context) ([]*entity.User, error)
	AppendLog(ctx context.Context, userID, exerciseID string) error
}

type exerciseRepository interface {
	Save(ctx context.Context, exercise *entity.Exercise) (*entity.Exercise, error)
	RetrieveByIDs(ctx context.Context, ids []string) ([]*entity.Exercise, error)
}

// TrackerUseCase manages users and their exercise logs.
type TrackerUseCase struct {
	userRepo     userRepository
	exerciseRepo exerciseRepository
	logger       *slog.Logger

	newID func() (string, error)
	now   func() time.Time
}

func NewTrackerUseCase(userRepo userRepository, exerciseRepo exerciseRepository, logger *slog.Logger) *TrackerUseCase {
	return &TrackerUseCase{
		userRepo:     userRepo,
		exerciseRepo: exerciseRepo,
		logger:       logger,
		newID: func() (string, error) {
			return gonanoid.New()
		},
		now: time.Now,
	}
}

func (uc *TrackerUseCase) CreateUser(ctx context.Context, username string) (*entity.User, error) {
	const op = "usecase.TrackerUseCase.CreateUser"

	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrEmptyUsername)
	}

	id, err := uc.newID()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to generate user id: %w", op, err)
	}

	user, err := uc.userRepo.Save(ctx, id, username)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create user: %w", op, err)
	}

	return user, nil
}

func (uc *TrackerUseCase) ListUsers(ctx context.Context) ([]*entity.User, error) {
	const op = "usecase.TrackerUseCase.ListUsers"

	users, err := uc.userRepo.RetrieveAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list users: %w", op, err)
	}

	return users, nil
}

// AddExercise stores a new exercise and appends it to the owner's log.
//
// The exercise and the log append are two separate writes. If the append fails
// the exercise stays stored but unreachable from any log; this is reported as
// an error and not compensated.
func (uc *TrackerUseCase) AddExercise(ctx context.Context, userID string, in entity.ExerciseInput) (*entity.ExerciseEntry, error) {
	const op = "usecase.TrackerUseCase.AddExercise"

	user, err := uc.userRepo.RetrieveByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to retrieve user: %w", op, err)
	}

	if strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrEmptyDescription)
	}

	duration, err := entity.ParseDuration(in.Duration)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	date, ok := entity.ParseDate(in.Date)
	if !ok {
		date = entity.DateOf(uc.now())
	}

	id, err := uc.newID()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to generate exercise id: %w", op, err)
	}

	exercise, err := uc.exerciseRepo.Save(ctx, &entity.Exercise{
		ID:          id,
		UserID:      user.ID,
		Description: in.Description,
		Duration:    duration,
		Date:        date,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create exercise: %w", op, err)
	}

	if err := uc.userRepo.AppendLog(ctx, user.ID, exercise.ID); err != nil {
		uc.logger.Error(
			"exercise stored but not appended to user log",
			slog.String("op", op),
			slog.String("user_id", user.ID),
			slog.String("exercise_id", exercise.ID),
			slog.Any("err", err),
		)

		return nil, fmt.Errorf("%s: failed to append exercise to log: %w", op, err)
	}

	user.Log = append(user.Log, exercise.ID)

	return &entity.ExerciseEntry{User: user, Exercise: exercise}, nil
}

// QueryLog returns the user's exercises in log order, filtered by date and capped
// according to q. Exercises that are missing or owned by another user are skipped.
func (uc *TrackerUseCase) QueryLog(ctx context.Context, userID string, q entity.LogQuery) (*entity.ExerciseLog, error) {
	const op = "usecase.TrackerUseCase.QueryLog"

	user, err := uc.userRepo.RetrieveByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to retrieve user: %w", op, err)
	}

	var exercises []*entity.Exercise

	if len(user.Log) > 0 {
		exercises, err = uc.exerciseRepo.RetrieveByIDs(ctx, user.Log)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to retrieve exercises: %w", op, err)
		}
	}

	byID := make(map[string]*entity.Exercise, len(exercises))
	for _, e := range exercises {
		byID[e.ID] = e
	}

	ordered := make([]*entity.Exercise, 0, len(user.Log))
	for _, id := range user.Log {
		e, ok := byID[id]
		if !ok || e.UserID != user.ID {
			continue
		}
		ordered = append(ordered, e)
	}

	log := entity.NewLogFilter(q).Apply(ordered)

	return &entity.ExerciseLog{
		User:  user,
		Count: len(log),
		Log:   log,
	}, nil
}
