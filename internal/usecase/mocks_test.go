package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vadimbarashkov/microservices/internal/entity"
)

type MockCounterRepository struct {
	mock.Mock
}

func (r *MockCounterRepository) Next(ctx context.Context, name string) (int64, error) {
	args := r.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

type MockURLRepository struct {
	mock.Mock
}

func (r *MockURLRepository) Save(ctx context.Context, id int64, originalURL string) (*entity.URL, error) {
	args := r.Called(ctx, id, originalURL)
	url, _ := args.Get(0).(*entity.URL)
	return url, args.Error(1)
}

func (r *MockURLRepository) RetrieveByID(ctx context.Context, id int64) (*entity.URL, error) {
	args := r.Called(ctx, id)
	url, _ := args.Get(0).(*entity.URL)
	return url, args.Error(1)
}

func (r *MockURLRepository) RetrieveByOriginalURL(ctx context.Context, originalURL string) (*entity.URL, error) {
	args := r.Called(ctx, originalURL)
	url, _ := args.Get(0).(*entity.URL)
	return url, args.Error(1)
}

type MockURLCache struct {
	mock.Mock
}

func (c *MockURLCache) Get(ctx context.Context, id int64) (string, bool, error) {
	args := c.Called(ctx, id)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (c *MockURLCache) Set(ctx context.Context, id int64, originalURL string) error {
	args := c.Called(ctx, id, originalURL)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (r *MockUserRepository) Save(ctx context.Context, id, username string) (*entity.User, error) {
	args := r.Called(ctx, id, username)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (r *MockUserRepository) RetrieveByID(ctx context.Context, id string) (*entity.User, error) {
	args := r.Called(ctx, id)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (r *MockUserRepository) RetrieveAll(ctx context.Context) ([]*entity.User, error) {
	args := r.Called(ctx)
	users, _ := args.Get(0).([]*entity.User)
	return users, args.Error(1)
}

func (r *MockUserRepository) AppendLog(ctx context.Context, userID, exerciseID string) error {
	args := r.Called(ctx, userID, exerciseID)
	return args.Error(0)
}

type MockExerciseRepository struct {
	mock.Mock
}

func (r *MockExerciseRepository) Save(ctx context.Context, exercise *entity.Exercise) (*entity.Exercise, error) {
	args := r.Called(ctx, exercise)
	e, _ := args.Get(0).(*entity.Exercise)
	return e, args.Error(1)
}

func (r *MockExerciseRepository) RetrieveByIDs(ctx context.Context, ids []string) ([]*entity.Exercise, error) {
	args := r.Called(ctx, ids)
	exercises, _ := args.Get(0).([]*entity.Exercise)
	return exercises, args.Error(1)
}
