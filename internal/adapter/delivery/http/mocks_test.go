package http

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/vadimbarashkov/microservices/internal/entity"
)

type MockShortenerUseCase struct {
	mock.Mock
}

func NewMockShortenerUseCase(t *testing.T) *MockShortenerUseCase {
	m := new(MockShortenerUseCase)
	m.Test(t)
	return m
}

func (m *MockShortenerUseCase) ShortenURL(ctx context.Context, originalURL string) (*entity.URL, error) {
	args := m.Called(ctx, originalURL)
	if url, ok := args.Get(0).(*entity.URL); ok {
		return url, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockShortenerUseCase) ResolveShortURL(ctx context.Context, id int64) (*entity.URL, error) {
	args := m.Called(ctx, id)
	if url, ok := args.Get(0).(*entity.URL); ok {
		return url, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockTrackerUseCase struct {
	mock.Mock
}

func NewMockTrackerUseCase(t *testing.T) *MockTrackerUseCase {
	m := new(MockTrackerUseCase)
	m.Test(t)
	return m
}

func (m *MockTrackerUseCase) CreateUser(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTrackerUseCase) ListUsers(ctx context.Context) ([]*entity.User, error) {
	args := m.Called(ctx)
	if users, ok := args.Get(0).([]*entity.User); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTrackerUseCase) AddExercise(ctx context.Context, userID string, in entity.ExerciseInput) (*entity.ExerciseEntry, error) {
	args := m.Called(ctx, userID, in)
	if entry, ok := args.Get(0).(*entity.ExerciseEntry); ok {
		return entry, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTrackerUseCase) QueryLog(ctx context.Context, userID string, q entity.LogQuery) (*entity.ExerciseLog, error) {
	args := m.Called(ctx, userID, q)
	if log, ok := args.Get(0).(*entity.ExerciseLog); ok {
		return log, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockFileUseCase struct {
	mock.Mock
}

func NewMockFileUseCase(t *testing.T) *MockFileUseCase {
	m := new(MockFileUseCase)
	m.Test(t)
	return m
}

func (m *MockFileUseCase) Analyse(
	ctx context.Context,
	name, declaredType string,
	size int64,
	content io.Reader,
) (*entity.FileMetadata, error) {
	args := m.Called(ctx, name, declaredType, size, content)
	if meta, ok := args.Get(0).(*entity.FileMetadata); ok {
		return meta, args.Error(1)
	}
	return nil, args.Error(1)
}
