package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/brainboost/internal/models"
)

// MockAttemptRepository is a mock implementation of repository.AttemptRepository
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) Insert(ctx context.Context, attempt models.QuizAttempt) (int64, bool, error) {
	args := m.Called(ctx, attempt)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockAttemptRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.QuizAttempt, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.QuizAttempt), args.Error(1)
}

func (m *MockAttemptRepository) AddProgress(ctx context.Context, userID string, xp int, badges []string) error {
	args := m.Called(ctx, userID, xp, badges)
	return args.Error(0)
}

func (m *MockAttemptRepository) Progress(ctx context.Context, userID string) (*models.LearnerProgress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LearnerProgress), args.Error(1)
}
