package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/brainboost/internal/models"
)

// MockContentRepository is a mock implementation of repository.ContentRepository
type MockContentRepository struct {
	mock.Mock
}

func (m *MockContentRepository) UpsertLessons(ctx context.Context, lessons []models.Lesson) error {
	args := m.Called(ctx, lessons)
	return args.Error(0)
}

func (m *MockContentRepository) UpsertQuestions(ctx context.Context, questions []models.Question) error {
	args := m.Called(ctx, questions)
	return args.Error(0)
}

func (m *MockContentRepository) ListLessons(ctx context.Context, filter models.LessonFilter) ([]models.Lesson, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Lesson), args.Error(1)
}

func (m *MockContentRepository) ListQuestions(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Question), args.Error(1)
}
