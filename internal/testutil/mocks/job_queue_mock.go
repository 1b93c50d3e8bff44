package mocks

import (
	"github.com/stretchr/testify/mock"
	"github.com/vytor/brainboost/internal/models"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueAttempt(report models.Report, sub models.QuizSubmission) error {
	args := m.Called(report, sub)
	return args.Error(0)
}
