package repository

import (
	"context"

	"github.com/vytor/brainboost/internal/models"
)

// ContentRepository stores the lesson and question catalog.
type ContentRepository interface {
	UpsertLessons(ctx context.Context, lessons []models.Lesson) error
	UpsertQuestions(ctx context.Context, questions []models.Question) error
	ListLessons(ctx context.Context, filter models.LessonFilter) ([]models.Lesson, error)
	ListQuestions(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error)
}

// ReportRepository stores assembled reports. Reports are write-once: Save
// leaves an existing row with the same ID untouched and reports created false.
type ReportRepository interface {
	Save(ctx context.Context, report models.Report) (bool, error)
	Get(ctx context.Context, id string) (*models.Report, error)
	ListByUser(ctx context.Context, filter models.ReportFilter) ([]models.Report, error)
	CountByUser(ctx context.Context, userID string) (int, error)
}

// AttemptRepository handles per-attempt history and accumulated learner progress
type AttemptRepository interface {
	Insert(ctx context.Context, attempt models.QuizAttempt) (int64, bool, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.QuizAttempt, error)
	AddProgress(ctx context.Context, userID string, xp int, badges []string) error
	Progress(ctx context.Context, userID string) (*models.LearnerProgress, error)
}
