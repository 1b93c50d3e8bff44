package jobs

import "github.com/vytor/brainboost/internal/models"

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	EnqueueAttempt(report models.Report, sub models.QuizSubmission) error
}
