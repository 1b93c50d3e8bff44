package jobs

import (
	"github.com/vytor/brainboost/internal/models"
	"github.com/vytor/brainboost/internal/repository"
	"github.com/vytor/brainboost/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	attemptPool *worker.Pool
	attemptRepo repository.AttemptRepository
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(attemptPool *worker.Pool, attemptRepo repository.AttemptRepository) JobQueue {
	return &WorkerQueue{
		attemptPool: attemptPool,
		attemptRepo: attemptRepo,
	}
}

func (q *WorkerQueue) EnqueueAttempt(report models.Report, sub models.QuizSubmission) error {
	return q.attemptPool.Submit(&worker.RecordAttemptJob{
		Attempts: q.attemptRepo,
		Attempt:  worker.AttemptFromReport(report, sub),
		Badges:   report.GamificationRewards.Badges,
	})
}
