package worker

import (
	"context"
	"fmt"

	"github.com/vytor/brainboost/internal/logger"
	"github.com/vytor/brainboost/internal/models"
	"github.com/vytor/brainboost/internal/repository"
)

// RecordAttemptJob stores the attempt row for a report and folds its rewards
// into the learner's progress.
type RecordAttemptJob struct {
	Attempts repository.AttemptRepository
	Attempt  models.QuizAttempt
	Badges   []string
}

func (j *RecordAttemptJob) Name() string { return "record_attempt" }

func (j *RecordAttemptJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"user_id":   j.Attempt.UserID,
		"report_id": j.Attempt.ReportID,
	})

	id, created, err := j.Attempts.Insert(ctx, j.Attempt)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	if !created {
		log.Debug("attempt already recorded: id=%d", id)
		return nil
	}
	if err := j.Attempts.AddProgress(ctx, j.Attempt.UserID, j.Attempt.XP, j.Badges); err != nil {
		return fmt.Errorf("add progress: %w", err)
	}
	log.Debug("attempt recorded: id=%d, xp=%d", id, j.Attempt.XP)
	return nil
}

// AttemptFromReport flattens a report into the stored attempt row.
func AttemptFromReport(r models.Report, sub models.QuizSubmission) models.QuizAttempt {
	strengths := make([]string, 0, len(r.Strengths))
	for _, s := range r.Strengths {
		strengths = append(strengths, s.SkillTag)
	}
	opportunities := make([]string, 0, len(r.Opportunities))
	for _, o := range r.Opportunities {
		opportunities = append(opportunities, o.SkillTag)
	}
	return models.QuizAttempt{
		ReportID:         r.ID,
		UserID:           r.UserID,
		QuizID:           sub.QuizID,
		Mode:             sub.Mode,
		RawScore:         r.Scores.RawScore,
		TotalQuestions:   r.Scores.TotalQuestions,
		PercentageScore:  r.Scores.PercentageScore,
		CompositeScore:   r.Scores.CompositeScore,
		SpeedScore:       r.Scores.SpeedScore,
		ConsistencyScore: r.Scores.ConsistencyScore,
		Category:         r.Scores.Category,
		XP:               r.GamificationRewards.XP,
		Strengths:        strengths,
		Opportunities:    opportunities,
		StartedAt:        sub.StartedAt,
		FinishedAt:       sub.FinishedAt,
	}
}
