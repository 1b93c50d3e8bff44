package services

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/vytor/brainboost/internal/catalog"
	"github.com/vytor/brainboost/internal/errors"
	"github.com/vytor/brainboost/internal/jobs"
	"github.com/vytor/brainboost/internal/logger"
	"github.com/vytor/brainboost/internal/metrics"
	"github.com/vytor/brainboost/internal/models"
	"github.com/vytor/brainboost/internal/recommend"
	"github.com/vytor/brainboost/internal/report"
	"github.com/vytor/brainboost/internal/repository"
	"github.com/vytor/brainboost/internal/scoring"
)

type SubmitRequest struct {
	Submission models.QuizSubmission `json:"submission"`
	Profile    models.UserProfile    `json:"profile"`
}

// QuizService scores submissions and serves question sets.
type QuizService interface {
	Submit(ctx context.Context, req SubmitRequest) (*models.Report, error)
	Questions(ctx context.Context, query catalog.QuestionQuery) ([]models.Question, error)
}

type quizService struct {
	holder      *catalog.Holder
	reportRepo  repository.ReportRepository
	jobQueue    jobs.JobQueue
	scoringCfg  scoring.Config
	recommender *recommend.Engine
	reportCfg   report.Config
}

// NewQuizService creates a new QuizService
func NewQuizService(
	holder *catalog.Holder,
	reportRepo repository.ReportRepository,
	jobQueue jobs.JobQueue,
	scoringCfg scoring.Config,
	recommender *recommend.Engine,
	reportCfg report.Config,
) QuizService {
	return &quizService{
		holder:      holder,
		reportRepo:  reportRepo,
		jobQueue:    jobQueue,
		scoringCfg:  scoringCfg,
		recommender: recommender,
		reportCfg:   reportCfg,
	}
}

// Submit is idempotent: a submission already reported returns the stored report
// and does not count towards progress again.
func (s *quizService) Submit(ctx context.Context, req SubmitRequest) (*models.Report, error) {
	sub := req.Submission
	if sub.UserID == "" {
		sub.UserID = req.Profile.UserID
	}
	log := logger.FromContext(ctx).WithPrefix("quiz").WithField("user_id", sub.UserID)

	if err := validateSubmission(sub, req.Profile); err != nil {
		return nil, err
	}

	cat, err := loadCatalog(ctx, s.holder)
	if err != nil {
		log.Warn("catalog not available: %v", err)
		return nil, err
	}

	id := report.ReportID(sub)
	existing, err := s.reportRepo.Get(ctx, id)
	switch {
	case err == nil:
		log.Info("submission already reported: report_id=%s", id)
		return existing, nil
	case !stderrors.Is(err, sql.ErrNoRows):
		log.Error("failed to look up report: %v", err)
		return nil, errors.NewInternalError(err)
	}

	ids := make([]string, 0, len(sub.Answers))
	for _, a := range sub.Answers {
		ids = append(ids, a.QuestionID)
	}

	scorer := scoring.New(s.scoringCfg, scoring.WithLessonIndex(cat))
	asm := report.NewAssembler(scorer, s.recommender, s.reportCfg)
	rep, res := asm.AssembleWithResult(sub, req.Profile, cat.Questions(ids), cat)

	if n := len(res.UnmatchedQuestionIDs); n > 0 {
		log.Warn("answers reference unknown questions, scored as incorrect: count=%d, ids=%s",
			n, strings.Join(res.UnmatchedQuestionIDs, ","))
	}

	created, err := s.reportRepo.Save(ctx, rep)
	if err != nil {
		log.Error("failed to save report: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if !created {
		// A concurrent submit stored it first; that one owns the attempt job.
		stored, err := s.reportRepo.Get(ctx, rep.ID)
		if err != nil {
			log.Error("failed to reload report: %v", err)
			return nil, errors.NewInternalError(err)
		}
		log.Info("submission already reported: report_id=%s", rep.ID)
		return stored, nil
	}
	if err := s.jobQueue.EnqueueAttempt(rep, sub); err != nil {
		log.Warn("failed to enqueue attempt for report_id=%s: %v", rep.ID, err)
	}
	metrics.ObserveSubmission(string(rep.Scores.Category), rep.Scores.CompositeScore, len(res.UnmatchedQuestionIDs))

	log.Info("submission scored: report_id=%s, category=%s, composite=%.2f",
		rep.ID, rep.Scores.Category, rep.Scores.CompositeScore)
	return &rep, nil
}

func (s *quizService) Questions(ctx context.Context, query catalog.QuestionQuery) ([]models.Question, error) {
	log := logger.FromContext(ctx).WithPrefix("quiz")

	if err := validateLevel(query.AgeGroup, query.Difficulty); err != nil {
		return nil, err
	}
	if query.Count < 0 {
		return nil, errors.NewValidationError("count", "must not be negative")
	}

	cat, err := loadCatalog(ctx, s.holder)
	if err != nil {
		return nil, err
	}
	questions := cat.SelectQuestions(query)
	log.Debug("selected %d questions: age_group=%s, difficulty=%s", len(questions), query.AgeGroup, query.Difficulty)
	return questions, nil
}

func validateSubmission(sub models.QuizSubmission, profile models.UserProfile) error {
	if sub.UserID == "" {
		return errors.NewValidationError("user_id", "cannot be empty")
	}
	if sub.Mode != "" && sub.Mode != models.ModePractice && sub.Mode != models.ModeDiagnostic {
		return errors.NewValidationError("mode", "must be practice or diagnostic")
	}
	if err := validateLevel(profile.AgeGroup, ""); err != nil {
		return err
	}
	for i, a := range sub.Answers {
		if a.QuestionID == "" {
			return errors.NewValidationError("answers", fmt.Sprintf("question_id cannot be empty at index %d", i))
		}
		if a.ResponseTimeMs < 0 {
			return errors.NewValidationError("answers", fmt.Sprintf("response_time_ms cannot be negative at index %d", i))
		}
	}
	return nil
}
