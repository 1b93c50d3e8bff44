package services_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/brainboost/internal/catalog"
	"github.com/vytor/brainboost/internal/models"
	"github.com/vytor/brainboost/internal/recommend"
	"github.com/vytor/brainboost/internal/report"
	"github.com/vytor/brainboost/internal/scoring"
	"github.com/vytor/brainboost/internal/services"
	"github.com/vytor/brainboost/internal/testutil/mocks"
)

type quizFixture struct {
	reports *mocks.MockReportRepository
	queue   *mocks.MockJobQueue
	svc     services.QuizService
}

func newQuizFixture(t *testing.T, holder *catalog.Holder) quizFixture {
	reportCfg := report.DefaultConfig()
	reportCfg.Now = func() time.Time { return fixedNow }

	f := quizFixture{
		reports: new(mocks.MockReportRepository),
		queue:   new(mocks.MockJobQueue),
	}
	f.svc = services.NewQuizService(holder, f.reports, f.queue,
		scoring.DefaultConfig(), recommend.New(recommend.DefaultConfig()), reportCfg)
	return f
}

func perfectSubmission() services.SubmitRequest {
	start := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	return services.SubmitRequest{
		Submission: models.QuizSubmission{
			UserID: "u-1",
			QuizID: "diag-1",
			Mode:   models.ModeDiagnostic,
			Answers: []models.Answer{
				{QuestionID: "Q-ALG-001", SelectedOptionID: "a", ResponseTimeMs: 10000},
				{QuestionID: "Q-ALG-002", SelectedOptionID: "c", ResponseTimeMs: 10000},
				{QuestionID: "Q-PAT-001", SelectedOptionID: "c", ResponseTimeMs: 10000},
				{QuestionID: "Q-MEM-001", SelectedOptionID: "b", ResponseTimeMs: 10000},
			},
			StartedAt:  start,
			FinishedAt: start.Add(40 * time.Second),
		},
		Profile: models.UserProfile{UserID: "u-1", Name: "Aarav", Age: 12, AgeGroup: models.AgeGroup10to15},
	}
}

func TestQuizService_Submit(t *testing.T) {
	f := newQuizFixture(t, readyHolder(t))
	req := perfectSubmission()
	id := report.ReportID(req.Submission)

	f.reports.On("Get", mock.Anything, id).Return(nil, sql.ErrNoRows)
	f.reports.On("Save", mock.Anything, mock.MatchedBy(func(r models.Report) bool { return r.ID == id })).Return(true, nil)
	f.queue.On("EnqueueAttempt", mock.Anything, req.Submission).Return(nil)

	rep, err := f.svc.Submit(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, id, rep.ID)
	assert.Equal(t, "u-1", rep.UserID)
	assert.Equal(t, 4, rep.Scores.RawScore)
	assert.Equal(t, 100.0, rep.Scores.PercentageScore)
	assert.Equal(t, models.CategoryInnovator, rep.Scores.Category)
	assert.True(t, rep.Certificate.Eligible)
	assert.Equal(t, models.CertificateMastery, rep.Certificate.Type)
	assert.Equal(t, fixedNow, rep.GeneratedAt)
	f.reports.AssertExpectations(t)
	f.queue.AssertExpectations(t)
}

func TestQuizService_Submit_UnknownQuestionScoredIncorrect(t *testing.T) {
	f := newQuizFixture(t, readyHolder(t))
	req := perfectSubmission()
	req.Submission.Answers = append(req.Submission.Answers, models.Answer{QuestionID: "Q-GHOST", SelectedOptionID: "a", ResponseTimeMs: 5000})

	f.reports.On("Get", mock.Anything, mock.Anything).Return(nil, sql.ErrNoRows)
	f.reports.On("Save", mock.Anything, mock.Anything).Return(true, nil)
	f.queue.On("EnqueueAttempt", mock.Anything, mock.Anything).Return(nil)

	rep, err := f.svc.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 4, rep.Scores.RawScore)
	assert.Equal(t, 5, rep.Scores.TotalQuestions)
	assert.Equal(t, 80.0, rep.Scores.PercentageScore)
}

func TestQuizService_Submit_ReturnsExistingReport(t *testing.T) {
	f := newQuizFixture(t, readyHolder(t))
	req := perfectSubmission()
	stored := &models.Report{ID: report.ReportID(req.Submission), UserID: "u-1"}
	f.reports.On("Get", mock.Anything, stored.ID).Return(stored, nil)

	rep, err := f.svc.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Same(t, stored, rep)
	f.reports.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.queue.AssertNotCalled(t, "EnqueueAttempt", mock.Anything, mock.Anything)
}

func TestQuizService_Submit_ConcurrentDuplicateKeepsStoredReport(t *testing.T) {
	f := newQuizFixture(t, readyHolder(t))
	req := perfectSubmission()
	id := report.ReportID(req.Submission)
	stored := &models.Report{ID: id, UserID: "u-1", Certificate: models.Certificate{CertificateID: "CERT_FIRST"}}

	f.reports.On("Get", mock.Anything, id).Return(nil, sql.ErrNoRows).Once()
	f.reports.On("Save", mock.Anything, mock.Anything).Return(false, nil)
	f.reports.On("Get", mock.Anything, id).Return(stored, nil).Once()

	rep, err := f.svc.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Same(t, stored, rep)
	f.reports.AssertExpectations(t)
	f.queue.AssertNotCalled(t, "EnqueueAttempt", mock.Anything, mock.Anything)
}

func TestQuizService_Submit_EnqueueFailureIsNotFatal(t *testing.T) {
	f := newQuizFixture(t, readyHolder(t))
	f.reports.On("Get", mock.Anything, mock.Anything).Return(nil, sql.ErrNoRows)
	f.reports.On("Save", mock.Anything, mock.Anything).Return(true, nil)
	f.queue.On("EnqueueAttempt", mock.Anything, mock.Anything).Return(errors.New("worker queue is full"))

	rep, err := f.svc.Submit(context.Background(), perfectSubmission())
	require.NoError(t, err)
	assert.NotEmpty(t, rep.ID)
}

func TestQuizService_Submit_SaveFails(t *testing.T) {
	f := newQuizFixture(t, readyHolder(t))
	f.reports.On("Get", mock.Anything, mock.Anything).Return(nil, sql.ErrNoRows)
	f.reports.On("Save", mock.Anything, mock.Anything).Return(false, errors.New("disk full"))

	_, err := f.svc.Submit(context.Background(), perfectSubmission())
	requireAppError(t, err, 500)
	f.queue.AssertNotCalled(t, "EnqueueAttempt", mock.Anything, mock.Anything)
}

func TestQuizService_Submit_UserIDFromProfile(t *testing.T) {
	f := newQuizFixture(t, readyHolder(t))
	req := perfectSubmission()
	req.Submission.UserID = ""
	f.reports.On("Get", mock.Anything, mock.Anything).Return(nil, sql.ErrNoRows)
	f.reports.On("Save", mock.Anything, mock.Anything).Return(true, nil)
	f.queue.On("EnqueueAttempt", mock.Anything, mock.Anything).Return(nil)

	rep, err := f.svc.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "u-1", rep.UserID)
}

func TestQuizService_Submit_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*services.SubmitRequest)
		field  string
	}{
		{"no user", func(r *services.SubmitRequest) { r.Submission.UserID = ""; r.Profile.UserID = "" }, "user_id"},
		{"bad mode", func(r *services.SubmitRequest) { r.Submission.Mode = "exam" }, "mode"},
		{"bad age group", func(r *services.SubmitRequest) { r.Profile.AgeGroup = "3-5" }, "age_group"},
		{"blank question", func(r *services.SubmitRequest) { r.Submission.Answers[0].QuestionID = "" }, "answers"},
		{"negative time", func(r *services.SubmitRequest) { r.Submission.Answers[1].ResponseTimeMs = -1 }, "answers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newQuizFixture(t, readyHolder(t))
			req := perfectSubmission()
			tt.mutate(&req)

			_, err := f.svc.Submit(context.Background(), req)
			appErr := requireAppError(t, err, 400)
			assert.Contains(t, appErr.Message, tt.field)
			f.reports.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
		})
	}
}

func TestQuizService_CatalogNotReady(t *testing.T) {
	f := newQuizFixture(t, catalog.NewHolder())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.svc.Submit(ctx, perfectSubmission())
	requireAppError(t, err, 503)

	_, err = f.svc.Questions(ctx, catalog.QuestionQuery{})
	requireAppError(t, err, 503)
}

func TestQuizService_Questions(t *testing.T) {
	f := newQuizFixture(t, readyHolder(t))

	teen, err := f.svc.Questions(context.Background(), catalog.QuestionQuery{AgeGroup: models.AgeGroup15to18})
	require.NoError(t, err)
	assert.Len(t, teen, 4)

	hard, err := f.svc.Questions(context.Background(), catalog.QuestionQuery{AgeGroup: models.AgeGroup10to15, Difficulty: models.DifficultyHard, Count: 1})
	require.NoError(t, err)
	require.Len(t, hard, 1)
	assert.Equal(t, "Q-PAT-003", hard[0].ID)

	_, err = f.svc.Questions(context.Background(), catalog.QuestionQuery{Difficulty: "impossible"})
	requireAppError(t, err, 400)
}
