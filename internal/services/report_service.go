package services

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/vytor/brainboost/internal/errors"
	"github.com/vytor/brainboost/internal/logger"
	"github.com/vytor/brainboost/internal/models"
	"github.com/vytor/brainboost/internal/report"
	"github.com/vytor/brainboost/internal/repository"
)

const maxReportPage = 100

type ReportPage struct {
	Reports []models.Report `json:"reports"`
	Total   int             `json:"total"`
	Limit   int             `json:"limit"`
	Offset  int             `json:"offset"`
}

// ReportService reads stored reports and the views derived from them.
type ReportService interface {
	Get(ctx context.Context, id string) (*models.Report, error)
	ListByUser(ctx context.Context, filter models.ReportFilter) (*ReportPage, error)
	Insights(ctx context.Context, id string) (*report.EducatorInsights, error)
	Certificate(ctx context.Context, id string) (*models.Certificate, error)
	Summary(ctx context.Context, id string) (*report.AnalyticsSummary, error)
	UserSummary(ctx context.Context, userID string) (*report.AnalyticsSummary, error)
	Progress(ctx context.Context, userID string) (*models.LearnerProgress, error)
}

type reportService struct {
	reportRepo  repository.ReportRepository
	attemptRepo repository.AttemptRepository
}

// NewReportService creates a new ReportService
func NewReportService(reportRepo repository.ReportRepository, attemptRepo repository.AttemptRepository) ReportService {
	return &reportService{reportRepo: reportRepo, attemptRepo: attemptRepo}
}

func (s *reportService) Get(ctx context.Context, id string) (*models.Report, error) {
	log := logger.FromContext(ctx).WithPrefix("reports")
	log.Debug("getting report: id=%s", id)

	if id == "" {
		return nil, errors.NewValidationError("id", "cannot be empty")
	}

	r, err := s.reportRepo.Get(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("report", id)
		}
		log.Error("failed to get report: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return r, nil
}

func (s *reportService) ListByUser(ctx context.Context, filter models.ReportFilter) (*ReportPage, error) {
	log := logger.FromContext(ctx).WithPrefix("reports")
	log.Debug("listing reports: user_id=%s, limit=%d, offset=%d", filter.UserID, filter.Limit, filter.Offset)

	if filter.UserID == "" {
		return nil, errors.NewValidationError("user_id", "cannot be empty")
	}
	if filter.Limit <= 0 || filter.Limit > maxReportPage {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	reports, err := s.reportRepo.ListByUser(ctx, filter)
	if err != nil {
		log.Error("failed to list reports: %v", err)
		return nil, errors.NewInternalError(err)
	}
	total, err := s.reportRepo.CountByUser(ctx, filter.UserID)
	if err != nil {
		log.Error("failed to count reports: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return &ReportPage{Reports: reports, Total: total, Limit: filter.Limit, Offset: filter.Offset}, nil
}

func (s *reportService) Insights(ctx context.Context, id string) (*report.EducatorInsights, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	insights := report.Insights(*r)
	return &insights, nil
}

// Certificate returns the report's certificate; ineligible reports yield Eligible=false.
func (s *reportService) Certificate(ctx context.Context, id string) (*models.Certificate, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	cert := r.Certificate
	return &cert, nil
}

func (s *reportService) Summary(ctx context.Context, id string) (*report.AnalyticsSummary, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	summary := report.Summarize(*r)
	return &summary, nil
}

// UserSummary aggregates the learner's most recent reports.
func (s *reportService) UserSummary(ctx context.Context, userID string) (*report.AnalyticsSummary, error) {
	page, err := s.ListByUser(ctx, models.ReportFilter{UserID: userID, Limit: maxReportPage})
	if err != nil {
		return nil, err
	}
	summary := report.Summarize(page.Reports...)
	return &summary, nil
}

// Progress returns zero progress for learners without recorded attempts.
func (s *reportService) Progress(ctx context.Context, userID string) (*models.LearnerProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("reports")

	if userID == "" {
		return nil, errors.NewValidationError("user_id", "cannot be empty")
	}

	p, err := s.attemptRepo.Progress(ctx, userID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return &models.LearnerProgress{UserID: userID, Badges: []string{}}, nil
		}
		log.Error("failed to get progress: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return p, nil
}
