package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/brainboost/internal/logger"
	"github.com/vytor/brainboost/internal/models"
	"github.com/vytor/brainboost/internal/repository"
)

type reportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new ReportRepository implementation
func NewReportRepository(db *sql.DB) repository.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Save(ctx context.Context, report models.Report) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("report_repo")
	log.Debug("saving report: id=%s, user_id=%s", report.ID, report.UserID)

	body, err := json.Marshal(report)
	if err != nil {
		log.Error("failed to encode report: %v", err)
		return false, err
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO reports (id, user_id, category, composite_score, body, generated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO NOTHING
`, report.ID, report.UserID, report.Scores.Category, report.Scores.CompositeScore, string(body), report.GeneratedAt.UTC())
	if err != nil {
		log.Error("failed to save report: %v", err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		log.Debug("report exists, left unchanged: id=%s", report.ID)
	}
	return n > 0, nil
}

func (r *reportRepository) Get(ctx context.Context, id string) (*models.Report, error) {
	log := logger.FromContext(ctx).WithPrefix("report_repo")
	log.Debug("getting report: id=%s", id)

	var body string
	err := r.db.QueryRowContext(ctx, `SELECT body FROM reports WHERE id = ?`, id).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("report not found: id=%s", id)
		} else {
			log.Error("failed to get report: %v", err)
		}
		return nil, err
	}

	var report models.Report
	if err := json.Unmarshal([]byte(body), &report); err != nil {
		log.Error("failed to decode report id=%s: %v", id, err)
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) ListByUser(ctx context.Context, filter models.ReportFilter) ([]models.Report, error) {
	log := logger.FromContext(ctx).WithPrefix("report_repo")
	log.Debug("listing reports: user_id=%s, limit=%d, offset=%d", filter.UserID, filter.Limit, filter.Offset)

	limit, offset := pageBounds(filter.Limit, filter.Offset)
	query := sqlBuilder.Select("body").
		From("reports").
		Where(squirrel.Eq{"user_id": filter.UserID}).
		OrderBy("generated_at DESC", "id ASC").
		Limit(limit).
		Offset(offset)

	sql, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sql, args...)
	if err != nil {
		log.Error("failed to list reports: %v", err)
		return nil, err
	}
	defer rows.Close()

	reports := []models.Report{}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			log.Error("failed to scan report row: %v", err)
			return nil, err
		}
		var report models.Report
		if err := json.Unmarshal([]byte(body), &report); err != nil {
			log.Error("failed to decode report: %v", err)
			return nil, err
		}
		reports = append(reports, report)
	}
	log.Debug("found %d reports", len(reports))
	return reports, rows.Err()
}

func (r *reportRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("report_repo")

	sql, args, err := sqlBuilder.Select("COUNT(*)").From("reports").Where(squirrel.Eq{"user_id": userID}).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sql, args...).Scan(&count); err != nil {
		log.Error("failed to count reports: %v", err)
		return 0, err
	}
	return count, nil
}
