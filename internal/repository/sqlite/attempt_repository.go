package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/brainboost/internal/logger"
	"github.com/vytor/brainboost/internal/models"
	"github.com/vytor/brainboost/internal/repository"
)

type attemptRepository struct {
	db *sql.DB
}

// NewAttemptRepository creates a new AttemptRepository implementation
func NewAttemptRepository(db *sql.DB) repository.AttemptRepository {
	return &attemptRepository{db: db}
}

// Insert records an attempt once per report. A repeated report ID returns the
// existing row's id with created false.
func (r *attemptRepository) Insert(ctx context.Context, a models.QuizAttempt) (int64, bool, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("inserting attempt: report_id=%s, user_id=%s", a.ReportID, a.UserID)

	strengths, err := jsonColumn(a.Strengths)
	if err != nil {
		return 0, false, err
	}
	opportunities, err := jsonColumn(a.Opportunities)
	if err != nil {
		return 0, false, err
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO quiz_attempts (
    report_id, user_id, quiz_id, mode, raw_score, total_questions, percentage_score, composite_score,
    speed_score, consistency_score, category, xp, strengths, opportunities, started_at, finished_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(report_id) DO NOTHING
`, a.ReportID, a.UserID, a.QuizID, a.Mode, a.RawScore, a.TotalQuestions, a.PercentageScore, a.CompositeScore,
		a.SpeedScore, a.ConsistencyScore, a.Category, a.XP, strengths, opportunities, a.StartedAt.UTC(), a.FinishedAt.UTC())
	if err != nil {
		log.Error("failed to insert attempt: %v", err)
		return 0, false, err
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		id, err := res.LastInsertId()
		if err == nil {
			log.Debug("attempt inserted: id=%d", id)
		}
		return id, err == nil, err
	}

	var id int64
	err = r.db.QueryRowContext(ctx, `SELECT id FROM quiz_attempts WHERE report_id = ?`, a.ReportID).Scan(&id)
	if err != nil {
		log.Error("failed to get attempt id: %v", err)
	} else {
		log.Debug("attempt exists: id=%d", id)
	}
	return id, false, err
}

func (r *attemptRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.QuizAttempt, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("listing attempts: user_id=%s, limit=%d, offset=%d", userID, limit, offset)

	lim, off := pageBounds(limit, offset)
	query := sqlBuilder.Select(
		"id", "report_id", "user_id", "quiz_id", "mode", "raw_score", "total_questions",
		"percentage_score", "composite_score", "speed_score", "consistency_score", "category", "xp",
		"strengths", "opportunities", "started_at", "finished_at", "created_at",
	).From("quiz_attempts").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("id DESC").
		Limit(lim).
		Offset(off)

	sql, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sql, args...)
	if err != nil {
		log.Error("failed to list attempts: %v", err)
		return nil, err
	}
	defer rows.Close()

	attempts := []models.QuizAttempt{}
	for rows.Next() {
		var (
			a                        models.QuizAttempt
			strengths, opportunities string
		)
		if err := rows.Scan(&a.ID, &a.ReportID, &a.UserID, &a.QuizID, &a.Mode, &a.RawScore, &a.TotalQuestions,
			&a.PercentageScore, &a.CompositeScore, &a.SpeedScore, &a.ConsistencyScore, &a.Category, &a.XP,
			&strengths, &opportunities, &a.StartedAt, &a.FinishedAt, &a.CreatedAt); err != nil {
			log.Error("failed to scan attempt row: %v", err)
			return nil, err
		}
		if a.Strengths, err = scanJSONColumn[string](strengths); err != nil {
			return nil, err
		}
		if a.Opportunities, err = scanJSONColumn[string](opportunities); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	log.Debug("found %d attempts", len(attempts))
	return attempts, rows.Err()
}

// AddProgress adds xp to the learner's total, merges badges and counts one more attempt.
func (r *attemptRepository) AddProgress(ctx context.Context, userID string, xp int, badges []string) error {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("adding progress: user_id=%s, xp=%d, badges=%d", userID, xp, len(badges))

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		var raw string
		err := tx.QueryRowContext(ctx, `SELECT badges FROM learner_progress WHERE user_id = ?`, userID).Scan(&raw)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			log.Error("failed to read progress: %v", err)
			return err
		}
		existing, err := scanJSONColumn[string](raw)
		if err != nil {
			return err
		}
		merged, err := jsonColumn(mergeBadges(existing, badges))
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
INSERT INTO learner_progress (user_id, total_xp, badges, attempts_count)
VALUES (?, ?, ?, 1)
ON CONFLICT(user_id) DO UPDATE SET
    total_xp = total_xp + excluded.total_xp,
    badges = excluded.badges,
    attempts_count = attempts_count + 1,
    updated_at = CURRENT_TIMESTAMP
`, userID, xp, merged)
		if err != nil {
			log.Error("failed to update progress: %v", err)
		}
		return err
	})
}

func (r *attemptRepository) Progress(ctx context.Context, userID string) (*models.LearnerProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("getting progress: user_id=%s", userID)

	var (
		p   models.LearnerProgress
		raw string
	)
	err := r.db.QueryRowContext(ctx, `
SELECT user_id, total_xp, badges, attempts_count, updated_at
FROM learner_progress
WHERE user_id = ?
`, userID).Scan(&p.UserID, &p.TotalXP, &raw, &p.AttemptsCount, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("no progress for user_id=%s", userID)
		} else {
			log.Error("failed to get progress: %v", err)
		}
		return nil, err
	}
	if p.Badges, err = scanJSONColumn[string](raw); err != nil {
		return nil, err
	}
	return &p, nil
}

func mergeBadges(existing, added []string) []string {
	seen := make(map[string]bool, len(existing)+len(added))
	out := make([]string, 0, len(existing)+len(added))
	for _, b := range append(append([]string{}, existing...), added...) {
		if b == "" || seen[b] {
			continue
		}
		seen[b] = true
		out = append(out, b)
	}
	sort.Strings(out)
	return out
}
