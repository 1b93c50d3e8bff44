package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/brainboost/internal/logger"
	"github.com/vytor/brainboost/internal/models"
	"github.com/vytor/brainboost/internal/repository"
)

type contentRepository struct {
	db *sql.DB
}

// NewContentRepository creates a new ContentRepository implementation
func NewContentRepository(db *sql.DB) repository.ContentRepository {
	return &contentRepository{db: db}
}

// UpsertLessons stores lessons keeping their slice order, which ListLessons returns.
func (r *contentRepository) UpsertLessons(ctx context.Context, lessons []models.Lesson) error {
	log := logger.FromContext(ctx).WithPrefix("content_repo")
	log.Debug("upserting %d lessons", len(lessons))

	if len(lessons) == 0 {
		return nil
	}

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO lessons (
    id, title, description, skill_tags, age_group, duration_minutes, difficulty, format,
    learning_objectives, active, position
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    title = excluded.title,
    description = excluded.description,
    skill_tags = excluded.skill_tags,
    age_group = excluded.age_group,
    duration_minutes = excluded.duration_minutes,
    difficulty = excluded.difficulty,
    format = excluded.format,
    learning_objectives = excluded.learning_objectives,
    active = excluded.active,
    position = excluded.position,
    updated_at = CURRENT_TIMESTAMP
`)
		if err != nil {
			log.Error("failed to prepare lesson upsert: %v", err)
			return err
		}
		defer stmt.Close()

		for i, l := range lessons {
			tags, err := jsonColumn(l.SkillTags)
			if err != nil {
				return err
			}
			objectives, err := jsonColumn(l.LearningObjectives)
			if err != nil {
				return err
			}
			if _, err := stmt.ExecContext(ctx, l.ID, l.Title, l.Description, tags, l.AgeGroup, l.DurationMinutes,
				l.Difficulty, l.Format, objectives, l.Active, i); err != nil {
				log.Error("failed to upsert lesson id=%s: %v", l.ID, err)
				return err
			}
		}
		return nil
	})
}

func (r *contentRepository) UpsertQuestions(ctx context.Context, questions []models.Question) error {
	log := logger.FromContext(ctx).WithPrefix("content_repo")
	log.Debug("upserting %d questions", len(questions))

	if len(questions) == 0 {
		return nil
	}

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO questions (
    id, age_group, topic, text, options, correct_option_id, explanation,
    cognitive_skill_tags, difficulty, active, position
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    age_group = excluded.age_group,
    topic = excluded.topic,
    text = excluded.text,
    options = excluded.options,
    correct_option_id = excluded.correct_option_id,
    explanation = excluded.explanation,
    cognitive_skill_tags = excluded.cognitive_skill_tags,
    difficulty = excluded.difficulty,
    active = excluded.active,
    position = excluded.position,
    updated_at = CURRENT_TIMESTAMP
`)
		if err != nil {
			log.Error("failed to prepare question upsert: %v", err)
			return err
		}
		defer stmt.Close()

		for i, q := range questions {
			options, err := jsonColumn(q.Options)
			if err != nil {
				return err
			}
			tags, err := jsonColumn(q.CognitiveSkillTags)
			if err != nil {
				return err
			}
			if _, err := stmt.ExecContext(ctx, q.ID, q.AgeGroup, q.Topic, q.Text, options, q.CorrectOptionID,
				q.Explanation, tags, q.Difficulty, q.Active, i); err != nil {
				log.Error("failed to upsert question id=%s: %v", q.ID, err)
				return err
			}
		}
		return nil
	})
}

func (r *contentRepository) ListLessons(ctx context.Context, filter models.LessonFilter) ([]models.Lesson, error) {
	log := logger.FromContext(ctx).WithPrefix("content_repo")
	log.Debug("listing lessons: age_group=%s, difficulty=%s, active_only=%t", filter.AgeGroup, filter.Difficulty, filter.ActiveOnly)

	query := sqlBuilder.Select(
		"id", "title", "description", "skill_tags", "age_group", "duration_minutes",
		"difficulty", "format", "learning_objectives", "active",
	).From("lessons")

	if filter.AgeGroup != "" {
		query = query.Where(squirrel.Eq{"age_group": filter.AgeGroup})
	}
	if filter.Difficulty != "" {
		query = query.Where(squirrel.Eq{"difficulty": filter.Difficulty})
	}
	if filter.ActiveOnly {
		query = query.Where(squirrel.Eq{"active": true})
	}
	query = query.OrderBy("position ASC", "id ASC")

	sql, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sql, args...)
	if err != nil {
		log.Error("failed to list lessons: %v", err)
		return nil, err
	}
	defer rows.Close()

	lessons := []models.Lesson{}
	for rows.Next() {
		var (
			l                models.Lesson
			tags, objectives string
		)
		if err := rows.Scan(&l.ID, &l.Title, &l.Description, &tags, &l.AgeGroup, &l.DurationMinutes,
			&l.Difficulty, &l.Format, &objectives, &l.Active); err != nil {
			log.Error("failed to scan lesson row: %v", err)
			return nil, err
		}
		if l.SkillTags, err = scanJSONColumn[string](tags); err != nil {
			return nil, err
		}
		if l.LearningObjectives, err = scanJSONColumn[string](objectives); err != nil {
			return nil, err
		}
		lessons = append(lessons, l)
	}
	log.Debug("found %d lessons", len(lessons))
	return lessons, rows.Err()
}

func (r *contentRepository) ListQuestions(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error) {
	log := logger.FromContext(ctx).WithPrefix("content_repo")
	log.Debug("listing questions: age_group=%s, difficulty=%s, active_only=%t", filter.AgeGroup, filter.Difficulty, filter.ActiveOnly)

	query := sqlBuilder.Select(
		"id", "age_group", "topic", "text", "options", "correct_option_id", "explanation",
		"cognitive_skill_tags", "difficulty", "active",
	).From("questions")

	if filter.AgeGroup != "" {
		query = query.Where(squirrel.Eq{"age_group": filter.AgeGroup})
	}
	if filter.Difficulty != "" {
		query = query.Where(squirrel.Eq{"difficulty": filter.Difficulty})
	}
	if filter.ActiveOnly {
		query = query.Where(squirrel.Eq{"active": true})
	}
	query = query.OrderBy("position ASC", "id ASC")

	sql, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sql, args...)
	if err != nil {
		log.Error("failed to list questions: %v", err)
		return nil, err
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		var (
			q             models.Question
			options, tags string
		)
		if err := rows.Scan(&q.ID, &q.AgeGroup, &q.Topic, &q.Text, &options, &q.CorrectOptionID,
			&q.Explanation, &tags, &q.Difficulty, &q.Active); err != nil {
			log.Error("failed to scan question row: %v", err)
			return nil, err
		}
		if q.Options, err = scanJSONColumn[models.QuestionOption](options); err != nil {
			return nil, err
		}
		if q.CognitiveSkillTags, err = scanJSONColumn[string](tags); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	log.Debug("found %d questions", len(questions))
	return questions, rows.Err()
}
