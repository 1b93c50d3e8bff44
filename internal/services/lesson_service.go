package services

import (
	"context"
	"fmt"

	"github.com/vytor/brainboost/internal/catalog"
	"github.com/vytor/brainboost/internal/errors"
	"github.com/vytor/brainboost/internal/logger"
	"github.com/vytor/brainboost/internal/models"
	"github.com/vytor/brainboost/internal/recommend"
)

// LessonService handles lesson recommendation and learning pathways
type LessonService interface {
	Recommend(ctx context.Context, criteria recommend.Criteria) ([]recommend.Recommendation, error)
	Sequence(ctx context.Context, req recommend.SequenceRequest) ([]models.Lesson, error)
}

type lessonService struct {
	holder *catalog.Holder
	engine *recommend.Engine
}

// NewLessonService creates a new LessonService
func NewLessonService(holder *catalog.Holder, engine *recommend.Engine) LessonService {
	return &lessonService{holder: holder, engine: engine}
}

func (s *lessonService) Recommend(ctx context.Context, criteria recommend.Criteria) ([]recommend.Recommendation, error) {
	log := logger.FromContext(ctx).WithPrefix("lessons")
	log.Debug("recommending lessons: age_group=%s, difficulty=%s, skills=%v, max=%d",
		criteria.AgeGroup, criteria.Difficulty, criteria.SkillTags, criteria.MaxResults)

	if err := validateLevel(criteria.AgeGroup, criteria.Difficulty); err != nil {
		return nil, err
	}
	if criteria.MaxResults < 0 {
		return nil, errors.NewValidationError("max_results", "must not be negative")
	}

	cat, err := loadCatalog(ctx, s.holder)
	if err != nil {
		return nil, err
	}
	recs := s.engine.Rank(cat, criteria)
	log.Debug("found %d recommendations", len(recs))
	return recs, nil
}

func (s *lessonService) Sequence(ctx context.Context, req recommend.SequenceRequest) ([]models.Lesson, error) {
	log := logger.FromContext(ctx).WithPrefix("lessons")
	log.Debug("sequencing lessons: age_group=%s, targets=%v, completed=%d, length=%d",
		req.AgeGroup, req.TargetSkills, len(req.CompletedLessonIDs), req.Length)

	if err := validateLevel(req.AgeGroup, ""); err != nil {
		return nil, err
	}
	if req.Length < 0 {
		return nil, errors.NewValidationError("length", "must not be negative")
	}
	if limit := s.engine.Config().MaxSequenceLength; limit > 0 && req.Length > limit {
		return nil, errors.NewValidationError("length", fmt.Sprintf("must not exceed %d", limit))
	}

	cat, err := loadCatalog(ctx, s.holder)
	if err != nil {
		return nil, err
	}
	return s.engine.Sequence(cat, req), nil
}

func validateLevel(group models.AgeGroup, d models.Difficulty) error {
	if group != "" && !group.Valid() {
		return errors.NewValidationError("age_group", "must be one of 5-10, 10-15, 15-18")
	}
	if d != "" && !d.Valid() {
		return errors.NewValidationError("difficulty", "must be one of easy, medium, hard")
	}
	return nil
}
