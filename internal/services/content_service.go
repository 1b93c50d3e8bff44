package services

import (
	"context"

	"github.com/vytor/brainboost/internal/catalog"
	"github.com/vytor/brainboost/internal/errors"
	"github.com/vytor/brainboost/internal/logger"
	"github.com/vytor/brainboost/internal/models"
	"github.com/vytor/brainboost/internal/repository"
)

// ContentService moves content packs into storage and builds the read-only catalog from it.
type ContentService interface {
	Seed(ctx context.Context, pack *catalog.Pack) error
	BuildCatalog(ctx context.Context) (*catalog.Catalog, error)
	Stats(ctx context.Context) (catalog.Stats, error)
}

type contentService struct {
	contentRepo repository.ContentRepository
	holder      *catalog.Holder
}

// NewContentService creates a new ContentService
func NewContentService(contentRepo repository.ContentRepository, holder *catalog.Holder) ContentService {
	return &contentService{contentRepo: contentRepo, holder: holder}
}

func (s *contentService) Seed(ctx context.Context, pack *catalog.Pack) error {
	log := logger.FromContext(ctx).WithPrefix("content")

	if pack == nil {
		return errors.NewBadRequestError("content pack is required")
	}
	log.Info("seeding content: lessons=%d, questions=%d", len(pack.Lessons), len(pack.Questions))

	if err := s.contentRepo.UpsertLessons(ctx, pack.Lessons); err != nil {
		log.Error("failed to seed lessons: %v", err)
		return errors.NewInternalError(err)
	}
	if err := s.contentRepo.UpsertQuestions(ctx, pack.Questions); err != nil {
		log.Error("failed to seed questions: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

// BuildCatalog reads every stored lesson and question, inactive ones included;
// the catalog applies the active flag itself.
func (s *contentService) BuildCatalog(ctx context.Context) (*catalog.Catalog, error) {
	log := logger.FromContext(ctx).WithPrefix("content")

	lessons, err := s.contentRepo.ListLessons(ctx, models.LessonFilter{})
	if err != nil {
		log.Error("failed to load lessons: %v", err)
		return nil, errors.NewInternalError(err)
	}
	questions, err := s.contentRepo.ListQuestions(ctx, models.QuestionFilter{})
	if err != nil {
		log.Error("failed to load questions: %v", err)
		return nil, errors.NewInternalError(err)
	}

	cat := catalog.New(lessons, questions)
	st := cat.Stats()
	log.Info("catalog built: lessons=%d (active %d), questions=%d (active %d)",
		st.Lessons, st.ActiveLessons, st.Questions, st.ActiveQuestions)
	return cat, nil
}

func (s *contentService) Stats(ctx context.Context) (catalog.Stats, error) {
	cat, err := loadCatalog(ctx, s.holder)
	if err != nil {
		return catalog.Stats{}, err
	}
	return cat.Stats(), nil
}
