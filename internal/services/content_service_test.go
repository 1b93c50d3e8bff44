package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/brainboost/internal/catalog"
	"github.com/vytor/brainboost/internal/models"
	"github.com/vytor/brainboost/internal/repository/sqlite"
	"github.com/vytor/brainboost/internal/services"
	"github.com/vytor/brainboost/internal/testutil"
	"github.com/vytor/brainboost/internal/testutil/mocks"
)

func TestContentService_SeedAndBuildRoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.MustClose(t, db)
	svc := services.NewContentService(sqlite.NewContentRepository(db), catalog.NewHolder())
	ctx := context.Background()

	pack, err := catalog.DefaultPack()
	require.NoError(t, err)
	require.NoError(t, svc.Seed(ctx, pack))

	cat, err := svc.BuildCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, pack.Catalog().Stats(), cat.Stats())
	assert.Equal(t, pack.Lessons, cat.Lessons())

	q, ok := cat.Question("Q-ALG-001")
	require.True(t, ok)
	assert.Equal(t, "a", q.CorrectOptionID)
}

func TestContentService_Seed_Errors(t *testing.T) {
	repo := new(mocks.MockContentRepository)
	svc := services.NewContentService(repo, catalog.NewHolder())

	err := svc.Seed(context.Background(), nil)
	requireAppError(t, err, 400)

	repo.On("UpsertLessons", mock.Anything, mock.Anything).Return(errors.New("readonly database"))
	err = svc.Seed(context.Background(), &catalog.Pack{Lessons: []models.Lesson{{ID: "L-1"}}})
	requireAppError(t, err, 500)
	repo.AssertNotCalled(t, "UpsertQuestions", mock.Anything, mock.Anything)
}

func TestContentService_BuildCatalog_Error(t *testing.T) {
	repo := new(mocks.MockContentRepository)
	repo.On("ListLessons", mock.Anything, models.LessonFilter{}).Return(nil, errors.New("no such table: lessons"))
	svc := services.NewContentService(repo, catalog.NewHolder())

	_, err := svc.BuildCatalog(context.Background())
	requireAppError(t, err, 500)
}

func TestContentService_Stats(t *testing.T) {
	svc := services.NewContentService(new(mocks.MockContentRepository), readyHolder(t))

	st, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, st.Lessons)
	assert.Equal(t, 18, st.Questions)
}
