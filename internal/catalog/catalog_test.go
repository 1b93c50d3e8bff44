package catalog_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/brainboost/internal/catalog"
	"github.com/vytor/brainboost/internal/models"
)

func lesson(id string, active bool, tags ...string) models.Lesson {
	return models.Lesson{
		ID:                 id,
		Title:              "Lesson " + id,
		SkillTags:          tags,
		AgeGroup:           models.AgeGroup10to15,
		DurationMinutes:    20,
		Difficulty:         models.DifficultyEasy,
		Format:             models.FormatVideo,
		LearningObjectives: []string{"one"},
		Active:             active,
	}
}

func TestCatalog_Lookup(t *testing.T) {
	cat := catalog.New(
		[]models.Lesson{lesson("L1", true, "algebra"), lesson("L2", true, "geometry"), lesson("L1", true, "dupe")},
		[]models.Question{{ID: "Q1", Text: "first"}, {ID: "Q2", Text: "second"}},
	)

	l, ok := cat.Lesson("L1")
	require.True(t, ok)
	assert.Equal(t, []string{"algebra"}, l.SkillTags, "first definition wins")
	assert.Len(t, cat.Lessons(), 2)

	_, ok = cat.Lesson("missing")
	assert.False(t, ok)

	qs := cat.Questions([]string{"Q2", "nope", "Q1"})
	require.Len(t, qs, 2)
	assert.Equal(t, "Q2", qs[0].ID)
	assert.Equal(t, "Q1", qs[1].ID)
}

func TestCatalog_IsolatedFromInput(t *testing.T) {
	lessons := []models.Lesson{lesson("L1", true, "algebra")}
	cat := catalog.New(lessons, nil)

	lessons[0].SkillTags[0] = "mutated"
	lessons[0].Title = "mutated"

	l, _ := cat.Lesson("L1")
	assert.Equal(t, "algebra", l.SkillTags[0])
	assert.Equal(t, "Lesson L1", l.Title)
}

func TestCatalog_LessonsForSkill(t *testing.T) {
	cat := catalog.New([]models.Lesson{
		lesson("L1", true, "algebra"),
		lesson("L2", false, "algebra"),
		lesson("L3", true, "algebra", "geometry"),
		lesson("L4", true, "algebra"),
	}, nil)

	assert.Equal(t, []string{"L1", "L3", "L4"}, cat.LessonsForSkill("algebra", 0))
	assert.Equal(t, []string{"L1", "L3"}, cat.LessonsForSkill("algebra", 2))
	assert.Equal(t, []string{"L3"}, cat.LessonsForSkill("geometry", 3))
	assert.Equal(t, []string{}, cat.LessonsForSkill("unknown", 3))
}

func TestCatalog_NilIsEmpty(t *testing.T) {
	var cat *catalog.Catalog
	assert.Empty(t, cat.Lessons())
	assert.Empty(t, cat.LessonsForSkill("x", 1))
	assert.Empty(t, cat.SelectQuestions(catalog.QuestionQuery{}))
	_, ok := cat.Question("x")
	assert.False(t, ok)
	assert.Equal(t, 0, cat.Stats().Lessons)
}

func TestCatalog_Stats(t *testing.T) {
	young := lesson("L2", false, "memory-recall")
	young.AgeGroup = models.AgeGroup5to10
	cat := catalog.New(
		[]models.Lesson{lesson("L1", true, "numerical-reasoning", "algebra"), young},
		[]models.Question{{ID: "Q1", Active: true}, {ID: "Q2"}},
	)

	s := cat.Stats()
	assert.Equal(t, 2, s.Lessons)
	assert.Equal(t, 1, s.ActiveLessons)
	assert.Equal(t, 2, s.Questions)
	assert.Equal(t, 1, s.ActiveQuestions)
	assert.Equal(t, []models.AgeGroup{models.AgeGroup5to10, models.AgeGroup10to15}, s.AgeGroups)
	assert.Equal(t, []string{"algebra", "memory-recall", "numerical-reasoning"}, s.Skills)
}

func TestSelectQuestions(t *testing.T) {
	pack, err := catalog.DefaultPack()
	require.NoError(t, err)
	cat := pack.Catalog()

	t.Run("filters by age group and difficulty", func(t *testing.T) {
		qs := cat.SelectQuestions(catalog.QuestionQuery{AgeGroup: models.AgeGroup10to15, Difficulty: models.DifficultyEasy})
		require.NotEmpty(t, qs)
		for _, q := range qs {
			assert.Equal(t, models.AgeGroup10to15, q.AgeGroup)
			assert.Equal(t, models.DifficultyEasy, q.Difficulty)
		}
	})

	t.Run("filters by topic or tag", func(t *testing.T) {
		qs := cat.SelectQuestions(catalog.QuestionQuery{Topics: []string{"ALGEBRA"}})
		require.NotEmpty(t, qs)
		for _, q := range qs {
			assert.Equal(t, "Algebra", q.Topic)
		}

		qs = cat.SelectQuestions(catalog.QuestionQuery{Topics: []string{"empathy"}})
		require.Len(t, qs, 1)
		assert.Equal(t, "Q-SOC-001", qs[0].ID)
	})

	t.Run("caps the count", func(t *testing.T) {
		assert.Len(t, cat.SelectQuestions(catalog.QuestionQuery{Count: 3}), 3)
	})

	t.Run("same seed same order", func(t *testing.T) {
		q := catalog.QuestionQuery{AgeGroup: models.AgeGroup10to15, Seed: "abc"}
		first := cat.SelectQuestions(q)
		second := cat.SelectQuestions(q)
		assert.Equal(t, first, second)
		assert.ElementsMatch(t, first, cat.SelectQuestions(catalog.QuestionQuery{AgeGroup: models.AgeGroup10to15}))
	})
}

func TestHolder_BlocksUntilInit(t *testing.T) {
	h := catalog.NewHolder()
	assert.False(t, h.Ready())

	got := make(chan *catalog.Catalog, 1)
	go func() {
		cat, err := h.Get(context.Background())
		if err == nil {
			got <- cat
		}
	}()

	select {
	case <-got:
		t.Fatal("Get returned before Init")
	case <-time.After(20 * time.Millisecond):
	}

	want := catalog.New([]models.Lesson{lesson("L1", true, "a")}, nil)
	require.NoError(t, h.Init(func() (*catalog.Catalog, error) { return want, nil }))

	select {
	case cat := <-got:
		assert.Same(t, want, cat)
	case <-time.After(time.Second):
		t.Fatal("Get did not return after Init")
	}
	assert.True(t, h.Ready())
}

func TestHolder_InitRunsOnce(t *testing.T) {
	h := catalog.NewHolder()
	var calls int
	var mu sync.Mutex
	build := func() (*catalog.Catalog, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		return catalog.New(nil, nil), nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = h.Init(build)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, calls)
}

func TestHolder_InitError(t *testing.T) {
	h := catalog.NewHolder()
	boom := errors.New("boom")

	assert.ErrorIs(t, h.Init(func() (*catalog.Catalog, error) { return nil, boom }), boom)
	_, err := h.Get(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.False(t, h.Ready())
}

func TestHolder_GetHonorsContext(t *testing.T) {
	h := catalog.NewHolder()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := h.Get(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDefaultPack(t *testing.T) {
	pack, err := catalog.DefaultPack()
	require.NoError(t, err)

	assert.Len(t, pack.Lessons, 12)
	assert.NotEmpty(t, pack.Questions)

	cat := pack.Catalog()
	l, ok := cat.Lesson("L-MATH-001")
	require.True(t, ok)
	assert.Equal(t, "Quick Math Sprints", l.Title)
	assert.Equal(t, models.FormatInteractive, l.Format)
	assert.True(t, l.Active)
}

func TestLoadPack_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "not json",
			body:    "{",
			wantErr: "invalid JSON",
		},
		{
			name:    "missing questions",
			body:    `{"lessons": []}`,
			wantErr: "schema validation",
		},
		{
			name: "bad age group",
			body: `{"lessons": [{"id": "L1", "title": "t", "skill_tags": ["a"], "age_group": "3-4",
				"duration_minutes": 10, "difficulty": "easy", "format": "video", "learning_objectives": [], "active": true}],
				"questions": []}`,
			wantErr: "schema validation",
		},
		{
			name: "correct option missing",
			body: `{"lessons": [], "questions": [{"id": "Q1", "age_group": "5-10", "topic": "t", "text": "t",
				"options": [{"id": "a", "text": "A"}, {"id": "b", "text": "B"}], "correct_option_id": "z",
				"cognitive_skill_tags": ["a"], "difficulty": "easy", "active": true}]}`,
			wantErr: "correct option",
		},
		{
			name: "duplicate lesson",
			body: `{"questions": [], "lessons": [
				{"id": "L1", "title": "t", "skill_tags": ["a"], "age_group": "5-10", "duration_minutes": 10,
				 "difficulty": "easy", "format": "video", "learning_objectives": [], "active": true},
				{"id": "L1", "title": "t", "skill_tags": ["a"], "age_group": "5-10", "duration_minutes": 10,
				 "difficulty": "easy", "format": "video", "learning_objectives": [], "active": true}]}`,
			wantErr: "duplicate lesson id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.LoadPack(strings.NewReader(tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
