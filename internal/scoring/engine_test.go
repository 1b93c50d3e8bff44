package scoring_test

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/brainboost/internal/models"
	"github.com/vytor/brainboost/internal/scoring"
)

func question(id string, d models.Difficulty, tags ...string) models.Question {
	return models.Question{
		ID:                 id,
		AgeGroup:           models.AgeGroup10to15,
		Topic:              "math",
		Text:               "Question " + id,
		Options:            []models.QuestionOption{{ID: "a", Text: "A"}, {ID: "b", Text: "B"}},
		CorrectOptionID:    "a",
		Explanation:        "Because a.",
		CognitiveSkillTags: tags,
		Difficulty:         d,
		Active:             true,
	}
}

func submission(answers ...models.Answer) models.QuizSubmission {
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return models.QuizSubmission{
		UserID:     "user-1",
		Answers:    answers,
		StartedAt:  start,
		FinishedAt: start.Add(5 * time.Minute),
		Mode:       models.ModeDiagnostic,
	}
}

func TestScore_SevenOfTenAtExpectedTime(t *testing.T) {
	var questions []models.Question
	var answers []models.Answer
	for i := 0; i < 10; i++ {
		id := fmt.Sprintf("q%d", i)
		questions = append(questions, question(id, models.DifficultyMedium, "numerical-reasoning"))
		selected := "a"
		if i >= 7 {
			selected = "b"
		}
		answers = append(answers, models.Answer{QuestionID: id, SelectedOptionID: selected, ResponseTimeMs: 20000})
	}

	engine := scoring.New(scoring.DefaultConfig())
	res := engine.Score(submission(answers...), questions)

	assert.Equal(t, 7, res.Scores.RawScore)
	assert.Equal(t, 10, res.Scores.TotalQuestions)
	assert.Equal(t, 70.0, res.Scores.PercentageScore)
	assert.InDelta(t, 50.0, res.Scores.SpeedScore, 1e-9)
	assert.Equal(t, 100.0, res.Scores.ConsistencyScore)
	assert.Equal(t, 69.0, res.Scores.CompositeScore)
	assert.Equal(t, models.CategoryExplorer, res.Scores.Category)
	assert.Contains(t, res.Rewards.Badges, "Steady Learner")
	assert.Equal(t, 95, res.Rewards.XP, "70 base + 25 performance bonus")
	assert.Empty(t, res.UnmatchedQuestionIDs)

	require.Len(t, res.Strengths, 1)
	assert.Equal(t, "numerical-reasoning", res.Strengths[0].SkillTag)
	assert.Equal(t, 70, res.Strengths[0].Score)
	assert.Empty(t, res.Opportunities)
}

func TestScore_EmptySubmission(t *testing.T) {
	engine := scoring.New(scoring.DefaultConfig())

	var res scoring.Result
	require.NotPanics(t, func() {
		res = engine.Score(submission(), nil)
	})

	assert.Equal(t, 0.0, res.Scores.PercentageScore)
	assert.Equal(t, 0, res.Scores.TotalQuestions)
	assert.Equal(t, 50.0, res.Scores.SpeedScore)
	assert.Equal(t, 100.0, res.Scores.ConsistencyScore)
	assert.Equal(t, 20.0, res.Scores.CompositeScore)
	assert.Equal(t, models.CategoryBuilder, res.Scores.Category)
	assert.Equal(t, 0, res.Rewards.XP)
	assert.Equal(t, []string{"Builder Level 1", "Quiz Starter"}, res.Rewards.Badges)
	assert.Empty(t, res.Strengths)
	assert.Empty(t, res.Opportunities)
	assert.Empty(t, res.QuestionBreakdown)
}

func TestScore_MissingQuestionCountsAsIncorrect(t *testing.T) {
	questions := []models.Question{question("q1", models.DifficultyEasy, "logical-thinking")}
	sub := submission(
		models.Answer{QuestionID: "q1", SelectedOptionID: "a", ResponseTimeMs: 12000},
		models.Answer{QuestionID: "ghost", SelectedOptionID: "a", ResponseTimeMs: 12000},
	)

	res := scoring.New(scoring.DefaultConfig()).Score(sub, questions)

	assert.Equal(t, 1, res.Scores.RawScore)
	assert.Equal(t, 2, res.Scores.TotalQuestions)
	assert.Equal(t, 50.0, res.Scores.PercentageScore)
	assert.Equal(t, []string{"ghost"}, res.UnmatchedQuestionIDs)
	// speed only considers the resolvable answer
	assert.InDelta(t, 50.0, res.Scores.SpeedScore, 1e-9)

	require.Len(t, res.QuestionBreakdown, 2)
	assert.Equal(t, "Question not found", res.QuestionBreakdown[1].QuestionText)
	assert.False(t, res.QuestionBreakdown[1].IsCorrect)
	assert.True(t, res.QuestionBreakdown[0].IsCorrect)
}

func TestScore_Idempotent(t *testing.T) {
	questions := []models.Question{
		question("q1", models.DifficultyEasy, "pattern-recognition"),
		question("q2", models.DifficultyHard, "pattern-recognition", "logical-thinking"),
		question("q3", models.DifficultyMedium, "numerical-reasoning"),
	}
	sub := submission(
		models.Answer{QuestionID: "q1", SelectedOptionID: "a", ResponseTimeMs: 4000},
		models.Answer{QuestionID: "q2", SelectedOptionID: "b", ResponseTimeMs: 31000},
		models.Answer{QuestionID: "q3", SelectedOptionID: "b", ResponseTimeMs: 9000},
	)
	engine := scoring.New(scoring.DefaultConfig())

	first := engine.Score(sub, questions)
	second := engine.Score(sub, questions)

	a, err := json.Marshal(first.Scores)
	require.NoError(t, err)
	b, err := json.Marshal(second.Scores)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
	assert.Equal(t, first, second)
}

func TestScore_UsesLessonIndex(t *testing.T) {
	questions := []models.Question{question("q1", models.DifficultyEasy, "spatial-awareness")}
	sub := submission(models.Answer{QuestionID: "q1", SelectedOptionID: "b", ResponseTimeMs: 8000})

	idx := fakeIndex{"spatial-awareness": {"L-SPACE-1", "L-SPACE-2"}}
	res := scoring.New(scoring.DefaultConfig(), scoring.WithLessonIndex(idx)).Score(sub, questions)

	require.Len(t, res.Opportunities, 1)
	assert.Equal(t, []string{"L-SPACE-1", "L-SPACE-2"}, res.Opportunities[0].RecommendedLessonIDs)
	assert.Equal(t, models.PriorityHigh, res.Opportunities[0].Priority)
}

func TestScore_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tags := []string{"pattern-recognition", "numerical-reasoning", "logical-thinking", "memory-recall", "empathy"}
	difficulties := models.Difficulties

	var questions []models.Question
	for i := 0; i < 30; i++ {
		questions = append(questions, question(fmt.Sprintf("q%d", i), difficulties[i%3], tags[i%5], tags[(i+2)%5]))
	}
	engine := scoring.New(scoring.DefaultConfig())

	for run := 0; run < 200; run++ {
		n := rng.Intn(25)
		answers := make([]models.Answer, n)
		for i := range answers {
			selected := "a"
			if rng.Intn(2) == 0 {
				selected = "b"
			}
			answers[i] = models.Answer{
				QuestionID:       fmt.Sprintf("q%d", rng.Intn(35)),
				SelectedOptionID: selected,
				ResponseTimeMs:   int64(rng.Intn(60000)),
			}
		}

		res := engine.Score(submission(answers...), questions)
		s := res.Scores

		assert.GreaterOrEqual(t, s.PercentageScore, 0.0)
		assert.LessOrEqual(t, s.PercentageScore, 100.0)
		assert.LessOrEqual(t, s.RawScore, s.TotalQuestions)
		assert.GreaterOrEqual(t, s.SpeedScore, 0.0)
		assert.LessOrEqual(t, s.SpeedScore, 100.0)
		assert.GreaterOrEqual(t, s.ConsistencyScore, 0.0)
		assert.LessOrEqual(t, s.ConsistencyScore, 100.0)
		assert.Equal(t, scoring.Categorize(scoring.DefaultConfig().Thresholds, s.PercentageScore), s.Category)

		assert.LessOrEqual(t, len(res.Strengths), 3)
		assert.LessOrEqual(t, len(res.Opportunities), 3)
		strong := map[string]bool{}
		for _, st := range res.Strengths {
			strong[st.SkillTag] = true
		}
		for _, op := range res.Opportunities {
			assert.False(t, strong[op.SkillTag], "skill %s is both strength and opportunity", op.SkillTag)
		}
	}
}

type fakeIndex map[string][]string

func (f fakeIndex) LessonsForSkill(tag string, limit int) []string {
	ids := f[tag]
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids
}
