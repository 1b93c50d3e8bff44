// Package scoring turns a quiz submission into scores, a skill-gap analysis and
// gamification rewards. Every function is pure: identical inputs give identical output.
package scoring

import (
	"github.com/vytor/brainboost/internal/models"
)

// Result is everything the engine derives from one submission.
type Result struct {
	Scores            models.ScoreBreakdown      `json:"scores"`
	Strengths         []models.Strength          `json:"strengths"`
	Opportunities     []models.Opportunity       `json:"opportunities"`
	QuestionBreakdown []models.QuestionBreakdown `json:"question_breakdown"`
	Rewards           models.GamificationRewards `json:"gamification_rewards"`
	// UnmatchedQuestionIDs lists answers that referenced unknown questions.
	UnmatchedQuestionIDs []string `json:"unmatched_question_ids,omitempty"`
}

type Engine struct {
	cfg   Config
	index LessonIndex
}

type Option func(*Engine)

// WithLessonIndex resolves opportunity lessons against a real catalog.
func WithLessonIndex(idx LessonIndex) Option {
	return func(e *Engine) {
		e.index = idx
	}
}

func New(cfg Config, opts ...Option) *Engine {
	e := &Engine{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Config() Config {
	return e.cfg
}

// Score never fails: missing questions count as incorrect and degenerate inputs
// fall back to fixed defaults.
func (e *Engine) Score(sub models.QuizSubmission, questions []models.Question) Result {
	byID := make(map[string]models.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	basic := BasicScore(sub.Answers, byID)
	speed := SpeedScore(e.cfg, sub.Answers, byID)
	consistency := ConsistencyScore(sub.Answers)
	category := Categorize(e.cfg.Thresholds, basic.PercentageScore)

	strengths, opportunities := AnalyzeSkills(e.cfg.Skills, SkillScores(sub.Answers, byID), e.index)

	return Result{
		Scores: models.ScoreBreakdown{
			RawScore:         basic.RawScore,
			TotalQuestions:   basic.TotalQuestions,
			PercentageScore:  basic.PercentageScore,
			SpeedScore:       speed,
			ConsistencyScore: consistency,
			CompositeScore:   CompositeScore(e.cfg.Weights, basic.PercentageScore, speed, consistency),
			Category:         category,
		},
		Strengths:            strengths,
		Opportunities:        opportunities,
		QuestionBreakdown:    Breakdown(sub.Answers, byID),
		Rewards:              Rewards(e.cfg.Rewards, basic, category, sub.Answers, strengths),
		UnmatchedQuestionIDs: unmatched(sub.Answers, byID),
	}
}

// Breakdown builds the per-answer view in submission order.
func Breakdown(answers []models.Answer, questions map[string]models.Question) []models.QuestionBreakdown {
	out := make([]models.QuestionBreakdown, 0, len(answers))
	for _, a := range answers {
		qb := models.QuestionBreakdown{
			QuestionID:         a.QuestionID,
			QuestionText:       "Question not found",
			SelectedOptionID:   a.SelectedOptionID,
			TimeSpentMs:        a.ResponseTimeMs,
			CognitiveSkillTags: []string{},
		}
		if q, ok := questions[a.QuestionID]; ok {
			qb.QuestionText = q.Text
			qb.CorrectOptionID = q.CorrectOptionID
			qb.IsCorrect = isCorrect(a, q)
			qb.Explanation = q.Explanation
			qb.CognitiveSkillTags = append(qb.CognitiveSkillTags, q.CognitiveSkillTags...)
		}
		out = append(out, qb)
	}
	return out
}

func unmatched(answers []models.Answer, questions map[string]models.Question) []string {
	var ids []string
	for _, a := range answers {
		if _, ok := questions[a.QuestionID]; !ok {
			ids = append(ids, a.QuestionID)
		}
	}
	return ids
}
