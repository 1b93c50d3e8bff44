package scoring

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/vytor/brainboost/internal/models"
)

const (
	defaultSpeedScore       = 50.0
	defaultConsistencyScore = 100.0
)

// Basic holds the raw correctness counts of a submission.
type Basic struct {
	RawScore        int
	TotalQuestions  int
	PercentageScore float64
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func isCorrect(a models.Answer, q models.Question) bool {
	return a.SelectedOptionID == q.CorrectOptionID
}

// BasicScore counts correct answers. Answers whose question is missing count as incorrect.
func BasicScore(answers []models.Answer, questions map[string]models.Question) Basic {
	b := Basic{TotalQuestions: len(answers)}
	for _, a := range answers {
		if q, ok := questions[a.QuestionID]; ok && isCorrect(a, q) {
			b.RawScore++
		}
	}
	if b.TotalQuestions > 0 {
		b.PercentageScore = round2(float64(b.RawScore) / float64(b.TotalQuestions) * 100)
	}
	return b
}

// SpeedScore averages a per-answer speed score over answers with a known question
// and expected time. Returns 50 when no answer qualifies.
func SpeedScore(cfg Config, answers []models.Answer, questions map[string]models.Question) float64 {
	var total float64
	valid := 0
	for _, a := range answers {
		q, ok := questions[a.QuestionID]
		if !ok {
			continue
		}
		expected, ok := cfg.expectedTime(q.AgeGroup, q.Difficulty)
		if !ok {
			continue
		}
		exp := float64(expected)
		ratio := exp / math.Max(float64(a.ResponseTimeMs), exp*cfg.SpeedFloor)
		ratio = math.Max(0, math.Min(ratio, cfg.MaxSpeedRatio))
		total += math.Min(100, ratio*50)
		valid++
	}
	if valid == 0 {
		return defaultSpeedScore
	}
	return total / float64(valid)
}

// ConsistencyScore maps the coefficient of variation of response times onto 0..100.
// Fewer than two answers, or a zero mean, yields 100.
func ConsistencyScore(answers []models.Answer) float64 {
	if len(answers) < 2 {
		return defaultConsistencyScore
	}
	times := make(stats.Float64Data, len(answers))
	for i, a := range answers {
		times[i] = float64(a.ResponseTimeMs)
	}
	mean, err := stats.Mean(times)
	if err != nil || mean == 0 {
		return defaultConsistencyScore
	}
	sd, err := stats.StandardDeviationPopulation(times)
	if err != nil {
		return defaultConsistencyScore
	}
	cv := sd / mean
	return math.Max(0, math.Min(100, 100-cv*100))
}

func CompositeScore(w Weights, percentage, speed, consistency float64) float64 {
	return round2(percentage*w.Percentage + speed*w.Speed + consistency*w.Consistency)
}

// Categorize classifies a learner on percent correct alone.
func Categorize(t Thresholds, percentage float64) models.Category {
	switch {
	case percentage >= t.Innovator:
		return models.CategoryInnovator
	case percentage >= t.Explorer:
		return models.CategoryExplorer
	default:
		return models.CategoryBuilder
	}
}

func meanResponseTime(answers []models.Answer) (float64, bool) {
	if len(answers) == 0 {
		return 0, false
	}
	var sum float64
	for _, a := range answers {
		sum += float64(a.ResponseTimeMs)
	}
	return sum / float64(len(answers)), true
}
