package recommend

import (
	"errors"
	"fmt"

	"github.com/vytor/brainboost/internal/models"
)

type Config struct {
	// IdealDuration is the lesson length in minutes that scores best per age group.
	IdealDuration map[models.AgeGroup]int
	// FormatPreferences is the format affinity per age group.
	FormatPreferences  map[models.AgeGroup]map[models.LessonFormat]float64
	DefaultFormatScore float64
	DefaultAgeGroup    models.AgeGroup

	RelevanceWeight        float64
	DurationMaxScore       float64
	DifficultyMaxScore     float64
	DifficultyStepPenalty  float64
	NeutralDifficultyScore float64
	ObjectivePoints        float64
	ObjectiveMaxScore      float64

	HighPriorityMin  float64
	LowPriorityBelow float64

	DefaultMaxResults int
	// CategoryDifficulty picks the lesson difficulty for opportunity-driven recommendations.
	CategoryDifficulty    map[models.Category]models.Difficulty
	DefaultSequenceLength int
	// MaxSequenceLength bounds the slots Sequence will fill.
	MaxSequenceLength int
	// LessonsPerDifficulty is how many sequence slots pass before difficulty steps up.
	LessonsPerDifficulty int
}

func DefaultConfig() Config {
	return Config{
		IdealDuration: map[models.AgeGroup]int{
			models.AgeGroup5to10:  15,
			models.AgeGroup10to15: 20,
			models.AgeGroup15to18: 25,
		},
		FormatPreferences: map[models.AgeGroup]map[models.LessonFormat]float64{
			models.AgeGroup5to10: {
				models.FormatGame:        20,
				models.FormatInteractive: 18,
				models.FormatVideo:       15,
				models.FormatText:        5,
			},
			models.AgeGroup10to15: {
				models.FormatInteractive: 20,
				models.FormatGame:        18,
				models.FormatVideo:       15,
				models.FormatText:        10,
			},
			models.AgeGroup15to18: {
				models.FormatInteractive: 18,
				models.FormatVideo:       17,
				models.FormatText:        15,
				models.FormatGame:        12,
			},
		},
		DefaultFormatScore: 10,
		DefaultAgeGroup:    models.AgeGroup10to15,

		RelevanceWeight:        40,
		DurationMaxScore:       20,
		DifficultyMaxScore:     20,
		DifficultyStepPenalty:  10,
		NeutralDifficultyScore: 15,
		ObjectivePoints:        2,
		ObjectiveMaxScore:      10,

		HighPriorityMin:  80,
		LowPriorityBelow: 50,

		DefaultMaxResults: 8,
		CategoryDifficulty: map[models.Category]models.Difficulty{
			models.CategoryBuilder:   models.DifficultyEasy,
			models.CategoryExplorer:  models.DifficultyMedium,
			models.CategoryInnovator: models.DifficultyHard,
		},
		DefaultSequenceLength: 5,
		MaxSequenceLength:     50,
		LessonsPerDifficulty:  2,
	}
}

func (c Config) Validate() error {
	var errs []error
	if _, ok := c.IdealDuration[c.DefaultAgeGroup]; !ok {
		errs = append(errs, fmt.Errorf("no ideal duration for default age group %q", c.DefaultAgeGroup))
	}
	if c.LowPriorityBelow > c.HighPriorityMin {
		errs = append(errs, errors.New("low priority bound must not exceed high priority bound"))
	}
	if c.DefaultMaxResults <= 0 {
		errs = append(errs, errors.New("default max results must be positive"))
	}
	if c.DefaultSequenceLength <= 0 {
		errs = append(errs, errors.New("default sequence length must be positive"))
	}
	if c.MaxSequenceLength < c.DefaultSequenceLength {
		errs = append(errs, errors.New("max sequence length must not be below the default"))
	}
	if c.LessonsPerDifficulty <= 0 {
		errs = append(errs, errors.New("lessons per difficulty must be positive"))
	}
	return errors.Join(errs...)
}

func (c Config) ageGroup(g models.AgeGroup) models.AgeGroup {
	if _, ok := c.IdealDuration[g]; ok {
		return g
	}
	return c.DefaultAgeGroup
}

func (c Config) formatScore(g models.AgeGroup, f models.LessonFormat) float64 {
	if score, ok := c.FormatPreferences[c.ageGroup(g)][f]; ok {
		return score
	}
	return c.DefaultFormatScore
}

func (c Config) priority(score float64) models.Priority {
	switch {
	case score >= c.HighPriorityMin:
		return models.PriorityHigh
	case score < c.LowPriorityBelow:
		return models.PriorityLow
	default:
		return models.PriorityMedium
	}
}
