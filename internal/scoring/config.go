package scoring

import (
	"errors"
	"fmt"
	"math"

	"github.com/vytor/brainboost/internal/models"
)

// Weights blends the three component scores into the composite score.
type Weights struct {
	Percentage  float64
	Speed       float64
	Consistency float64
}

// Thresholds are the minimum percentage scores for the two upper categories.
type Thresholds struct {
	Innovator float64
	Explorer  float64
}

// RewardTier is a mutually exclusive performance bonus; the highest matching tier wins.
type RewardTier struct {
	MinPercentage float64
	XP            int
	Badge         string
}

// ExpectedTimes maps age group and difficulty to an expected response time in milliseconds.
type ExpectedTimes map[models.AgeGroup]map[models.Difficulty]int64

type SkillConfig struct {
	StrengthMin         float64
	OpportunityBelow    float64
	MaxStrengths        int
	MaxOpportunities    int
	HighPriorityBelow   float64
	MediumPriorityBelow float64
	LessonsPerSkill     int
}

type RewardConfig struct {
	XPPerCorrect     int
	Tiers            []RewardTier // ordered from highest MinPercentage down
	FirstQuizBadge   string
	SpeedBadge       string
	SpeedBadgeMeanMs float64
	SpeedXP          int
	MasteryMinScore  int
	MasteryXP        int
	// MaxXP caps the total xp of a single submission; 0 leaves it unbounded.
	MaxXP int
}

type Config struct {
	Thresholds      Thresholds
	Weights         Weights
	ExpectedTimes   ExpectedTimes
	DefaultAgeGroup models.AgeGroup
	// SpeedFloor is the fraction of the expected time below which faster answers earn nothing extra.
	SpeedFloor    float64
	MaxSpeedRatio float64
	Skills        SkillConfig
	Rewards       RewardConfig
}

func DefaultConfig() Config {
	return Config{
		Thresholds: Thresholds{Innovator: 80, Explorer: 50},
		Weights:    Weights{Percentage: 0.7, Speed: 0.2, Consistency: 0.1},
		ExpectedTimes: ExpectedTimes{
			models.AgeGroup5to10: {
				models.DifficultyEasy:   15000,
				models.DifficultyMedium: 25000,
				models.DifficultyHard:   35000,
			},
			models.AgeGroup10to15: {
				models.DifficultyEasy:   12000,
				models.DifficultyMedium: 20000,
				models.DifficultyHard:   30000,
			},
			models.AgeGroup15to18: {
				models.DifficultyEasy:   10000,
				models.DifficultyMedium: 18000,
				models.DifficultyHard:   25000,
			},
		},
		DefaultAgeGroup: models.AgeGroup10to15,
		SpeedFloor:      0.3,
		MaxSpeedRatio:   2,
		Skills: SkillConfig{
			StrengthMin:         70,
			OpportunityBelow:    60,
			MaxStrengths:        3,
			MaxOpportunities:    3,
			HighPriorityBelow:   30,
			MediumPriorityBelow: 50,
			LessonsPerSkill:     3,
		},
		Rewards: RewardConfig{
			XPPerCorrect: 10,
			Tiers: []RewardTier{
				{MinPercentage: 90, XP: 100, Badge: "Perfectionist"},
				{MinPercentage: 80, XP: 50, Badge: "High Achiever"},
				{MinPercentage: 60, XP: 25, Badge: "Steady Learner"},
			},
			FirstQuizBadge:   "Quiz Starter",
			SpeedBadge:       "Speed Demon",
			SpeedBadgeMeanMs: 10000,
			SpeedXP:          30,
			MasteryMinScore:  90,
			MasteryXP:        20,
		},
	}
}

// Validate reports every inconsistency in the configuration.
func (c Config) Validate() error {
	var errs []error

	w := c.Weights
	if w.Percentage < 0 || w.Speed < 0 || w.Consistency < 0 {
		errs = append(errs, errors.New("weights must not be negative"))
	}
	if sum := w.Percentage + w.Speed + w.Consistency; math.Abs(sum-1) > 1e-6 {
		errs = append(errs, fmt.Errorf("weights must sum to 1, got %.4f", sum))
	}
	if c.Thresholds.Explorer < 0 || c.Thresholds.Innovator > 100 {
		errs = append(errs, errors.New("category thresholds must be within 0..100"))
	}
	if c.Thresholds.Explorer >= c.Thresholds.Innovator {
		errs = append(errs, fmt.Errorf("explorer threshold %.2f must be below innovator threshold %.2f",
			c.Thresholds.Explorer, c.Thresholds.Innovator))
	}
	if _, ok := c.ExpectedTimes[c.DefaultAgeGroup]; !ok {
		errs = append(errs, fmt.Errorf("no expected response times for default age group %q", c.DefaultAgeGroup))
	}
	if c.SpeedFloor <= 0 || c.SpeedFloor > 1 {
		errs = append(errs, errors.New("speed floor must be within (0, 1]"))
	}
	if c.MaxSpeedRatio <= 0 {
		errs = append(errs, errors.New("max speed ratio must be positive"))
	}
	for i := 1; i < len(c.Rewards.Tiers); i++ {
		if c.Rewards.Tiers[i].MinPercentage >= c.Rewards.Tiers[i-1].MinPercentage {
			errs = append(errs, errors.New("reward tiers must be ordered by descending percentage"))
			break
		}
	}
	if c.Rewards.MaxXP < 0 {
		errs = append(errs, errors.New("max xp must not be negative"))
	}

	return errors.Join(errs...)
}

func (c Config) expectedTime(group models.AgeGroup, d models.Difficulty) (int64, bool) {
	table, ok := c.ExpectedTimes[group]
	if !ok {
		table, ok = c.ExpectedTimes[c.DefaultAgeGroup]
		if !ok {
			return 0, false
		}
	}
	ms, ok := table[d]
	if !ok || ms <= 0 {
		return 0, false
	}
	return ms, true
}
