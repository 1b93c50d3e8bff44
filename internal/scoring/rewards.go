package scoring

import (
	"fmt"

	"github.com/vytor/brainboost/internal/models"
)

// Rewards computes xp, badges and achievements for a scored submission.
// Bonuses stack on top of the base xp; RewardConfig.MaxXP caps the total when set.
func Rewards(cfg RewardConfig, basic Basic, category models.Category, answers []models.Answer, strengths []models.Strength) models.GamificationRewards {
	xp := basic.RawScore * cfg.XPPerCorrect
	badges := []string{}
	achievements := []string{}

	for _, tier := range cfg.Tiers {
		if basic.PercentageScore >= tier.MinPercentage {
			xp += tier.XP
			badges = append(badges, tier.Badge)
			break
		}
	}

	badges = append(badges, fmt.Sprintf("%s Level 1", category))
	if cfg.FirstQuizBadge != "" {
		badges = append(badges, cfg.FirstQuizBadge)
	}

	if mean, ok := meanResponseTime(answers); ok && mean < cfg.SpeedBadgeMeanMs {
		badges = append(badges, cfg.SpeedBadge)
		xp += cfg.SpeedXP
	}

	for _, s := range strengths {
		if s.Score >= cfg.MasteryMinScore {
			achievements = append(achievements, fmt.Sprintf("%s Master", s.SkillTag))
			xp += cfg.MasteryXP
		}
	}

	if cfg.MaxXP > 0 && xp > cfg.MaxXP {
		xp = cfg.MaxXP
	}

	return models.GamificationRewards{
		XP:           xp,
		Badges:       badges,
		Achievements: achievements,
		Streaks:      map[string]int{"daily": 1, "weekly": 1},
	}
}
