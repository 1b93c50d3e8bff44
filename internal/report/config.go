package report

import (
	"errors"
	"time"

	"github.com/vytor/brainboost/internal/models"
)

// CertificateTier grants a certificate type at or above MinPercentage.
type CertificateTier struct {
	MinPercentage float64
	Type          models.CertificateType
	Criteria      string
}

type Assets struct {
	Confetti           string
	BrainGauge         string
	CategoryAnimations map[models.Category]string
}

type Config struct {
	// Tiers are checked in order; the first match wins.
	Tiers                   []CertificateTier
	CertificateValidityDays int
	Assets                  Assets
	RecommendationCount     int
	Now                     func() time.Time
}

func DefaultConfig() Config {
	return Config{
		Tiers: []CertificateTier{
			{MinPercentage: 90, Type: models.CertificateMastery, Criteria: "Achieved 90%+ mastery level"},
			{MinPercentage: 80, Type: models.CertificateAchievement, Criteria: "Achieved 80%+ achievement level"},
			{MinPercentage: 60, Type: models.CertificateCompletion, Criteria: "Successfully completed assessment"},
		},
		CertificateValidityDays: 365,
		Assets: Assets{
			Confetti:   "https://assets9.lottiefiles.com/packages/lf20_obhph3sh.json",
			BrainGauge: "https://assets9.lottiefiles.com/packages/lf20_dmw2lkzr.json",
			CategoryAnimations: map[models.Category]string{
				models.CategoryBuilder:   "https://assets9.lottiefiles.com/packages/lf20_builder.json",
				models.CategoryExplorer:  "https://assets9.lottiefiles.com/packages/lf20_explorer.json",
				models.CategoryInnovator: "https://assets9.lottiefiles.com/packages/lf20_innovator.json",
			},
		},
		RecommendationCount: 8,
		Now:                 time.Now,
	}
}

func (c Config) Validate() error {
	var errs []error
	if c.CertificateValidityDays <= 0 {
		errs = append(errs, errors.New("certificate validity must be at least one day"))
	}
	if c.RecommendationCount <= 0 {
		errs = append(errs, errors.New("recommendation count must be positive"))
	}
	for i := 1; i < len(c.Tiers); i++ {
		if c.Tiers[i].MinPercentage >= c.Tiers[i-1].MinPercentage {
			errs = append(errs, errors.New("certificate tiers must be ordered by descending percentage"))
			break
		}
	}
	return errors.Join(errs...)
}
