package report_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/brainboost/internal/models"
	"github.com/vytor/brainboost/internal/report"
)

func TestCertificate_Tiers(t *testing.T) {
	cfg := report.DefaultConfig()
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		pct      float64
		eligible bool
		certType models.CertificateType
	}{
		{100, true, models.CertificateMastery},
		{90, true, models.CertificateMastery},
		{89.99, true, models.CertificateAchievement},
		{80, true, models.CertificateAchievement},
		{79.99, true, models.CertificateCompletion},
		{60, true, models.CertificateCompletion},
		{59.99, false, ""},
		{0, false, ""},
	}

	for _, tt := range tests {
		c := report.Certificate(cfg, tt.pct, profile(), issued)
		assert.Equal(t, tt.eligible, c.Eligible, "pct %.2f", tt.pct)
		assert.Equal(t, tt.certType, c.Type, "pct %.2f", tt.pct)
		if tt.eligible {
			require.NotNil(t, c.ValidUntil)
			assert.Equal(t, time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC), *c.ValidUntil)
			assert.NotEmpty(t, c.Criteria)
		}
	}
}

func TestCertificateID(t *testing.T) {
	issued := time.UnixMilli(1704067200000)

	tests := []struct {
		name    string
		profile models.UserProfile
		want    string
	}{
		{"plain name", models.UserProfile{Name: "Aarav"}, "CERT_COMPLETION_aarav_1704067200000"},
		{"punctuation and spaces", models.UserProfile{Name: "Mary-Jane O'Neil 2"}, "CERT_COMPLETION_maryjaneoneil2_1704067200000"},
		{"non ascii dropped", models.UserProfile{Name: "Zoë"}, "CERT_COMPLETION_zo_1704067200000"},
		{"falls back to user id", models.UserProfile{UserID: "U-42"}, "CERT_COMPLETION_u42_1704067200000"},
		{"nothing usable", models.UserProfile{Name: "!!!"}, "CERT_COMPLETION_learner_1704067200000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, report.CertificateID(models.CertificateCompletion, tt.profile, issued))
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, report.DefaultConfig().Validate())

	cfg := report.DefaultConfig()
	cfg.CertificateValidityDays = 0
	cfg.Tiers = append(cfg.Tiers, report.CertificateTier{MinPercentage: 95})
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validity")
	assert.Contains(t, err.Error(), "descending")
}
