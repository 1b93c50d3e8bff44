package report

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/vytor/brainboost/internal/models"
)

// Certificate decides eligibility from percent correct. Ineligible results
// carry no type, ID or expiry.
func Certificate(cfg Config, pct float64, profile models.UserProfile, issued time.Time) models.Certificate {
	for _, tier := range cfg.Tiers {
		if pct < tier.MinPercentage {
			continue
		}
		validUntil := issued.AddDate(0, 0, cfg.CertificateValidityDays)
		return models.Certificate{
			Eligible:      true,
			Type:          tier.Type,
			Criteria:      tier.Criteria,
			CertificateID: CertificateID(tier.Type, profile, issued),
			ValidUntil:    &validUntil,
		}
	}
	return models.Certificate{Eligible: false}
}

// CertificateID has the form CERT_<TYPE>_<name>_<unix millis>, where name is the
// learner's name lowercased with everything but letters and digits removed.
func CertificateID(t models.CertificateType, profile models.UserProfile, issued time.Time) string {
	return fmt.Sprintf("CERT_%s_%s_%d", strings.ToUpper(string(t)), normalizeName(profile), issued.UnixMilli())
}

func normalizeName(p models.UserProfile) string {
	name := p.Name
	if name == "" {
		name = p.UserID
	}
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "learner"
	}
	return b.String()
}
