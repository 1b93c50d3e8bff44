package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/vytor/brainboost/internal/scoring"
)

type Config struct {
	Addr     string
	DBPath   string
	LogLevel string
	// ContentPath points at a JSON content pack; empty uses the bundled pack.
	ContentPath string

	AttemptWorkerCount int
	AttemptQueueSize   int

	InnovatorThreshold float64
	ExplorerThreshold  float64
	WeightPercentage   float64
	WeightSpeed        float64
	WeightConsistency  float64
	// MaxXPPerSubmission caps the xp of one submission; 0 disables the cap.
	MaxXPPerSubmission int

	CertificateValidityDays int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                    envOr("ADDR", ":8080"),
		DBPath:                  envOr("DB_PATH", "file:brainboost.db"),
		LogLevel:                envOr("LOG_LEVEL", "INFO"),
		ContentPath:             envOr("CONTENT_PATH", ""),
		AttemptWorkerCount:      envIntOr("ATTEMPT_WORKER_COUNT", 2),
		AttemptQueueSize:        envIntOr("ATTEMPT_QUEUE_SIZE", 64),
		InnovatorThreshold:      envFloatOr("CATEGORY_INNOVATOR_THRESHOLD", 80),
		ExplorerThreshold:       envFloatOr("CATEGORY_EXPLORER_THRESHOLD", 50),
		WeightPercentage:        envFloatOr("WEIGHT_PERCENTAGE", 0.7),
		WeightSpeed:             envFloatOr("WEIGHT_SPEED", 0.2),
		WeightConsistency:       envFloatOr("WEIGHT_CONSISTENCY", 0.1),
		MaxXPPerSubmission:      envIntOr("MAX_XP_PER_SUBMISSION", 0),
		CertificateValidityDays: envIntOr("CERTIFICATE_VALIDITY_DAYS", 365),
	}
}

// Scoring overlays the tunable values onto the default scoring configuration.
func (c Config) Scoring() scoring.Config {
	sc := scoring.DefaultConfig()
	sc.Thresholds = scoring.Thresholds{Innovator: c.InnovatorThreshold, Explorer: c.ExplorerThreshold}
	sc.Weights = scoring.Weights{
		Percentage:  c.WeightPercentage,
		Speed:       c.WeightSpeed,
		Consistency: c.WeightConsistency,
	}
	sc.Rewards.MaxXP = c.MaxXPPerSubmission
	return sc
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	if c.Addr == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("DB_PATH cannot be empty"))
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR, got %q", c.LogLevel))
	}
	if c.ContentPath != "" {
		if _, err := os.Stat(c.ContentPath); err != nil {
			errs = append(errs, fmt.Errorf("CONTENT_PATH: %w", err))
		}
	}
	if c.AttemptWorkerCount < 1 {
		errs = append(errs, fmt.Errorf("ATTEMPT_WORKER_COUNT must be at least 1, got %d", c.AttemptWorkerCount))
	}
	if c.AttemptQueueSize < 1 {
		errs = append(errs, fmt.Errorf("ATTEMPT_QUEUE_SIZE must be at least 1, got %d", c.AttemptQueueSize))
	}
	if c.MaxXPPerSubmission < 0 {
		errs = append(errs, fmt.Errorf("MAX_XP_PER_SUBMISSION must not be negative, got %d", c.MaxXPPerSubmission))
	}
	if c.CertificateValidityDays < 1 {
		errs = append(errs, fmt.Errorf("CERTIFICATE_VALIDITY_DAYS must be at least 1, got %d", c.CertificateValidityDays))
	}
	if err := c.Scoring().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("scoring (CATEGORY_*_THRESHOLD, WEIGHT_*): %w", err))
	}

	return errors.Join(errs...)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envFloatOr(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("invalid value for %s=%q, using default %g", key, v, def)
	}
	return def
}
