package models

import "time"

type CertificateType string

const (
	CertificateCompletion  CertificateType = "completion"
	CertificateAchievement CertificateType = "achievement"
	CertificateMastery     CertificateType = "mastery"
)

type Certificate struct {
	Eligible      bool            `json:"eligible"`
	Type          CertificateType `json:"type,omitempty"`
	Criteria      string          `json:"criteria,omitempty"`
	CertificateID string          `json:"certificate_id,omitempty"`
	ValidUntil    *time.Time      `json:"valid_until,omitempty"`
}

type UserSummary struct {
	Name     string   `json:"name"`
	Age      int      `json:"age"`
	AgeGroup AgeGroup `json:"age_group"`
	Avatar   string   `json:"avatar"`
}

// VisualAssets holds animation references resolved by category.
type VisualAssets struct {
	Confetti          string `json:"confetti"`
	BrainGauge        string `json:"brain_gauge"`
	CategoryAnimation string `json:"category_animation"`
}

// Report is produced once per submission and never modified afterwards.
type Report struct {
	ID                  string              `json:"id"`
	UserID              string              `json:"user_id"`
	UserSummary         UserSummary         `json:"user_summary"`
	Scores              ScoreBreakdown      `json:"scores"`
	Strengths           []Strength          `json:"strengths"`
	Opportunities       []Opportunity       `json:"opportunities"`
	QuestionBreakdown   []QuestionBreakdown `json:"question_breakdown"`
	GamificationRewards GamificationRewards `json:"gamification_rewards"`
	LessonPlan          []Lesson            `json:"lesson_plan"`
	Certificate         Certificate         `json:"certificate"`
	VisualAssets        VisualAssets        `json:"visual_assets"`
	GeneratedAt         time.Time           `json:"generated_at"`
}

type ReportFilter struct {
	UserID string
	Limit  int
	Offset int
}
