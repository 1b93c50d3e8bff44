package models

import "time"

type QuestionOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type Question struct {
	ID                 string           `json:"id"`
	AgeGroup           AgeGroup         `json:"age_group"`
	Topic              string           `json:"topic"`
	Text               string           `json:"text"`
	Options            []QuestionOption `json:"options"`
	CorrectOptionID    string           `json:"correct_option_id"`
	Explanation        string           `json:"explanation"`
	CognitiveSkillTags []string         `json:"cognitive_skill_tags"`
	Difficulty         Difficulty       `json:"difficulty"`
	Active             bool             `json:"active"`
}

type Answer struct {
	QuestionID       string `json:"question_id"`
	SelectedOptionID string `json:"selected_option_id"`
	ResponseTimeMs   int64  `json:"response_time_ms"`
}

type QuizSubmission struct {
	UserID     string    `json:"user_id"`
	QuizID     string    `json:"quiz_id,omitempty"`
	Answers    []Answer  `json:"answers"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Mode       QuizMode  `json:"mode"`
}

// Duration is the wall-clock time between start and finish, never negative.
func (s QuizSubmission) Duration() time.Duration {
	d := s.FinishedAt.Sub(s.StartedAt)
	if d < 0 {
		return 0
	}
	return d
}

type ScoreBreakdown struct {
	RawScore         int      `json:"raw_score"`
	TotalQuestions   int      `json:"total_questions"`
	PercentageScore  float64  `json:"percentage_score"`
	SpeedScore       float64  `json:"speed_score"`
	ConsistencyScore float64  `json:"consistency_score"`
	CompositeScore   float64  `json:"composite_score"`
	Category         Category `json:"category"`
}

// QuestionBreakdown is the per-answer view shown in a report.
type QuestionBreakdown struct {
	QuestionID         string   `json:"question_id"`
	QuestionText       string   `json:"question_text"`
	SelectedOptionID   string   `json:"selected_option_id"`
	CorrectOptionID    string   `json:"correct_option_id"`
	IsCorrect          bool     `json:"is_correct"`
	TimeSpentMs        int64    `json:"time_spent_ms"`
	Explanation        string   `json:"explanation"`
	CognitiveSkillTags []string `json:"cognitive_skill_tags"`
}

type Strength struct {
	SkillTag    string   `json:"skill_tag"`
	Score       int      `json:"score"`
	Description string   `json:"description"`
	Examples    []string `json:"examples"`
}

type Opportunity struct {
	SkillTag             string   `json:"skill_tag"`
	Score                int      `json:"score"`
	Description          string   `json:"description"`
	RecommendedLessonIDs []string `json:"recommended_lesson_ids"`
	Priority             Priority `json:"priority"`
}

type GamificationRewards struct {
	XP           int            `json:"xp"`
	Badges       []string       `json:"badges"`
	Achievements []string       `json:"achievements"`
	Streaks      map[string]int `json:"streaks"`
}

// QuizAttempt is the flattened record stored for every scored submission.
type QuizAttempt struct {
	ID               int64     `json:"id"`
	ReportID         string    `json:"report_id"`
	UserID           string    `json:"user_id"`
	QuizID           string    `json:"quiz_id"`
	Mode             QuizMode  `json:"mode"`
	RawScore         int       `json:"raw_score"`
	TotalQuestions   int       `json:"total_questions"`
	PercentageScore  float64   `json:"percentage_score"`
	CompositeScore   float64   `json:"composite_score"`
	SpeedScore       float64   `json:"speed_score"`
	ConsistencyScore float64   `json:"consistency_score"`
	Category         Category  `json:"category"`
	XP               int       `json:"xp"`
	Strengths        []string  `json:"strengths"`
	Opportunities    []string  `json:"opportunities"`
	StartedAt        time.Time `json:"started_at"`
	FinishedAt       time.Time `json:"finished_at"`
	CreatedAt        time.Time `json:"created_at"`
}

// LearnerProgress accumulates rewards across attempts.
type LearnerProgress struct {
	UserID        string    `json:"user_id"`
	TotalXP       int       `json:"total_xp"`
	Badges        []string  `json:"badges"`
	AttemptsCount int       `json:"attempts_count"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type QuestionFilter struct {
	AgeGroup   AgeGroup
	Difficulty Difficulty
	ActiveOnly bool
}
