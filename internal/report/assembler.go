// Package report assembles the learner-facing report for a scored submission.
package report

import (
	"bytes"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/vytor/brainboost/internal/models"
	"github.com/vytor/brainboost/internal/recommend"
	"github.com/vytor/brainboost/internal/scoring"
)

// reportNamespace scopes report IDs so they never collide with other SHA1 UUIDs.
var reportNamespace = uuid.MustParse("6f1c9a52-4b7e-5d0a-9c31-2e8f7b4d6a10")

type Scorer interface {
	Score(sub models.QuizSubmission, questions []models.Question) scoring.Result
}

type Recommender interface {
	ForOpportunities(src recommend.LessonSource, opps []models.Opportunity, profile models.UserProfile, category models.Category, maxResults int) []models.Lesson
}

type Assembler struct {
	scorer      Scorer
	recommender Recommender
	cfg         Config
}

func NewAssembler(scorer Scorer, recommender Recommender, cfg Config) *Assembler {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Assembler{scorer: scorer, recommender: recommender, cfg: cfg}
}

// Assemble scores the submission, recommends lessons for its opportunities and
// wraps everything in a report.
func (a *Assembler) Assemble(sub models.QuizSubmission, profile models.UserProfile, questions []models.Question, lessons recommend.LessonSource) models.Report {
	r, _ := a.AssembleWithResult(sub, profile, questions, lessons)
	return r
}

// AssembleWithResult also returns the raw scoring result, which carries the
// answers that referenced unknown questions.
func (a *Assembler) AssembleWithResult(sub models.QuizSubmission, profile models.UserProfile, questions []models.Question, lessons recommend.LessonSource) (models.Report, scoring.Result) {
	res := a.scorer.Score(sub, questions)
	plan := a.recommender.ForOpportunities(lessons, res.Opportunities, profile, res.Scores.Category, a.cfg.RecommendationCount)
	if plan == nil {
		plan = []models.Lesson{}
	}

	now := a.cfg.Now().UTC()
	userID := sub.UserID
	if userID == "" {
		userID = profile.UserID
	}

	r := models.Report{
		ID:     ReportID(sub),
		UserID: userID,
		UserSummary: models.UserSummary{
			Name:     profile.Name,
			Age:      profile.Age,
			AgeGroup: profile.AgeGroup,
			Avatar:   profile.AvatarID,
		},
		Scores:              res.Scores,
		Strengths:           res.Strengths,
		Opportunities:       res.Opportunities,
		QuestionBreakdown:   res.QuestionBreakdown,
		GamificationRewards: res.Rewards,
		LessonPlan:          plan,
		Certificate:         a.certificate(res.Scores.PercentageScore, profile, now),
		VisualAssets:        a.visualAssets(res.Scores.Category),
		GeneratedAt:         now,
	}
	return r, res
}

// ReportID derives a stable UUID from the submission contents, so the same
// submission always maps to the same report.
func ReportID(sub models.QuizSubmission) string {
	var b bytes.Buffer
	b.WriteString(sub.UserID)
	b.WriteByte(0)
	b.WriteString(sub.QuizID)
	b.WriteByte(0)
	b.WriteString(string(sub.Mode))
	b.WriteByte(0)
	b.WriteString(sub.StartedAt.UTC().Format(time.RFC3339Nano))
	b.WriteByte(0)
	b.WriteString(sub.FinishedAt.UTC().Format(time.RFC3339Nano))
	for _, ans := range sub.Answers {
		b.WriteByte(0)
		b.WriteString(ans.QuestionID)
		b.WriteByte('|')
		b.WriteString(ans.SelectedOptionID)
		b.WriteByte('|')
		b.WriteString(strconv.FormatInt(ans.ResponseTimeMs, 10))
	}
	return uuid.NewSHA1(reportNamespace, b.Bytes()).String()
}

func (a *Assembler) certificate(pct float64, profile models.UserProfile, now time.Time) models.Certificate {
	return Certificate(a.cfg, pct, profile, now)
}

func (a *Assembler) visualAssets(c models.Category) models.VisualAssets {
	return models.VisualAssets{
		Confetti:          a.cfg.Assets.Confetti,
		BrainGauge:        a.cfg.Assets.BrainGauge,
		CategoryAnimation: a.cfg.Assets.CategoryAnimations[c],
	}
}
