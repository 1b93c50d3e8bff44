// Package recommend ranks catalog lessons for a learner and builds adaptive
// lesson sequences. Results depend only on the catalog and the request.
package recommend

import (
	"fmt"
	"math"
	"sort"

	"github.com/vytor/brainboost/internal/models"
)

// LessonSource is the read-only lesson catalog.
type LessonSource interface {
	Lessons() []models.Lesson
}

type Criteria struct {
	AgeGroup   models.AgeGroup   `json:"age_group,omitempty"`
	SkillTags  []string          `json:"skill_tags,omitempty"`
	Difficulty models.Difficulty `json:"difficulty,omitempty"`
	MaxResults int               `json:"max_results,omitempty"`
}

type Recommendation struct {
	Lesson   models.Lesson   `json:"lesson"`
	Score    float64         `json:"score"`
	Priority models.Priority `json:"priority"`
	Reasons  []string        `json:"reasons"`
}

type Engine struct {
	cfg      Config
	strategy SequenceStrategy
}

type Option func(*Engine)

// WithStrategy replaces the lesson picker used by Sequence.
func WithStrategy(s SequenceStrategy) Option {
	return func(e *Engine) {
		if s != nil {
			e.strategy = s
		}
	}
}

func New(cfg Config, opts ...Option) *Engine {
	e := &Engine{cfg: cfg, strategy: GreedyCoverage}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Config() Config {
	return e.cfg
}

// Rank filters, scores and orders lessons. Equal scores keep catalog order.
func (e *Engine) Rank(src LessonSource, c Criteria) []Recommendation {
	out := []Recommendation{}
	if src == nil {
		return out
	}
	tags := uniqueTags(c.SkillTags)

	for _, l := range src.Lessons() {
		if !matches(l, c.AgeGroup, c.Difficulty, tags) {
			continue
		}
		out = append(out, e.score(l, c, tags))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	limit := c.MaxResults
	if limit <= 0 {
		limit = e.cfg.DefaultMaxResults
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (e *Engine) Recommend(src LessonSource, c Criteria) []models.Lesson {
	ranked := e.Rank(src, c)
	lessons := make([]models.Lesson, len(ranked))
	for i, r := range ranked {
		lessons[i] = r.Lesson
	}
	return lessons
}

// ForOpportunities targets the skills a learner struggled with at the
// difficulty associated with their category.
func (e *Engine) ForOpportunities(src LessonSource, opps []models.Opportunity, profile models.UserProfile, category models.Category, maxResults int) []models.Lesson {
	tags := make([]string, 0, len(opps))
	for _, o := range opps {
		tags = append(tags, o.SkillTag)
	}
	return e.Recommend(src, Criteria{
		AgeGroup:   profile.AgeGroup,
		SkillTags:  tags,
		Difficulty: e.cfg.CategoryDifficulty[category],
		MaxResults: maxResults,
	})
}

func (e *Engine) score(l models.Lesson, c Criteria, tags []string) Recommendation {
	cfg := e.cfg
	var score float64
	reasons := []string{}

	if len(tags) > 0 {
		matching := 0
		for _, t := range tags {
			if l.HasSkill(t) {
				matching++
			}
		}
		relevance := float64(matching) / float64(len(tags)) * cfg.RelevanceWeight
		score += relevance
		if relevance > cfg.RelevanceWeight/2 {
			reasons = append(reasons, fmt.Sprintf("Targets %d of your focus areas", matching))
		}
	}

	group := cfg.ageGroup(c.AgeGroup)
	ideal := cfg.IdealDuration[group]
	score += math.Max(0, cfg.DurationMaxScore-math.Abs(float64(l.DurationMinutes-ideal)))
	if l.DurationMinutes <= ideal+5 {
		reasons = append(reasons, "Perfect duration for your age group")
	}

	formatScore := cfg.formatScore(group, l.Format)
	score += formatScore
	if formatScore > 15 {
		reasons = append(reasons, fmt.Sprintf("%s format matches your learning style", l.Format))
	}

	score += e.difficultyScore(l.Difficulty, c.Difficulty)
	score += math.Min(float64(len(l.LearningObjectives))*cfg.ObjectivePoints, cfg.ObjectiveMaxScore)

	return Recommendation{
		Lesson:   l,
		Score:    score,
		Priority: cfg.priority(score),
		Reasons:  reasons,
	}
}

func (e *Engine) difficultyScore(lesson, requested models.Difficulty) float64 {
	if requested == "" {
		return e.cfg.NeutralDifficultyScore
	}
	li, ri := lesson.Index(), requested.Index()
	if li < 0 || ri < 0 {
		return 0
	}
	diff := math.Abs(float64(li - ri))
	return math.Max(0, e.cfg.DifficultyMaxScore-diff*e.cfg.DifficultyStepPenalty)
}

func matches(l models.Lesson, group models.AgeGroup, d models.Difficulty, tags []string) bool {
	if !l.Active {
		return false
	}
	if group != "" && l.AgeGroup != group {
		return false
	}
	if d != "" && l.Difficulty != d {
		return false
	}
	if len(tags) == 0 {
		return true
	}
	for _, t := range tags {
		if l.HasSkill(t) {
			return true
		}
	}
	return false
}

func uniqueTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
