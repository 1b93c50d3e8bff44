package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/vytor/brainboost/internal/models"
)

// EducatorInsights is guidance for teachers and parents derived from a report.
type EducatorInsights struct {
	LearningStyle         string   `json:"learning_style"`
	RecommendedActivities []string `json:"recommended_activities"`
	ParentGuidance        []string `json:"parent_guidance"`
	NextSteps             []string `json:"next_steps"`
}

var learningStyles = map[models.Category]string{
	models.CategoryBuilder:   "Structured, step-by-step learning with clear foundations",
	models.CategoryExplorer:  "Diverse, interactive learning with variety and exploration",
	models.CategoryInnovator: "Challenge-based learning with creative problem-solving opportunities",
}

var categoryActivities = map[models.Category][]string{
	models.CategoryBuilder: {
		"Practice with guided tutorials",
		"Complete structured worksheets",
		"Follow step-by-step problem solutions",
	},
	models.CategoryExplorer: {
		"Try different learning games",
		"Explore various topic areas",
		"Engage in group learning activities",
	},
	models.CategoryInnovator: {
		"Tackle complex challenges",
		"Create original projects",
		"Lead peer learning sessions",
	},
}

func Insights(r models.Report) EducatorInsights {
	style, ok := learningStyles[r.Scores.Category]
	if !ok {
		style = "Adaptive learning approach"
	}

	activities := append([]string{}, categoryActivities[r.Scores.Category]...)
	for _, o := range r.Opportunities {
		activities = append(activities, fmt.Sprintf("Focus on %s practice", strings.ReplaceAll(o.SkillTag, "-", " ")))
	}

	return EducatorInsights{
		LearningStyle:         style,
		RecommendedActivities: activities,
		ParentGuidance:        parentGuidance(r.Scores.PercentageScore),
		NextSteps:             nextSteps(r.Opportunities, r.LessonPlan),
	}
}

func parentGuidance(pct float64) []string {
	guidance := []string{
		"Celebrate effort and progress, not just results",
		"Provide regular encouragement and support",
		"Create a positive learning environment at home",
	}
	switch {
	case pct >= 80:
		guidance = append(guidance, "Challenge with advanced materials", "Encourage mentoring of peers")
	case pct >= 60:
		guidance = append(guidance, "Focus on consistent practice", "Identify and build on strengths")
	default:
		guidance = append(guidance, "Provide extra support and patience", "Break learning into smaller, manageable chunks")
	}
	return guidance
}

func nextSteps(opps []models.Opportunity, plan []models.Lesson) []string {
	steps := []string{
		"Complete recommended lesson modules",
		"Practice identified skill areas regularly",
		"Track progress through regular assessments",
	}
	if len(opps) > 0 {
		tags := make([]string, len(opps))
		for i, o := range opps {
			tags[i] = o.SkillTag
		}
		steps = append(steps, "Focus on improving: "+strings.Join(tags, ", "))
	}
	if len(plan) > 0 {
		title := plan[0].Title
		if title == "" {
			title = "first recommended lesson"
		}
		steps = append(steps, "Start with: "+title)
	}
	return steps
}

// AnalyticsSummary aggregates one or more reports.
type AnalyticsSummary struct {
	Reports              int                     `json:"reports"`
	CategoryDistribution map[models.Category]int `json:"category_distribution"`
	AverageScore         float64                 `json:"average_score"`
	CommonStrengths      []string                `json:"common_strengths"`
	CommonOpportunities  []string                `json:"common_opportunities"`
	// CompletionTimeMs is the total time spent answering across all reports.
	CompletionTimeMs int64 `json:"completion_time_ms"`
}

// Summarize aggregates reports. Common strengths and opportunities are ordered
// by how many reports mention them, then by tag.
func Summarize(reports ...models.Report) AnalyticsSummary {
	s := AnalyticsSummary{
		Reports:              len(reports),
		CategoryDistribution: map[models.Category]int{},
		CommonStrengths:      []string{},
		CommonOpportunities:  []string{},
	}
	if len(reports) == 0 {
		return s
	}

	strengths := map[string]int{}
	opportunities := map[string]int{}
	var total float64
	for _, r := range reports {
		s.CategoryDistribution[r.Scores.Category]++
		total += r.Scores.PercentageScore
		for _, st := range r.Strengths {
			strengths[st.SkillTag]++
		}
		for _, o := range r.Opportunities {
			opportunities[o.SkillTag]++
		}
		for _, q := range r.QuestionBreakdown {
			s.CompletionTimeMs += q.TimeSpentMs
		}
	}

	s.AverageScore = round2(total / float64(len(reports)))
	s.CommonStrengths = byFrequency(strengths)
	s.CommonOpportunities = byFrequency(opportunities)
	return s
}

func byFrequency(counts map[string]int) []string {
	tags := make([]string, 0, len(counts))
	for t := range counts {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool {
		if counts[tags[i]] != counts[tags[j]] {
			return counts[tags[i]] > counts[tags[j]]
		}
		return tags[i] < tags[j]
	})
	return tags
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
