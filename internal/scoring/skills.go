package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/vytor/brainboost/internal/models"
)

// LessonIndex resolves remediation lessons for a skill tag.
type LessonIndex interface {
	LessonsForSkill(tag string, limit int) []string
}

// SkillScore is the aggregate correctness of one cognitive-skill tag.
type SkillScore struct {
	Tag        string
	Correct    int
	Total      int
	Percentage float64
}

// SkillScores aggregates correctness per tag, sorted by descending percentage
// with ties ordered by tag name.
func SkillScores(answers []models.Answer, questions map[string]models.Question) []SkillScore {
	byTag := make(map[string]*SkillScore)
	for _, a := range answers {
		q, ok := questions[a.QuestionID]
		if !ok {
			continue
		}
		correct := isCorrect(a, q)
		for _, tag := range q.CognitiveSkillTags {
			s, ok := byTag[tag]
			if !ok {
				s = &SkillScore{Tag: tag}
				byTag[tag] = s
			}
			s.Total++
			if correct {
				s.Correct++
			}
		}
	}

	out := make([]SkillScore, 0, len(byTag))
	for _, s := range byTag {
		if s.Total == 0 {
			continue
		}
		s.Percentage = float64(s.Correct) / float64(s.Total) * 100
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Percentage != out[j].Percentage {
			return out[i].Percentage > out[j].Percentage
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}

// AnalyzeSkills splits skill scores into strengths and opportunities. The two
// thresholds do not overlap, so a tag never appears in both lists.
func AnalyzeSkills(cfg SkillConfig, skills []SkillScore, index LessonIndex) ([]models.Strength, []models.Opportunity) {
	strengths := []models.Strength{}
	opportunities := []models.Opportunity{}

	for _, s := range skills {
		if s.Percentage >= cfg.StrengthMin && len(strengths) < cfg.MaxStrengths {
			strengths = append(strengths, models.Strength{
				SkillTag:    s.Tag,
				Score:       int(math.Round(s.Percentage)),
				Description: skillDescription(s.Tag, true),
				Examples:    skillExamples(s.Tag, true),
			})
		}
		if s.Percentage < cfg.OpportunityBelow && len(opportunities) < cfg.MaxOpportunities {
			opportunities = append(opportunities, models.Opportunity{
				SkillTag:             s.Tag,
				Score:                int(math.Round(s.Percentage)),
				Description:          skillDescription(s.Tag, false),
				RecommendedLessonIDs: lessonsForSkill(index, s.Tag, cfg.LessonsPerSkill),
				Priority:             opportunityPriority(cfg, s.Percentage),
			})
		}
	}
	return strengths, opportunities
}

func opportunityPriority(cfg SkillConfig, pct float64) models.Priority {
	switch {
	case pct < cfg.HighPriorityBelow:
		return models.PriorityHigh
	case pct < cfg.MediumPriorityBelow:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}

var staticSkillLessons = map[string][]string{
	"pattern-recognition": {"L-PATTERN-001", "L-PATTERN-002", "L-PATTERN-003"},
	"numerical-reasoning": {"L-MATH-001", "L-MATH-002", "L-MATH-003"},
	"logical-thinking":    {"L-LOGIC-001", "L-LOGIC-002", "L-LOGIC-003"},
	"time-management":     {"L-TIME-001", "L-TIME-002"},
	"attention-to-detail": {"L-FOCUS-001", "L-FOCUS-002"},
}

func lessonsForSkill(index LessonIndex, tag string, limit int) []string {
	if index != nil {
		ids := index.LessonsForSkill(tag, limit)
		if ids == nil {
			return []string{}
		}
		return ids
	}
	if ids, ok := staticSkillLessons[tag]; ok {
		if limit > 0 && len(ids) > limit {
			ids = ids[:limit]
		}
		return append([]string(nil), ids...)
	}
	return []string{fmt.Sprintf("L-%s-001", strings.ToUpper(tag))}
}

type skillCopy struct {
	strength, opportunity string
}

var skillDescriptions = map[string]skillCopy{
	"pattern-recognition": {
		"Excellent at identifying and predicting patterns in sequences and visual arrangements",
		"Could benefit from more practice with pattern identification and sequence completion",
	},
	"numerical-reasoning": {
		"Strong mathematical thinking and problem-solving abilities",
		"Could improve mathematical reasoning and computational skills",
	},
	"logical-thinking": {
		"Demonstrates clear logical reasoning and deductive thinking",
		"Could strengthen logical reasoning and critical thinking skills",
	},
}

var skillExampleText = map[string][2][]string{
	"pattern-recognition": {
		{"Quickly identified number sequences", "Recognized visual patterns"},
		{"Practice with sequence puzzles", "Work on visual pattern games"},
	},
	"numerical-reasoning": {
		{"Solved math problems accurately", "Quick mental calculations"},
		{"Practice basic arithmetic", "Work on word problems"},
	},
	"logical-thinking": {
		{"Clear logical deductions", "Strong reasoning skills"},
		{"Practice logic puzzles", "Work on cause-effect relationships"},
	},
}

func skillDescription(tag string, strength bool) string {
	if d, ok := skillDescriptions[tag]; ok {
		if strength {
			return d.strength
		}
		return d.opportunity
	}
	if strength {
		return fmt.Sprintf("Strong %s abilities", tag)
	}
	return fmt.Sprintf("Room to improve %s skills", tag)
}

func skillExamples(tag string, strength bool) []string {
	idx := 1
	if strength {
		idx = 0
	}
	if ex, ok := skillExampleText[tag]; ok {
		return append([]string(nil), ex[idx]...)
	}
	if strength {
		return []string{"Strong performance in this area"}
	}
	return []string{"Room for improvement in this area"}
}
