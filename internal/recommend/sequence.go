package recommend

import (
	"github.com/vytor/brainboost/internal/models"
)

type SequenceRequest struct {
	AgeGroup           models.AgeGroup `json:"age_group,omitempty"`
	CompletedLessonIDs []string        `json:"completed_lesson_ids,omitempty"`
	TargetSkills       []string        `json:"target_skills"`
	Length             int             `json:"length,omitempty"`
}

// SequenceStrategy picks the next lesson from candidates, returning its index
// or -1 to leave the slot empty. chosen holds the lessons already in the
// sequence.
type SequenceStrategy func(candidates []models.Lesson, targets []string, chosen []models.Lesson) int

// GreedyCoverage picks the candidate covering the most target skills not yet
// covered by the sequence. Ties go to the earliest candidate. This is the
// greedy set-cover heuristic and does not guarantee the smallest pathway.
func GreedyCoverage(candidates []models.Lesson, targets []string, chosen []models.Lesson) int {
	if len(candidates) == 0 {
		return -1
	}
	covered := coveredTags(chosen)
	best, bestScore := 0, -1
	for i, l := range candidates {
		n := 0
		for _, t := range targets {
			if !covered[t] && l.HasSkill(t) {
				n++
			}
		}
		if n > bestScore {
			best, bestScore = i, n
		}
	}
	return best
}

// WeightedCoverage scores 10 per target skill covered plus 5 per tag new to
// the sequence, whether or not it is a target.
func WeightedCoverage(candidates []models.Lesson, targets []string, chosen []models.Lesson) int {
	if len(candidates) == 0 {
		return -1
	}
	covered := coveredTags(chosen)
	best, bestScore := 0, -1
	for i, l := range candidates {
		score := 0
		for _, t := range targets {
			if l.HasSkill(t) {
				score += 10
			}
		}
		for _, t := range l.SkillTags {
			if !covered[t] {
				score += 5
			}
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

func coveredTags(lessons []models.Lesson) map[string]bool {
	covered := map[string]bool{}
	for _, l := range lessons {
		for _, t := range l.SkillTags {
			covered[t] = true
		}
	}
	return covered
}

// Sequence builds an ordered pathway that starts easy and steps up difficulty
// every LessonsPerDifficulty slots. A slot with no candidate at its difficulty
// is skipped, so the result can be shorter than requested. Length is capped at
// MaxSequenceLength.
func (e *Engine) Sequence(src LessonSource, req SequenceRequest) []models.Lesson {
	sequence := []models.Lesson{}
	if src == nil {
		return sequence
	}

	length := req.Length
	if length <= 0 {
		length = e.cfg.DefaultSequenceLength
	}
	if limit := e.cfg.MaxSequenceLength; limit > 0 && length > limit {
		length = limit
	}
	step := e.cfg.LessonsPerDifficulty
	if step <= 0 {
		step = 2
	}

	targets := uniqueTags(req.TargetSkills)
	completed := make(map[string]bool, len(req.CompletedLessonIDs))
	for _, id := range req.CompletedLessonIDs {
		completed[id] = true
	}

	var available []models.Lesson
	for _, l := range src.Lessons() {
		if completed[l.ID] || len(targets) == 0 || !matches(l, req.AgeGroup, "", targets) {
			continue
		}
		available = append(available, l)
	}

	used := map[string]bool{}
	difficulty := models.DifficultyEasy
	for slot := 0; slot < length && len(sequence) < len(available); slot++ {
		var candidates []models.Lesson
		for _, l := range available {
			if l.Difficulty == difficulty && !used[l.ID] {
				candidates = append(candidates, l)
			}
		}
		if i := e.strategy(candidates, targets, sequence); i >= 0 && i < len(candidates) {
			sequence = append(sequence, candidates[i])
			used[candidates[i].ID] = true
		} else if difficulty == models.DifficultyHard {
			// difficulty never drops, so later slots stay empty
			break
		}
		if (slot+1)%step == 0 {
			difficulty = difficulty.Next()
		}
	}
	return sequence
}
