package catalog

import (
	"hash/fnv"
	"math/rand/v2"
	"strings"

	"github.com/vytor/brainboost/internal/models"
)

const DefaultQuestionCount = 25

type QuestionQuery struct {
	AgeGroup   models.AgeGroup
	Difficulty models.Difficulty
	// Topics match a question topic or skill tag by case-insensitive substring.
	Topics []string
	Count  int
	// Seed shuffles the selection reproducibly. An empty seed keeps load order.
	Seed string
}

// SelectQuestions picks active questions matching q. The same query against the
// same catalog always returns the same questions in the same order.
func (c *Catalog) SelectQuestions(q QuestionQuery) []models.Question {
	if c == nil {
		return []models.Question{}
	}
	count := q.Count
	if count <= 0 {
		count = DefaultQuestionCount
	}

	matched := make([]models.Question, 0, len(c.questions))
	for _, question := range c.questions {
		if !question.Active {
			continue
		}
		if q.AgeGroup != "" && question.AgeGroup != q.AgeGroup {
			continue
		}
		if q.Difficulty != "" && question.Difficulty != q.Difficulty {
			continue
		}
		if len(q.Topics) > 0 && !matchesTopic(question, q.Topics) {
			continue
		}
		matched = append(matched, question)
	}

	if q.Seed != "" {
		h := fnv.New64a()
		h.Write([]byte(q.Seed))
		sum := h.Sum64()
		rng := rand.New(rand.NewPCG(sum, sum>>1))
		rng.Shuffle(len(matched), func(i, j int) {
			matched[i], matched[j] = matched[j], matched[i]
		})
	}

	if len(matched) > count {
		matched = matched[:count]
	}
	return matched
}

func matchesTopic(q models.Question, topics []string) bool {
	topic := strings.ToLower(q.Topic)
	for _, t := range topics {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if strings.Contains(topic, t) {
			return true
		}
		for _, tag := range q.CognitiveSkillTags {
			if strings.Contains(tag, t) {
				return true
			}
		}
	}
	return false
}
