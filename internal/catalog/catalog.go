// Package catalog holds the read-only lesson and question content shared by the
// scoring, recommendation and report engines. A Catalog is built once and never
// mutated, so it can be read from any number of goroutines without locking.
package catalog

import (
	"sort"

	"github.com/vytor/brainboost/internal/models"
)

type Catalog struct {
	lessons        []models.Lesson
	lessonIdx      map[string]int
	questions      []models.Question
	questionIdx    map[string]int
	lessonsBySkill map[string][]int
}

// New copies lessons and questions into a new catalog. Later duplicates of an
// ID are dropped so the first definition wins.
func New(lessons []models.Lesson, questions []models.Question) *Catalog {
	c := &Catalog{
		lessons:        make([]models.Lesson, 0, len(lessons)),
		lessonIdx:      make(map[string]int, len(lessons)),
		questions:      make([]models.Question, 0, len(questions)),
		questionIdx:    make(map[string]int, len(questions)),
		lessonsBySkill: make(map[string][]int),
	}

	for _, l := range lessons {
		if _, dup := c.lessonIdx[l.ID]; dup {
			continue
		}
		l.SkillTags = append([]string(nil), l.SkillTags...)
		l.LearningObjectives = append([]string(nil), l.LearningObjectives...)
		i := len(c.lessons)
		c.lessons = append(c.lessons, l)
		c.lessonIdx[l.ID] = i
		if !l.Active {
			continue
		}
		for _, tag := range l.SkillTags {
			c.lessonsBySkill[tag] = append(c.lessonsBySkill[tag], i)
		}
	}

	for _, q := range questions {
		if _, dup := c.questionIdx[q.ID]; dup {
			continue
		}
		q.Options = append([]models.QuestionOption(nil), q.Options...)
		q.CognitiveSkillTags = append([]string(nil), q.CognitiveSkillTags...)
		c.questionIdx[q.ID] = len(c.questions)
		c.questions = append(c.questions, q)
	}

	return c
}

// Lessons returns every lesson, active or not, in load order.
func (c *Catalog) Lessons() []models.Lesson {
	if c == nil {
		return nil
	}
	return append([]models.Lesson(nil), c.lessons...)
}

func (c *Catalog) Lesson(id string) (models.Lesson, bool) {
	if c == nil {
		return models.Lesson{}, false
	}
	i, ok := c.lessonIdx[id]
	if !ok {
		return models.Lesson{}, false
	}
	return c.lessons[i], true
}

func (c *Catalog) Question(id string) (models.Question, bool) {
	if c == nil {
		return models.Question{}, false
	}
	i, ok := c.questionIdx[id]
	if !ok {
		return models.Question{}, false
	}
	return c.questions[i], true
}

// Questions resolves ids in order, skipping unknown ones.
func (c *Catalog) Questions(ids []string) []models.Question {
	out := make([]models.Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := c.Question(id); ok {
			out = append(out, q)
		}
	}
	return out
}

func (c *Catalog) AllQuestions() []models.Question {
	if c == nil {
		return nil
	}
	return append([]models.Question(nil), c.questions...)
}

// LessonsForSkill returns the IDs of active lessons tagged with tag, in load
// order. A limit of zero or less returns all of them.
func (c *Catalog) LessonsForSkill(tag string, limit int) []string {
	if c == nil {
		return []string{}
	}
	idx := c.lessonsBySkill[tag]
	if limit > 0 && len(idx) > limit {
		idx = idx[:limit]
	}
	ids := make([]string, len(idx))
	for i, li := range idx {
		ids[i] = c.lessons[li].ID
	}
	return ids
}

type Stats struct {
	Lessons         int               `json:"lessons"`
	ActiveLessons   int               `json:"active_lessons"`
	Questions       int               `json:"questions"`
	ActiveQuestions int               `json:"active_questions"`
	AgeGroups       []models.AgeGroup `json:"age_groups"`
	Skills          []string          `json:"skills"`
}

// Stats summarizes the catalog contents. Skills are sorted by name.
func (c *Catalog) Stats() Stats {
	s := Stats{AgeGroups: []models.AgeGroup{}, Skills: []string{}}
	if c == nil {
		return s
	}

	groups := map[models.AgeGroup]bool{}
	skills := map[string]bool{}
	s.Lessons = len(c.lessons)
	for _, l := range c.lessons {
		if l.Active {
			s.ActiveLessons++
		}
		groups[l.AgeGroup] = true
		for _, t := range l.SkillTags {
			skills[t] = true
		}
	}
	s.Questions = len(c.questions)
	for _, q := range c.questions {
		if q.Active {
			s.ActiveQuestions++
		}
	}

	for _, g := range models.AgeGroups {
		if groups[g] {
			s.AgeGroups = append(s.AgeGroups, g)
		}
	}
	for t := range skills {
		s.Skills = append(s.Skills, t)
	}
	sort.Strings(s.Skills)
	return s
}
