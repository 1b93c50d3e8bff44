package models

type Lesson struct {
	ID                 string       `json:"id"`
	Title              string       `json:"title"`
	Description        string       `json:"description,omitempty"`
	SkillTags          []string     `json:"skill_tags"`
	AgeGroup           AgeGroup     `json:"age_group"`
	DurationMinutes    int          `json:"duration_minutes"`
	Difficulty         Difficulty   `json:"difficulty"`
	Format             LessonFormat `json:"format"`
	LearningObjectives []string     `json:"learning_objectives"`
	Active             bool         `json:"active"`
}

// HasSkill reports whether the lesson is tagged with tag.
func (l Lesson) HasSkill(tag string) bool {
	for _, t := range l.SkillTags {
		if t == tag {
			return true
		}
	}
	return false
}

type UserProfile struct {
	UserID   string   `json:"user_id"`
	Name     string   `json:"name"`
	Age      int      `json:"age"`
	AgeGroup AgeGroup `json:"age_group"`
	AvatarID string   `json:"avatar_id"`
}

// LessonFilter narrows stored lessons; zero values match everything.
type LessonFilter struct {
	AgeGroup   AgeGroup
	Difficulty Difficulty
	ActiveOnly bool
}
