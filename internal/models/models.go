package models

type AgeGroup string

const (
	AgeGroup5to10  AgeGroup = "5-10"
	AgeGroup10to15 AgeGroup = "10-15"
	AgeGroup15to18 AgeGroup = "15-18"
)

// AgeGroups lists every supported age group in ascending order.
var AgeGroups = []AgeGroup{AgeGroup5to10, AgeGroup10to15, AgeGroup15to18}

func (g AgeGroup) Valid() bool {
	switch g {
	case AgeGroup5to10, AgeGroup10to15, AgeGroup15to18:
		return true
	}
	return false
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties is ordered from easiest to hardest.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Index returns the position of d in Difficulties, or -1 when unknown.
func (d Difficulty) Index() int {
	for i, v := range Difficulties {
		if v == d {
			return i
		}
	}
	return -1
}

// Next returns the following difficulty, saturating at hard.
func (d Difficulty) Next() Difficulty {
	switch d {
	case DifficultyEasy:
		return DifficultyMedium
	default:
		return DifficultyHard
	}
}

func (d Difficulty) Valid() bool {
	return d.Index() >= 0
}

// Category is the coarse learner classification derived from percent correct.
type Category string

const (
	CategoryBuilder   Category = "Builder"
	CategoryExplorer  Category = "Explorer"
	CategoryInnovator Category = "Innovator"
)

type LessonFormat string

const (
	FormatVideo       LessonFormat = "video"
	FormatInteractive LessonFormat = "interactive"
	FormatText        LessonFormat = "text"
	FormatGame        LessonFormat = "game"
)

type QuizMode string

const (
	ModePractice   QuizMode = "practice"
	ModeDiagnostic QuizMode = "diagnostic"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)
