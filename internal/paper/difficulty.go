package paper

import (
	"fmt"
	"maps"

	"github.com/p-n-ai/pai-paper/internal/curriculum"
)

// DifficultyProfile describes what a difficulty tier costs per question type.
type DifficultyProfile struct {
	Description string `json:"description"`
	// TimePerQuestion is in minutes.
	TimePerQuestion map[curriculum.QuestionType]int `json:"time_per_question"`
	MarksRange      map[curriculum.QuestionType]int `json:"marks_range"`
	CognitiveLevel  string                          `json:"cognitive_level"`
}

var profiles = map[curriculum.Difficulty]DifficultyProfile{
	curriculum.DifficultyEasy: {
		Description: "Basic understanding required",
		TimePerQuestion: map[curriculum.QuestionType]int{
			curriculum.QuestionMCQ:         1,
			curriculum.QuestionShortAnswer: 3,
			curriculum.QuestionLongAnswer:  8,
		},
		MarksRange: map[curriculum.QuestionType]int{
			curriculum.QuestionMCQ:         1,
			curriculum.QuestionShortAnswer: 2,
			curriculum.QuestionLongAnswer:  4,
		},
		CognitiveLevel: "Remembering, Understanding",
	},
	curriculum.DifficultyMedium: {
		Description: "Application and analysis required",
		TimePerQuestion: map[curriculum.QuestionType]int{
			curriculum.QuestionMCQ:         2,
			curriculum.QuestionShortAnswer: 5,
			curriculum.QuestionLongAnswer:  12,
		},
		MarksRange: map[curriculum.QuestionType]int{
			curriculum.QuestionMCQ:         1,
			curriculum.QuestionShortAnswer: 3,
			curriculum.QuestionLongAnswer:  6,
		},
		CognitiveLevel: "Applying, Analyzing",
	},
	curriculum.DifficultyHard: {
		Description: "Synthesis and evaluation required",
		TimePerQuestion: map[curriculum.QuestionType]int{
			curriculum.QuestionMCQ:         3,
			curriculum.QuestionShortAnswer: 8,
			curriculum.QuestionLongAnswer:  20,
		},
		MarksRange: map[curriculum.QuestionType]int{
			curriculum.QuestionMCQ:         1,
			curriculum.QuestionShortAnswer: 4,
			curriculum.QuestionLongAnswer:  8,
		},
		CognitiveLevel: "Evaluating, Creating",
	},
}

// Profile returns the profile of a difficulty tier.
func Profile(tier curriculum.Difficulty) (DifficultyProfile, error) {
	p, ok := profiles[tier]
	if !ok {
		return DifficultyProfile{}, fmt.Errorf("unknown difficulty tier %q", tier)
	}
	p.TimePerQuestion = maps.Clone(p.TimePerQuestion)
	p.MarksRange = maps.Clone(p.MarksRange)
	return p, nil
}
