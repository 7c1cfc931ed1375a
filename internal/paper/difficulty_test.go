package paper_test

import (
	"testing"

	"github.com/p-n-ai/pai-paper/internal/curriculum"
	"github.com/p-n-ai/pai-paper/internal/paper"
)

func TestProfile(t *testing.T) {
	tests := []struct {
		tier      curriculum.Difficulty
		cognitive string
		mcqTime   int
		longTime  int
		longMarks int
	}{
		{curriculum.DifficultyEasy, "Remembering, Understanding", 1, 8, 4},
		{curriculum.DifficultyMedium, "Applying, Analyzing", 2, 12, 6},
		{curriculum.DifficultyHard, "Evaluating, Creating", 3, 20, 8},
	}

	for _, tt := range tests {
		t.Run(string(tt.tier), func(t *testing.T) {
			p, err := paper.Profile(tt.tier)
			if err != nil {
				t.Fatalf("Profile() error = %v", err)
			}
			if p.CognitiveLevel != tt.cognitive {
				t.Errorf("CognitiveLevel = %q, want %q", p.CognitiveLevel, tt.cognitive)
			}
			if got := p.TimePerQuestion[curriculum.QuestionMCQ]; got != tt.mcqTime {
				t.Errorf("TimePerQuestion[mcq] = %d, want %d", got, tt.mcqTime)
			}
			if got := p.TimePerQuestion[curriculum.QuestionLongAnswer]; got != tt.longTime {
				t.Errorf("TimePerQuestion[long_answer] = %d, want %d", got, tt.longTime)
			}
			if got := p.MarksRange[curriculum.QuestionLongAnswer]; got != tt.longMarks {
				t.Errorf("MarksRange[long_answer] = %d, want %d", got, tt.longMarks)
			}
			if p.Description == "" {
				t.Error("Description is empty")
			}
		})
	}
}

func TestProfile_UnknownTier(t *testing.T) {
	if _, err := paper.Profile("brutal"); err == nil {
		t.Fatal("Profile(brutal) should fail")
	}
}

func TestProfile_ReturnsCopy(t *testing.T) {
	p, _ := paper.Profile(curriculum.DifficultyEasy)
	p.TimePerQuestion[curriculum.QuestionMCQ] = 99

	again, _ := paper.Profile(curriculum.DifficultyEasy)
	if got := again.TimePerQuestion[curriculum.QuestionMCQ]; got != 1 {
		t.Errorf("TimePerQuestion[mcq] after caller mutation = %d, want 1", got)
	}
}
