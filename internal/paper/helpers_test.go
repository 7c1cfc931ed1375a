package paper_test

import (
	"fmt"
	"testing"

	"github.com/p-n-ai/pai-paper/internal/curriculum"
)

var cbseMathsUnits = []struct {
	name       string
	weightage  int
	difficulty curriculum.Difficulty
}{
	{"Real Numbers", 6, curriculum.DifficultyMedium},
	{"Polynomials", 4, curriculum.DifficultyMedium},
	{"Pair of Linear Equations", 6, curriculum.DifficultyMedium},
	{"Quadratic Equations", 6, curriculum.DifficultyHard},
	{"Arithmetic Progressions", 4, curriculum.DifficultyMedium},
	{"Triangles", 6, curriculum.DifficultyMedium},
	{"Coordinate Geometry", 4, curriculum.DifficultyMedium},
	{"Trigonometry", 5, curriculum.DifficultyHard},
	{"Applications of Trigonometry", 4, curriculum.DifficultyMedium},
	{"Circles", 4, curriculum.DifficultyMedium},
	{"Constructions", 3, curriculum.DifficultyEasy},
	{"Areas Related to Circles", 3, curriculum.DifficultyMedium},
	{"Surface Areas and Volumes", 4, curriculum.DifficultyMedium},
	{"Statistics", 4, curriculum.DifficultyEasy},
	{"Probability", 3, curriculum.DifficultyEasy},
}

func cbsePattern() curriculum.PaperPattern {
	return curriculum.PaperPattern{
		{ID: "section_a", Type: curriculum.QuestionMCQ, Questions: 20, MarksPerQuestion: 1},
		{ID: "section_b", Type: curriculum.QuestionShortAnswer, Questions: 6, MarksPerQuestion: 2},
		{ID: "section_c", Type: curriculum.QuestionShortAnswer, Questions: 8, MarksPerQuestion: 3},
		{ID: "section_d", Type: curriculum.QuestionLongAnswer, Questions: 6, MarksPerQuestion: 4},
	}
}

func cbseMaths() curriculum.Entry {
	e := curriculum.Entry{
		Key:        curriculum.NewKey("CBSE", "class_10", "Mathematics"),
		TotalMarks: 80,
		Duration:   "3 hours",
		Pattern:    cbsePattern(),
	}
	for _, u := range cbseMathsUnits {
		e.Units = append(e.Units, curriculum.Unit{
			Name:          u.name,
			Topics:        []string{u.name + " basics", u.name + " problems"},
			Weightage:     u.weightage,
			Difficulty:    u.difficulty,
			QuestionTypes: curriculum.AllQuestionTypes(),
		})
	}
	return e
}

func smallEntry(units int) curriculum.Entry {
	e := curriculum.Entry{
		Key:        curriculum.NewKey("ICSE", "class_9", "Physics"),
		TotalMarks: 50,
		Duration:   "2 hours",
	}
	for i := range units {
		e.Units = append(e.Units, curriculum.Unit{
			Name:          fmt.Sprintf("Unit %d", i+1),
			Topics:        []string{fmt.Sprintf("Topic %d", i+1)},
			Weightage:     i + 1,
			Difficulty:    curriculum.DifficultyMedium,
			QuestionTypes: curriculum.AllQuestionTypes(),
		})
	}
	return e
}

func testCatalog(t *testing.T) *curriculum.Catalog {
	t.Helper()
	c, err := curriculum.NewCatalog(cbseMaths(), smallEntry(2))
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	return c
}
