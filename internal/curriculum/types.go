package curriculum

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Difficulty is the difficulty tier attached to a syllabus unit.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// AllDifficulties returns every tier from easiest to hardest.
func AllDifficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// ParseDifficulty converts a tier name into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("unknown difficulty tier %q", s)
	}
	return d, nil
}

// Valid reports whether d is a known tier.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// UnmarshalText lets JSON keys and values decode into a checked tier.
func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// QuestionType is the kind of question a paper section or unit uses.
type QuestionType string

const (
	QuestionMCQ         QuestionType = "mcq"
	QuestionShortAnswer QuestionType = "short_answer"
	QuestionLongAnswer  QuestionType = "long_answer"
)

// AllQuestionTypes returns the question types a unit allows when it declares none.
func AllQuestionTypes() []QuestionType {
	return []QuestionType{QuestionMCQ, QuestionShortAnswer, QuestionLongAnswer}
}

// ParseQuestionType converts a question type name into a QuestionType.
func ParseQuestionType(s string) (QuestionType, error) {
	q := QuestionType(strings.ToLower(strings.TrimSpace(s)))
	if !q.Valid() {
		return "", fmt.Errorf("unknown question type %q", s)
	}
	return q, nil
}

// Valid reports whether q is a known question type.
func (q QuestionType) Valid() bool {
	switch q {
	case QuestionMCQ, QuestionShortAnswer, QuestionLongAnswer:
		return true
	}
	return false
}

// Key identifies one curriculum entry.
type Key struct {
	Board      string `json:"board"`
	ClassLevel string `json:"class_level"`
	Subject    string `json:"subject"`
}

// NewKey builds a normalized Key.
func NewKey(board, classLevel, subject string) Key {
	return Key{
		Board:      Normalize(board),
		ClassLevel: Normalize(classLevel),
		Subject:    Normalize(subject),
	}
}

func (k Key) String() string {
	return k.Board + "/" + k.ClassLevel + "/" + k.Subject
}

// Unit is one syllabus unit of a subject.
type Unit struct {
	Name          string         `json:"name"`
	Topics        []string       `json:"topics"`
	Weightage     int            `json:"weightage"`
	Difficulty    Difficulty     `json:"difficulty"`
	QuestionTypes []QuestionType `json:"question_types"`
}

// Upper bounds on the numbers a curriculum document or blueprint request may
// carry. The curriculum schema enforces the same limits.
const (
	MaxMarks            = 100_000
	MaxWeightage        = 10_000
	MaxQuestions        = 1_000
	MaxMarksPerQuestion = 1_000
)

// Section is one block of a paper pattern.
type Section struct {
	ID               string       `json:"id"`
	Type             QuestionType `json:"type"`
	Questions        int          `json:"questions"`
	MarksPerQuestion int          `json:"marks_per_question"`
}

// Marks returns the marks the whole section is worth.
func (s Section) Marks() int {
	return s.Questions * s.MarksPerQuestion
}

// PaperPattern is the ordered list of sections of a paper. Order is significant.
type PaperPattern []Section

// TotalMarks sums the marks of every section.
func (p PaperPattern) TotalMarks() int {
	total := 0
	for _, s := range p {
		total += s.Marks()
	}
	return total
}

// Check reports the first section with counts outside 1..MaxQuestions or
// 1..MaxMarksPerQuestion, or a pattern worth more than MaxMarks.
func (p PaperPattern) Check() error {
	total := 0
	for _, s := range p {
		switch {
		case s.Questions <= 0 || s.MarksPerQuestion <= 0:
			return fmt.Errorf("section %q needs positive questions and marks per question", s.ID)
		case s.Questions > MaxQuestions:
			return fmt.Errorf("section %q has %d questions, more than %d", s.ID, s.Questions, MaxQuestions)
		case s.MarksPerQuestion > MaxMarksPerQuestion:
			return fmt.Errorf("section %q awards %d marks per question, more than %d", s.ID, s.MarksPerQuestion, MaxMarksPerQuestion)
		}
		total += s.Marks()
		if total > MaxMarks {
			return fmt.Errorf("paper pattern is worth more than %d marks", MaxMarks)
		}
	}
	return nil
}

// Entry is the syllabus and paper structure for one board, class and subject.
type Entry struct {
	Key        Key          `json:"key"`
	Units      []Unit       `json:"units"`
	TotalMarks int          `json:"total_marks"`
	Duration   string       `json:"duration"`
	Pattern    PaperPattern `json:"paper_pattern"`
}

// Unit returns the unit with the given name.
func (e *Entry) Unit(name string) (Unit, bool) {
	name = Normalize(name)
	for _, u := range e.Units {
		if u.Name == name {
			return u, true
		}
	}
	return Unit{}, false
}

func (e *Entry) clone() *Entry {
	c := *e
	c.Units = make([]Unit, len(e.Units))
	for i, u := range e.Units {
		u.Topics = append([]string(nil), u.Topics...)
		u.QuestionTypes = append([]QuestionType(nil), u.QuestionTypes...)
		c.Units[i] = u
	}
	c.Pattern = append(PaperPattern(nil), e.Pattern...)
	return &c
}

// Normalize trims s and puts it in Unicode NFC so names compare exactly.
func Normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
