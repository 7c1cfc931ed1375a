package paper

import (
	"fmt"
	"maps"
	"math"
	"strings"

	"github.com/p-n-ai/pai-paper/internal/curriculum"
)

// Mode selects how sections are fitted into the marks budget.
type Mode string

const (
	// ModeGreedy walks the pattern in declaration order and keeps every section
	// that still fits. Sections that do not fit are dropped, never split or
	// reordered. This is the default.
	ModeGreedy Mode = "greedy"
	// ModeOptimal keeps the subset of sections that uses the most marks without
	// exceeding the budget, preferring earlier sections on ties.
	ModeOptimal Mode = "optimal"
)

// ParseMode converts a mode name into a Mode. The empty string is ModeGreedy.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "", ModeGreedy:
		return ModeGreedy, nil
	case ModeOptimal:
		return m, nil
	}
	return "", fmt.Errorf("unknown distribution mode %q", s)
}

// DifficultyMix maps each tier to the fraction of questions it should cover.
type DifficultyMix map[curriculum.Difficulty]float64

// Sum adds up the fractions.
func (m DifficultyMix) Sum() float64 {
	var sum float64
	for _, tier := range curriculum.AllDifficulties() {
		sum += m[tier]
	}
	return sum
}

// SectionAllocation is a section of the pattern that made it into the paper.
type SectionAllocation struct {
	ID               string                  `json:"section"`
	Type             curriculum.QuestionType `json:"type"`
	Questions        int                     `json:"questions"`
	MarksPerQuestion int                     `json:"marks_per_question"`
	TotalMarks       int                     `json:"total_marks"`
	DifficultyMix    DifficultyMix           `json:"difficulty_distribution"`
	EstimatedMinutes int                     `json:"estimated_minutes"`
}

// DroppedSection is a section left out because it did not fit.
type DroppedSection struct {
	ID        string `json:"section"`
	Marks     int    `json:"marks"`
	Remaining int    `json:"remaining"`
}

// Distribution is the outcome of fitting a paper pattern into a marks budget.
type Distribution struct {
	Sections         []SectionAllocation `json:"sections"`
	Dropped          []DroppedSection    `json:"dropped"`
	UnallocatedMarks int                 `json:"unallocated_marks"`
}

// Section returns the included section with the given id.
func (d Distribution) Section(id string) (SectionAllocation, bool) {
	for _, s := range d.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return SectionAllocation{}, false
}

// TotalMarks sums the marks of the included sections.
func (d Distribution) TotalMarks() int {
	total := 0
	for _, s := range d.Sections {
		total += s.TotalMarks
	}
	return total
}

// DistributeSections fits the pattern into totalMarks and tags every included
// section with the difficulty mix. Sections are returned in declaration order.
func DistributeSections(pattern curriculum.PaperPattern, totalMarks int, mix DifficultyMix, mode Mode) (Distribution, error) {
	if totalMarks < 0 {
		return Distribution{}, &InvalidConfigurationError{Reason: fmt.Sprintf("total marks must not be negative, got %d", totalMarks)}
	}
	if err := pattern.Check(); err != nil {
		return Distribution{}, &InvalidConfigurationError{Reason: err.Error()}
	}

	var include []bool
	switch mode {
	case "", ModeGreedy:
		include = fitGreedy(pattern, totalMarks)
	case ModeOptimal:
		include = fitOptimal(pattern, totalMarks)
	default:
		return Distribution{}, fmt.Errorf("unknown distribution mode %q", mode)
	}

	d := Distribution{
		Sections: []SectionAllocation{},
		Dropped:  []DroppedSection{},
	}
	remaining := totalMarks
	for i, s := range pattern {
		marks := s.Marks()
		if !include[i] {
			d.Dropped = append(d.Dropped, DroppedSection{ID: s.ID, Marks: marks, Remaining: remaining})
			continue
		}
		d.Sections = append(d.Sections, SectionAllocation{
			ID:               s.ID,
			Type:             s.Type,
			Questions:        s.Questions,
			MarksPerQuestion: s.MarksPerQuestion,
			TotalMarks:       marks,
			DifficultyMix:    maps.Clone(mix),
			EstimatedMinutes: estimateMinutes(s, mix),
		})
		remaining -= marks
	}
	d.UnallocatedMarks = remaining
	return d, nil
}

func fitGreedy(pattern curriculum.PaperPattern, budget int) []bool {
	include := make([]bool, len(pattern))
	remaining := budget
	for i, s := range pattern {
		if marks := s.Marks(); marks <= remaining {
			include[i] = true
			remaining -= marks
		}
	}
	return include
}

// fitOptimal solves the 0/1 knapsack over section marks. best[i][c] is the
// most marks sections i.. can use within capacity c.
func fitOptimal(pattern curriculum.PaperPattern, budget int) []bool {
	n := len(pattern)
	include := make([]bool, n)
	capacity := min(budget, pattern.TotalMarks())

	best := make([][]int, n+1)
	for i := range best {
		best[i] = make([]int, capacity+1)
	}
	for i := n - 1; i >= 0; i-- {
		marks := pattern[i].Marks()
		for c := 0; c <= capacity; c++ {
			best[i][c] = best[i+1][c]
			if marks <= c {
				best[i][c] = max(best[i][c], marks+best[i+1][c-marks])
			}
		}
	}

	c := capacity
	for i := 0; i < n; i++ {
		marks := pattern[i].Marks()
		if marks <= c && marks+best[i+1][c-marks] == best[i][c] {
			include[i] = true
			c -= marks
		}
	}
	return include
}

func estimateMinutes(s curriculum.Section, mix DifficultyMix) int {
	var minutes float64
	for _, tier := range curriculum.AllDifficulties() {
		share, ok := mix[tier]
		if !ok {
			continue
		}
		minutes += share * float64(s.Questions*profiles[tier].TimePerQuestion[s.Type])
	}
	return int(math.Round(minutes))
}
