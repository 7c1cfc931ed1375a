package paper

import (
	"fmt"
	"math"

	"github.com/p-n-ai/pai-paper/internal/curriculum"
)

// minUnits is the unit count below which a syllabus is flagged as thin.
const minUnits = 3

// mixTolerance is how far a difficulty mix may stray from summing to 1.
const mixTolerance = 0.01

// ValidationResult is advisory. IsValid stays true no matter how many
// warnings or suggestions are attached.
type ValidationResult struct {
	IsValid     bool     `json:"is_valid"`
	Warnings    []string `json:"warnings"`
	Suggestions []string `json:"suggestions"`
}

// Validate compares a request against the canonical marks, duration and unit
// count of the syllabus.
func Validate(entry *curriculum.Entry, totalMarks int, duration string) ValidationResult {
	result := ValidationResult{
		IsValid:     true,
		Warnings:    []string{},
		Suggestions: []string{},
	}
	if entry == nil {
		return result
	}

	if totalMarks != entry.TotalMarks {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Expected %d marks for %s %s %s",
			entry.TotalMarks, entry.Key.Board, entry.Key.ClassLevel, entry.Key.Subject))
	}
	if duration != entry.Duration {
		result.Warnings = append(result.Warnings, "Expected duration: "+entry.Duration)
	}
	if len(entry.Units) < minUnits {
		result.Warnings = append(result.Warnings, "Limited topics available for paper generation")
	}
	return result
}

// Advise appends suggestions describing what allocation had to leave out.
// topicRemainder is the budget left over by topic allocation.
func Advise(result ValidationResult, topicRemainder int, dist Distribution, mix DifficultyMix) ValidationResult {
	suggestions := append([]string{}, result.Suggestions...)
	for _, d := range dist.Dropped {
		suggestions = append(suggestions, fmt.Sprintf(
			"Section %s (%d marks) was left out with %d marks remaining", d.ID, d.Marks, d.Remaining))
	}
	if dist.UnallocatedMarks > 0 {
		suggestions = append(suggestions, fmt.Sprintf(
			"%d marks are not covered by any section; adjust the total or the paper pattern", dist.UnallocatedMarks))
	}
	if topicRemainder > 0 {
		suggestions = append(suggestions, fmt.Sprintf(
			"%d marks were lost to rounding across topics; enable remainder redistribution to assign them", topicRemainder))
	}
	if len(mix) > 0 && math.Abs(mix.Sum()-1) > mixTolerance {
		suggestions = append(suggestions, fmt.Sprintf(
			"Difficulty distribution sums to %.2f; fractions should add up to 1", mix.Sum()))
	}
	result.Suggestions = suggestions
	return result
}
