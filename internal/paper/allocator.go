package paper

import (
	"fmt"
	"math"
	"sort"

	"github.com/p-n-ai/pai-paper/internal/curriculum"
)

// TopicAllocation is the share of the marks budget given to one unit.
type TopicAllocation struct {
	UnitName       string                    `json:"unit_name"`
	Topics         []string                  `json:"topics"`
	AllocatedMarks int                       `json:"allocated_marks"`
	Difficulty     curriculum.Difficulty     `json:"difficulty"`
	QuestionTypes  []curriculum.QuestionType `json:"question_types"`
}

type allocatorOptions struct {
	redistribute bool
}

// AllocatorOption changes how SelectTopics apportions marks.
type AllocatorOption func(*allocatorOptions)

// WithRemainderRedistribution hands the marks lost to floor rounding back out,
// one mark each, to the units with the largest fractional remainders. Ties go
// to the unit declared first. The allocations then sum exactly to the budget.
func WithRemainderRedistribution() AllocatorOption {
	return func(o *allocatorOptions) { o.redistribute = true }
}

// SelectTopics picks the units to examine and apportions totalMarks across
// them by weightage. With no preferences every unit is selected; otherwise
// only units whose name matches a preference exactly. Units keep catalog order.
//
// Each unit gets floor(weightage / W * totalMarks) where W is the weightage sum
// of the selected units, so the allocations may add up to less than totalMarks.
func SelectTopics(entry *curriculum.Entry, totalMarks int, preferences []string, opts ...AllocatorOption) ([]TopicAllocation, error) {
	if entry == nil {
		return nil, &InvalidConfigurationError{Reason: "no curriculum entry"}
	}
	if totalMarks < 0 {
		return nil, &InvalidConfigurationError{Reason: fmt.Sprintf("total marks must not be negative, got %d", totalMarks)}
	}
	var o allocatorOptions
	for _, opt := range opts {
		opt(&o)
	}

	selected := selectUnits(entry.Units, preferences)
	totalWeight := 0
	for _, u := range selected {
		if u.Weightage < 0 || u.Weightage > math.MaxInt-totalWeight {
			return nil, &InvalidConfigurationError{Reason: fmt.Sprintf("unit %q of %s has weightage %d", u.Name, entry.Key, u.Weightage)}
		}
		totalWeight += u.Weightage
	}
	if totalWeight <= 0 {
		return nil, &InvalidConfigurationError{
			Reason: fmt.Sprintf("no units of %s match the topic preferences %q", entry.Key, preferences),
		}
	}
	// Every weightage * totalMarks product must fit in an int.
	if totalMarks > math.MaxInt/totalWeight {
		return nil, &InvalidConfigurationError{
			Reason: fmt.Sprintf("total marks %d are too large to apportion across weightage %d", totalMarks, totalWeight),
		}
	}

	allocations := make([]TopicAllocation, len(selected))
	remainders := make([]int, len(selected))
	allocated := 0
	for i, u := range selected {
		share := u.Weightage * totalMarks
		allocations[i] = TopicAllocation{
			UnitName:       u.Name,
			Topics:         append([]string(nil), u.Topics...),
			AllocatedMarks: share / totalWeight,
			Difficulty:     u.Difficulty,
			QuestionTypes:  append([]curriculum.QuestionType(nil), u.QuestionTypes...),
		}
		remainders[i] = share % totalWeight
		allocated += allocations[i].AllocatedMarks
	}

	if o.redistribute {
		order := make([]int, len(selected))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			return remainders[order[a]] > remainders[order[b]]
		})
		for k := 0; k < totalMarks-allocated; k++ {
			allocations[order[k]].AllocatedMarks++
		}
	}

	return allocations, nil
}

// AllocatedMarks sums the marks across allocations.
func AllocatedMarks(allocations []TopicAllocation) int {
	total := 0
	for _, a := range allocations {
		total += a.AllocatedMarks
	}
	return total
}

func selectUnits(units []curriculum.Unit, preferences []string) []curriculum.Unit {
	if len(preferences) == 0 {
		return units
	}

	wanted := make(map[string]bool, len(preferences))
	for _, p := range preferences {
		wanted[curriculum.Normalize(p)] = true
	}
	var selected []curriculum.Unit
	for _, u := range units {
		if wanted[u.Name] {
			selected = append(selected, u)
		}
	}
	return selected
}
