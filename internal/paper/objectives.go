package paper

import "github.com/p-n-ai/pai-paper/internal/curriculum"

// LearningObjectives lists one objective per topic of the named units, in
// catalog order.
func LearningObjectives(entry *curriculum.Entry, unitNames []string) []string {
	objectives := []string{}
	if entry == nil {
		return objectives
	}
	wanted := make(map[string]bool, len(unitNames))
	for _, n := range unitNames {
		wanted[curriculum.Normalize(n)] = true
	}
	for _, u := range entry.Units {
		if !wanted[u.Name] {
			continue
		}
		for _, t := range u.Topics {
			objectives = append(objectives, "Understand and apply concepts of "+t)
		}
	}
	return objectives
}
