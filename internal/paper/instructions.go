package paper

import (
	"strings"
	"text/template"
)

var instructionsTmpl = template.Must(template.New("instructions").Parse(`
{{.Board}} {{.ClassLevel}} {{.Subject}} Examination
Total Marks: {{.TotalMarks}}
Duration: {{.Duration}}

General Instructions:
1. All questions are compulsory.
2. Marks are indicated against each question.
3. Use of calculator is not allowed.
4. Draw neat diagrams wherever required.
5. Write your answers clearly and legibly.
`))

// ComposeInstructions renders the cover instructions of a paper.
func ComposeInstructions(board, classLevel, subject string, totalMarks int, duration string) string {
	var b strings.Builder
	// Writes to a strings.Builder never fail.
	_ = instructionsTmpl.Execute(&b, struct {
		Board, ClassLevel, Subject string
		TotalMarks                 int
		Duration                   string
	}{board, classLevel, subject, totalMarks, duration})
	return strings.TrimSpace(b.String())
}
