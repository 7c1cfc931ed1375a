package curriculum

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

const (
	defaultTotalMarks = 80
	defaultDuration   = "3 hours"
)

// SchemaError lists every schema violation found in a curriculum document.
type SchemaError struct {
	Problems []string
}

func (e *SchemaError) Error() string {
	return "curriculum document does not match schema: " + strings.Join(e.Problems, "; ")
}

type document struct {
	Board        string          `yaml:"board"`
	ClassLevel   string          `yaml:"class_level"`
	Subject      string          `yaml:"subject"`
	TotalMarks   int             `yaml:"total_marks"`
	Duration     string          `yaml:"duration"`
	Units        []documentUnit  `yaml:"units"`
	PaperPattern documentPattern `yaml:"paper_pattern"`
}

type documentUnit struct {
	Name          string   `yaml:"name"`
	Topics        []string `yaml:"topics"`
	Weightage     int      `yaml:"weightage"`
	Difficulty    string   `yaml:"difficulty"`
	QuestionTypes []string `yaml:"question_types"`
}

type documentSection struct {
	Type             string `yaml:"type"`
	Questions        int    `yaml:"questions"`
	MarksPerQuestion int    `yaml:"marks_per_question"`
}

type documentPattern []Section

// UnmarshalYAML keeps sections in the order they are written in the mapping.
func (p *documentPattern) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: paper_pattern must be a mapping of section to layout", value.Line)
	}
	pattern := make(documentPattern, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		var s documentSection
		if err := value.Content[i+1].Decode(&s); err != nil {
			return fmt.Errorf("section %q: %w", value.Content[i].Value, err)
		}
		qt, err := ParseQuestionType(s.Type)
		if err != nil {
			return fmt.Errorf("section %q: %w", value.Content[i].Value, err)
		}
		pattern = append(pattern, Section{
			ID:               Normalize(value.Content[i].Value),
			Type:             qt,
			Questions:        s.Questions,
			MarksPerQuestion: s.MarksPerQuestion,
		})
	}
	*p = pattern
	return nil
}

// ParseDocument validates a YAML or JSON curriculum document against the
// bundled schema and converts it into an Entry, filling in defaults.
func ParseDocument(data []byte) (Entry, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Entry{}, fmt.Errorf("parsing document: %w", err)
	}
	if err := validateSchema(raw); err != nil {
		return Entry{}, err
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Entry{}, fmt.Errorf("decoding document: %w", err)
	}
	return doc.entry()
}

// DocumentJSON converts a YAML or JSON curriculum document into JSON,
// keeping mapping keys in document order.
func DocumentJSON(data []byte) ([]byte, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	var buf bytes.Buffer
	if err := writeJSON(&buf, &root); err != nil {
		return nil, fmt.Errorf("converting document: %w", err)
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return writeJSON(buf, n.Content[0])
	case yaml.AliasNode:
		return writeJSON(buf, n.Alias)
	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(n.Content[i].Value)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := writeJSON(buf, n.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, item := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return err
		}
		out, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(out)
	default:
		buf.WriteString("null")
	}
	return nil
}

// IsDocument reports whether data looks like a curriculum document at all.
func IsDocument(data []byte) bool {
	var partial struct {
		Board string `yaml:"board"`
	}
	if err := yaml.Unmarshal(data, &partial); err != nil {
		return false
	}
	return partial.Board != ""
}

func (d document) entry() (Entry, error) {
	e := Entry{
		Key:        NewKey(d.Board, d.ClassLevel, d.Subject),
		TotalMarks: d.TotalMarks,
		Duration:   strings.TrimSpace(d.Duration),
		Pattern:    PaperPattern(d.PaperPattern),
	}
	if e.TotalMarks == 0 {
		e.TotalMarks = defaultTotalMarks
	}
	if e.Duration == "" {
		e.Duration = defaultDuration
	}

	for _, du := range d.Units {
		u := Unit{
			Name:      Normalize(du.Name),
			Weightage: du.Weightage,
		}
		for _, t := range du.Topics {
			u.Topics = append(u.Topics, Normalize(t))
		}

		u.Difficulty = DifficultyMedium
		if du.Difficulty != "" {
			tier, err := ParseDifficulty(du.Difficulty)
			if err != nil {
				return Entry{}, fmt.Errorf("unit %q: %w", du.Name, err)
			}
			u.Difficulty = tier
		}

		if len(du.QuestionTypes) == 0 {
			u.QuestionTypes = AllQuestionTypes()
		}
		for _, s := range du.QuestionTypes {
			qt, err := ParseQuestionType(s)
			if err != nil {
				return Entry{}, fmt.Errorf("unit %q: %w", du.Name, err)
			}
			u.QuestionTypes = append(u.QuestionTypes, qt)
		}
		e.Units = append(e.Units, u)
	}
	return e, nil
}

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	data, err := bundledFS.ReadFile("curriculum.schema.json")
	if err != nil {
		return nil, err
	}
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
})

func validateSchema(doc any) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compiling curriculum schema: %w", err)
	}
	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("validating document: %w", err)
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		problems = append(problems, re.String())
	}
	return &SchemaError{Problems: problems}
}
