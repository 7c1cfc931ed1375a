// Package curriculum holds the immutable curriculum catalog and the loaders
// that build it from bundled, file and database documents.
package curriculum

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound is matched by every NotFoundError.
var ErrNotFound = errors.New("curriculum not found")

// NotFoundError reports a (board, class level, subject) key absent from the catalog.
type NotFoundError struct {
	Key Key
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("syllabus not found for %s %s %s", e.Key.Board, e.Key.ClassLevel, e.Key.Subject)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Catalog is a read-only lookup table of curriculum entries. It is built once
// and never mutated, so concurrent readers need no locking.
type Catalog struct {
	entries map[Key]*Entry
	keys    []Key
}

// NewCatalog validates the entries and builds a catalog. Duplicate keys are rejected.
func NewCatalog(entries ...Entry) (*Catalog, error) {
	c := &Catalog{
		entries: make(map[Key]*Entry, len(entries)),
		keys:    make([]Key, 0, len(entries)),
	}

	var problems []string
	for i := range entries {
		e := entries[i].clone()
		e.Key = NewKey(e.Key.Board, e.Key.ClassLevel, e.Key.Subject)
		for j := range e.Units {
			e.Units[j].Name = Normalize(e.Units[j].Name)
		}
		if _, exists := c.entries[e.Key]; exists {
			problems = append(problems, fmt.Sprintf("duplicate curriculum %s", e.Key))
			continue
		}
		if errs := validateEntry(e); len(errs) > 0 {
			problems = append(problems, errs...)
			continue
		}
		c.entries[e.Key] = e
		c.keys = append(c.keys, e.Key)
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("invalid curriculum:\n  %s", strings.Join(problems, "\n  "))
	}

	sort.Slice(c.keys, func(i, j int) bool {
		return c.keys[i].String() < c.keys[j].String()
	})
	return c, nil
}

// Lookup returns a copy of the entry for the given key.
func (c *Catalog) Lookup(board, classLevel, subject string) (*Entry, error) {
	key := NewKey(board, classLevel, subject)
	e, ok := c.entries[key]
	if !ok {
		return nil, &NotFoundError{Key: key}
	}
	return e.clone(), nil
}

// Keys returns every key in the catalog, sorted.
func (c *Catalog) Keys() []Key {
	return append([]Key(nil), c.keys...)
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.keys)
}

func validateEntry(e *Entry) []string {
	var errs []string
	fail := func(format string, args ...any) {
		errs = append(errs, e.Key.String()+": "+fmt.Sprintf(format, args...))
	}

	if e.Key.Board == "" || e.Key.ClassLevel == "" || e.Key.Subject == "" {
		fail("board, class level and subject are required")
	}
	if e.TotalMarks <= 0 || e.TotalMarks > MaxMarks {
		fail("total marks must be between 1 and %d, got %d", MaxMarks, e.TotalMarks)
	}
	if strings.TrimSpace(e.Duration) == "" {
		fail("duration is required")
	}
	if len(e.Units) == 0 {
		fail("at least one unit is required")
	}

	names := make(map[string]bool, len(e.Units))
	for _, u := range e.Units {
		if u.Name == "" {
			fail("unit name is required")
			continue
		}
		if names[u.Name] {
			fail("duplicate unit %q", u.Name)
		}
		names[u.Name] = true
		if u.Weightage <= 0 || u.Weightage > MaxWeightage {
			fail("unit %q weightage must be an integer between 1 and %d, got %d", u.Name, MaxWeightage, u.Weightage)
		}
		if !u.Difficulty.Valid() {
			fail("unit %q has unknown difficulty tier %q", u.Name, u.Difficulty)
		}
		for _, qt := range u.QuestionTypes {
			if !qt.Valid() {
				fail("unit %q has unknown question type %q", u.Name, qt)
			}
		}
	}

	sections := make(map[string]bool, len(e.Pattern))
	for _, s := range e.Pattern {
		if s.ID == "" {
			fail("section id is required")
			continue
		}
		if sections[s.ID] {
			fail("duplicate section %q", s.ID)
		}
		sections[s.ID] = true
		if !s.Type.Valid() {
			fail("section %q has unknown question type %q", s.ID, s.Type)
		}
	}
	if err := e.Pattern.Check(); err != nil {
		fail("%v", err)
	}
	return errs
}
