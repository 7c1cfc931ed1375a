package paper

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/p-n-ai/pai-paper/internal/curriculum"
)

// DefaultDifficultyMix is used when a request does not name a mix.
func DefaultDifficultyMix() DifficultyMix {
	return DifficultyMix{
		curriculum.DifficultyEasy:   0.3,
		curriculum.DifficultyMedium: 0.5,
		curriculum.DifficultyHard:   0.2,
	}
}

// Request asks for the blueprint of one paper.
type Request struct {
	Board                 string        `json:"board"`
	ClassLevel            string        `json:"class_level"`
	Subject               string        `json:"subject"`
	TotalMarks            int           `json:"total_marks"`
	Duration              string        `json:"duration"`
	TopicPreferences      []string      `json:"topic_preferences,omitempty"`
	DifficultyMix         DifficultyMix `json:"difficulty_mix,omitempty"`
	Mode                  Mode          `json:"mode,omitempty"`
	RedistributeRemainder bool          `json:"redistribute_remainder,omitempty"`
}

// Blueprint is the allocation plan for a paper. Question text is filled in
// elsewhere.
type Blueprint struct {
	ID                    uuid.UUID         `json:"id"`
	Board                 string            `json:"board"`
	ClassLevel            string            `json:"class_level"`
	Subject               string            `json:"subject"`
	TotalMarks            int               `json:"total_marks"`
	Duration              string            `json:"duration"`
	Mode                  Mode              `json:"mode"`
	TopicAllocations      []TopicAllocation `json:"topic_allocations"`
	UnallocatedTopicMarks int               `json:"unallocated_topic_marks"`
	SectionDistribution   Distribution      `json:"section_distribution"`
	Validation            ValidationResult  `json:"validation"`
	Instructions          string            `json:"instructions"`
	LearningObjectives    []string          `json:"learning_objectives"`
	GeneratedAt           time.Time         `json:"generated_at"`
}

// EngineConfig holds dependencies for the blueprint engine.
type EngineConfig struct {
	Catalog     *curriculum.Catalog
	DefaultMode Mode             // used when a request names no mode (default greedy)
	Now         func() time.Time // default time.Now
}

// Engine turns requests into blueprints. It is safe for concurrent use.
type Engine struct {
	catalog     *curriculum.Catalog
	defaultMode Mode
	now         func() time.Time
}

// NewEngine creates a new blueprint engine.
func NewEngine(cfg EngineConfig) *Engine {
	mode := cfg.DefaultMode
	if mode == "" {
		mode = ModeGreedy
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Engine{
		catalog:     cfg.Catalog,
		defaultMode: mode,
		now:         now,
	}
}

// Catalog returns the curriculum catalog the engine reads from.
func (e *Engine) Catalog() *curriculum.Catalog {
	return e.catalog
}

// Blueprint resolves the syllabus for req and runs topic allocation, section
// distribution, validation and instruction rendering over it.
func (e *Engine) Blueprint(ctx context.Context, req Request) (*Blueprint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := e.checkRequest(&req); err != nil {
		return nil, err
	}

	entry, err := e.catalog.Lookup(req.Board, req.ClassLevel, req.Subject)
	if err != nil {
		return nil, err
	}
	if req.Duration == "" {
		req.Duration = entry.Duration
	}

	var opts []AllocatorOption
	if req.RedistributeRemainder {
		opts = append(opts, WithRemainderRedistribution())
	}
	topics, err := SelectTopics(entry, req.TotalMarks, req.TopicPreferences, opts...)
	if err != nil {
		return nil, err
	}
	dist, err := DistributeSections(entry.Pattern, req.TotalMarks, req.DifficultyMix, req.Mode)
	if err != nil {
		return nil, err
	}

	unallocated := req.TotalMarks - AllocatedMarks(topics)
	validation := Validate(entry, req.TotalMarks, req.Duration)
	validation = Advise(validation, unallocated, dist, req.DifficultyMix)

	unitNames := make([]string, len(topics))
	for i, t := range topics {
		unitNames[i] = t.UnitName
	}

	bp := &Blueprint{
		ID:                    uuid.New(),
		Board:                 entry.Key.Board,
		ClassLevel:            entry.Key.ClassLevel,
		Subject:               entry.Key.Subject,
		TotalMarks:            req.TotalMarks,
		Duration:              req.Duration,
		Mode:                  req.Mode,
		TopicAllocations:      topics,
		UnallocatedTopicMarks: unallocated,
		SectionDistribution:   dist,
		Validation:            validation,
		Instructions:          ComposeInstructions(entry.Key.Board, entry.Key.ClassLevel, entry.Key.Subject, req.TotalMarks, req.Duration),
		LearningObjectives:    LearningObjectives(entry, unitNames),
		GeneratedAt:           e.now().UTC(),
	}

	slog.Info("blueprint generated",
		"id", bp.ID,
		"curriculum", entry.Key.String(),
		"total_marks", bp.TotalMarks,
		"mode", bp.Mode,
		"topics", len(topics),
		"sections", len(dist.Sections),
		"warnings", len(validation.Warnings),
	)
	return bp, nil
}

// checkRequest rejects malformed requests and fills in defaults.
func (e *Engine) checkRequest(req *Request) error {
	req.Board = strings.TrimSpace(req.Board)
	req.ClassLevel = strings.TrimSpace(req.ClassLevel)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Duration = strings.TrimSpace(req.Duration)

	switch {
	case req.Board == "":
		return &InvalidRequestError{Field: "board", Reason: "is required"}
	case req.ClassLevel == "":
		return &InvalidRequestError{Field: "class_level", Reason: "is required"}
	case req.Subject == "":
		return &InvalidRequestError{Field: "subject", Reason: "is required"}
	case req.TotalMarks <= 0:
		return &InvalidRequestError{Field: "total_marks", Reason: fmt.Sprintf("must be positive, got %d", req.TotalMarks)}
	case req.TotalMarks > curriculum.MaxMarks:
		return &InvalidRequestError{Field: "total_marks", Reason: fmt.Sprintf("must be at most %d, got %d", curriculum.MaxMarks, req.TotalMarks)}
	}

	if req.Mode == "" {
		req.Mode = e.defaultMode
	}
	mode, err := ParseMode(string(req.Mode))
	if err != nil {
		return &InvalidRequestError{Field: "mode", Reason: err.Error()}
	}
	req.Mode = mode

	if len(req.DifficultyMix) == 0 {
		req.DifficultyMix = DefaultDifficultyMix()
	}
	for tier, share := range req.DifficultyMix {
		if !tier.Valid() {
			return &InvalidRequestError{Field: "difficulty_mix", Reason: fmt.Sprintf("unknown difficulty tier %q", tier)}
		}
		if share < 0 {
			return &InvalidRequestError{Field: "difficulty_mix", Reason: fmt.Sprintf("%s share must not be negative", tier)}
		}
	}
	return nil
}
