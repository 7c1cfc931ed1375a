package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/p-n-ai/pai-paper/internal/curriculum"
	"github.com/p-n-ai/pai-paper/internal/export"
	"github.com/p-n-ai/pai-paper/internal/paper"
)

const maxRequestBytes = 1 << 20

type server struct {
	engine        *paper.Engine
	ready         func(context.Context) error
	writeWorkbook func(io.Writer, *paper.Blueprint) error
}

type curriculumSummary struct {
	curriculum.Key
	TotalMarks int    `json:"total_marks"`
	Duration   string `json:"duration"`
	Units      int    `json:"units"`
	Sections   int    `json:"sections"`
}

// newMux creates the HTTP router for health checks and the blueprint API.
func newMux(engine *paper.Engine, ready func(context.Context) error) *http.ServeMux {
	s := &server{engine: engine, ready: ready, writeWorkbook: export.WriteWorkbook}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)
	mux.HandleFunc("GET /v1/curricula", s.handleListCurricula)
	mux.HandleFunc("GET /v1/curricula/{board}/{class_level}/{subject}", s.handleGetCurriculum)
	mux.HandleFunc("POST /v1/blueprints", s.handleCreateBlueprint)
	return mux
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if s.ready != nil {
		if err := s.ready(r.Context()); err != nil {
			slog.Warn("not ready", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *server) handleListCurricula(w http.ResponseWriter, r *http.Request) {
	catalog := s.engine.Catalog()
	out := make([]curriculumSummary, 0, catalog.Len())
	for _, k := range catalog.Keys() {
		e, err := catalog.Lookup(k.Board, k.ClassLevel, k.Subject)
		if err != nil {
			writeError(w, err)
			return
		}
		out = append(out, curriculumSummary{
			Key:        k,
			TotalMarks: e.TotalMarks,
			Duration:   e.Duration,
			Units:      len(e.Units),
			Sections:   len(e.Pattern),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"curricula": out})
}

func (s *server) handleGetCurriculum(w http.ResponseWriter, r *http.Request) {
	e, err := s.engine.Catalog().Lookup(r.PathValue("board"), r.PathValue("class_level"), r.PathValue("subject"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *server) handleCreateBlueprint(w http.ResponseWriter, r *http.Request) {
	var req paper.Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed request: " + err.Error()})
		return
	}

	bp, err := s.engine.Blueprint(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	if wantsWorkbook(r) {
		var buf bytes.Buffer
		if err := s.writeWorkbook(&buf, bp); err != nil {
			writeError(w, fmt.Errorf("exporting blueprint %s: %w", bp.ID, err))
			return
		}
		w.Header().Set("Content-Type", export.ContentTypeXLSX)
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="blueprint-%s.xlsx"`, bp.ID))
		if _, err := buf.WriteTo(w); err != nil {
			slog.Warn("writing workbook response", "id", bp.ID, "error", err)
		}
		return
	}
	writeJSON(w, http.StatusCreated, bp)
}

func wantsWorkbook(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), export.ContentTypeXLSX)
}

type errorBody struct {
	Error string `json:"error"`
}

// writeError maps domain errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, curriculum.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, paper.ErrInvalidConfiguration):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, paper.ErrInvalidRequest):
		status = http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}
