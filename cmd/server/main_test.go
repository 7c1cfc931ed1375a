package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/p-n-ai/pai-paper/internal/curriculum"
	"github.com/p-n-ai/pai-paper/internal/export"
	"github.com/p-n-ai/pai-paper/internal/paper"
)

func testMux(t *testing.T, ready func(context.Context) error) *http.ServeMux {
	t.Helper()
	catalog, err := curriculum.Load(context.Background(), curriculum.Bundled())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return newMux(paper.NewEngine(paper.EngineConfig{Catalog: catalog}), ready)
}

func TestHealthEndpoints(t *testing.T) {
	mux := testMux(t, nil)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "healthz returns 200",
			path:       "/healthz",
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"ok"}`,
		},
		{
			name:       "readyz returns 200",
			path:       "/readyz",
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"ready"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()

			mux.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := strings.TrimSpace(rec.Body.String()); got != tt.wantBody {
				t.Errorf("body = %q, want %q", got, tt.wantBody)
			}
		})
	}
}

func TestReadyz_NotReady(t *testing.T) {
	mux := testMux(t, func(context.Context) error { return errors.New("database down") })

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}

func TestListCurricula(t *testing.T) {
	mux := testMux(t, nil)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/curricula", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Curricula []curriculumSummary `json:"curricula"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(body.Curricula) != 3 {
		t.Fatalf("len(curricula) = %d, want 3", len(body.Curricula))
	}
	first := body.Curricula[0]
	if first.Board != "CBSE" || first.Subject != "Mathematics" || first.Units != 15 || first.Sections != 4 {
		t.Errorf("curricula[0] = %+v", first)
	}
}

func TestGetCurriculum(t *testing.T) {
	mux := testMux(t, nil)

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"found", "/v1/curricula/ICSE/class_10/Mathematics", http.StatusOK},
		{"unknown subject", "/v1/curricula/ICSE/class_10/Latin", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d; body %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestCreateBlueprint(t *testing.T) {
	mux := testMux(t, nil)

	body := `{"board":"CBSE","class_level":"class_10","subject":"Mathematics","total_marks":80,"duration":"2 hours"}`
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/blueprints", strings.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var bp paper.Blueprint
	if err := json.Unmarshal(rec.Body.Bytes(), &bp); err != nil {
		t.Fatalf("decoding blueprint: %v", err)
	}
	if len(bp.TopicAllocations) != 15 || bp.TopicAllocations[0].AllocatedMarks != 7 {
		t.Errorf("topic allocations = %+v", bp.TopicAllocations)
	}
	if len(bp.SectionDistribution.Sections) != 4 {
		t.Errorf("sections = %+v", bp.SectionDistribution.Sections)
	}
	if !bp.Validation.IsValid || len(bp.Validation.Warnings) != 1 || bp.Validation.Warnings[0] != "Expected duration: 3 hours" {
		t.Errorf("validation = %+v", bp.Validation)
	}
}

func TestCreateBlueprint_Workbook(t *testing.T) {
	mux := testMux(t, nil)

	body := `{"board":"CBSE","class_level":"class_10","subject":"Mathematics","total_marks":80}`
	req := httptest.NewRequest(http.MethodPost, "/v1/blueprints", strings.NewReader(body))
	req.Header.Set("Accept", export.ContentTypeXLSX)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != export.ContentTypeXLSX {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.HasPrefix(cd, `attachment; filename="blueprint-`) {
		t.Errorf("Content-Disposition = %q", cd)
	}

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()
	if len(f.GetSheetList()) != 4 {
		t.Errorf("sheets = %v", f.GetSheetList())
	}
}

func TestCreateBlueprint_WorkbookFailure(t *testing.T) {
	catalog, err := curriculum.Load(context.Background(), curriculum.Bundled())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	s := &server{
		engine: paper.NewEngine(paper.EngineConfig{Catalog: catalog}),
		writeWorkbook: func(w io.Writer, _ *paper.Blueprint) error {
			w.Write([]byte("PK partial"))
			return errors.New("disk full")
		},
	}

	body := `{"board":"CBSE","class_level":"class_10","subject":"Mathematics","total_marks":80}`
	req := httptest.NewRequest(http.MethodPost, "/v1/blueprints", strings.NewReader(body))
	req.Header.Set("Accept", export.ContentTypeXLSX)
	rec := httptest.NewRecorder()
	s.handleCreateBlueprint(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != "" {
		t.Errorf("Content-Disposition = %q, want none", cd)
	}
	var got errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding body %q: %v", rec.Body.String(), err)
	}
	if !strings.Contains(got.Error, "disk full") {
		t.Errorf("error = %q, want it to mention disk full", got.Error)
	}
}

func TestCreateBlueprint_Errors(t *testing.T) {
	mux := testMux(t, nil)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"malformed json", `{"board":`, http.StatusBadRequest},
		{"unknown difficulty", `{"board":"CBSE","class_level":"class_10","subject":"Mathematics","total_marks":80,"difficulty_mix":{"brutal":1}}`, http.StatusBadRequest},
		{"missing subject", `{"board":"CBSE","class_level":"class_10","total_marks":80}`, http.StatusBadRequest},
		{"zero marks", `{"board":"CBSE","class_level":"class_10","subject":"Mathematics"}`, http.StatusBadRequest},
		{"huge marks", `{"board":"CBSE","class_level":"class_10","subject":"Mathematics","total_marks":2000000000000000000,"redistribute_remainder":true}`, http.StatusBadRequest},
		{"unknown mode", `{"board":"CBSE","class_level":"class_10","subject":"Mathematics","total_marks":80,"mode":"random"}`, http.StatusBadRequest},
		{"unknown syllabus", `{"board":"CBSE","class_level":"class_12","subject":"Mathematics","total_marks":80}`, http.StatusNotFound},
		{"no matching topics", `{"board":"CBSE","class_level":"class_10","subject":"Mathematics","total_marks":80,"topic_preferences":["Calculus"]}`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/blueprints", strings.NewReader(tt.body)))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d; body %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			var body errorBody
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body.Error == "" {
				t.Errorf("error body = %q", rec.Body.String())
			}
		})
	}
}

func TestCreateBlueprint_MethodNotAllowed(t *testing.T) {
	mux := testMux(t, nil)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/blueprints", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}
