// Package export renders blueprints into formats people open outside the API.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/p-n-ai/pai-paper/internal/curriculum"
	"github.com/p-n-ai/pai-paper/internal/paper"
)

// Sheet names, in workbook order.
const (
	SheetSummary    = "Summary"
	SheetTopics     = "Topics"
	SheetSections   = "Sections"
	SheetValidation = "Validation"
)

// ContentTypeXLSX is the media type of a workbook.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WriteWorkbook writes bp to w as an .xlsx workbook.
func WriteWorkbook(w io.Writer, bp *paper.Blueprint) error {
	if bp == nil {
		return fmt.Errorf("no blueprint to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("renaming default sheet: %w", err)
	}
	for _, name := range []string{SheetTopics, SheetSections, SheetValidation} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", name, err)
		}
	}

	sheets := []struct {
		name    string
		columns []any
		rows    [][]any
	}{
		{SheetSummary, []any{"Field", "Value"}, summaryRows(bp)},
		{SheetTopics, []any{"Unit", "Topics", "Allocated Marks", "Difficulty", "Question Types"}, topicRows(bp)},
		{SheetSections, []any{"Section", "Type", "Questions", "Marks per Question", "Total Marks", "Estimated Minutes", "Difficulty Mix"}, sectionRows(bp)},
		{SheetValidation, []any{"Kind", "Message"}, validationRows(bp)},
	}
	for _, s := range sheets {
		if err := writeTable(f, s.name, header, s.columns, s.rows); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeTable(f *excelize.File, sheet string, headerStyle int, columns []any, rows [][]any) error {
	if err := f.SetSheetRow(sheet, "A1", &columns); err != nil {
		return fmt.Errorf("%s header: %w", sheet, err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("%s header style: %w", sheet, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+2, err)
		}
	}
	last, err := excelize.ColumnNumberToName(len(columns))
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", last, 22)
}

func summaryRows(bp *paper.Blueprint) [][]any {
	return [][]any{
		{"Blueprint", bp.ID.String()},
		{"Board", bp.Board},
		{"Class", bp.ClassLevel},
		{"Subject", bp.Subject},
		{"Total Marks", bp.TotalMarks},
		{"Duration", bp.Duration},
		{"Distribution Mode", string(bp.Mode)},
		{"Section Marks", bp.SectionDistribution.TotalMarks()},
		{"Unallocated Topic Marks", bp.UnallocatedTopicMarks},
		{"Generated At", bp.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
		{"Instructions", bp.Instructions},
	}
}

func topicRows(bp *paper.Blueprint) [][]any {
	rows := make([][]any, 0, len(bp.TopicAllocations))
	for _, t := range bp.TopicAllocations {
		types := make([]string, len(t.QuestionTypes))
		for i, qt := range t.QuestionTypes {
			types[i] = string(qt)
		}
		rows = append(rows, []any{
			t.UnitName,
			strings.Join(t.Topics, ", "),
			t.AllocatedMarks,
			string(t.Difficulty),
			strings.Join(types, ", "),
		})
	}
	return rows
}

func sectionRows(bp *paper.Blueprint) [][]any {
	rows := make([][]any, 0, len(bp.SectionDistribution.Sections))
	for _, s := range bp.SectionDistribution.Sections {
		rows = append(rows, []any{s.ID, string(s.Type), s.Questions, s.MarksPerQuestion, s.TotalMarks, s.EstimatedMinutes, difficultyLabel(s.DifficultyMix)})
	}
	return rows
}

func validationRows(bp *paper.Blueprint) [][]any {
	var rows [][]any
	for _, w := range bp.Validation.Warnings {
		rows = append(rows, []any{"warning", w})
	}
	for _, s := range bp.Validation.Suggestions {
		rows = append(rows, []any{"suggestion", s})
	}
	for _, o := range bp.LearningObjectives {
		rows = append(rows, []any{"objective", o})
	}
	return rows
}

// difficultyLabel formats a mix as "easy 30%, medium 50%, hard 20%".
func difficultyLabel(mix paper.DifficultyMix) string {
	var parts []string
	for _, tier := range curriculum.AllDifficulties() {
		if share, ok := mix[tier]; ok {
			parts = append(parts, fmt.Sprintf("%s %.0f%%", tier, share*100))
		}
	}
	return strings.Join(parts, ", ")
}
