package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/disha/internal/api"
)

func TestWriteReport(t *testing.T) {
	report := &api.Report{
		ID:             "rep-1",
		Level:          "10",
		SelectedCareer: "Engineer",
		CreatedAt:      time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		Answers:        map[string]string{"p2": "B", "p1": "A"},
		Results: &api.Result{
			IndividualResults: map[string]api.CategoryResult{
				"personality": {TopCareers: []string{"Engineer", "Doctor"}},
			},
			SubjectRecommendations: api.SubjectRecommendations{Core: []string{"Math"}},
		},
		Activities: []api.Activity{
			{ID: "act-1", Title: "Build a bridge", Instructions: "Use straws."},
		},
	}

	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := WriteReport(report, path); err != nil {
		t.Fatalf("write report: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	for _, sheet := range []string{"Summary", "Answers", "Results", "Activities"} {
		if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
			t.Errorf("missing sheet %q", sheet)
		}
	}

	// Answers are written in sorted id order under the header.
	if got, _ := f.GetCellValue("Answers", "A2"); got != "p1" {
		t.Errorf("first answer row id = %q, want p1", got)
	}
	if got, _ := f.GetCellValue("Answers", "B3"); got != "B" {
		t.Errorf("second answer value = %q, want B", got)
	}

	if got, _ := f.GetCellValue("Summary", "B1"); got != "rep-1" {
		t.Errorf("summary report id = %q, want rep-1", got)
	}
}

func TestWriteReportSkipsOptionalSheets(t *testing.T) {
	report := &api.Report{ID: "rep-2", Level: "12"}

	path := filepath.Join(t.TempDir(), "bare.xlsx")
	if err := WriteReport(report, path); err != nil {
		t.Fatalf("write report: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	if idx, _ := f.GetSheetIndex("Results"); idx >= 0 {
		t.Error("expected no Results sheet without results")
	}
	if idx, _ := f.GetSheetIndex("Activities"); idx >= 0 {
		t.Error("expected no Activities sheet without activities")
	}
}
