// Package export writes saved reports to spreadsheet workbooks so they
// can be shared outside the terminal.
package export

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/disha/internal/api"
)

// WriteReport writes the report to an .xlsx workbook at path.
func WriteReport(report *api.Report, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummarySheet(f, report); err != nil {
		return err
	}
	if err := writeAnswersSheet(f, report); err != nil {
		return err
	}
	if report.Results != nil {
		if err := writeResultsSheet(f, report.Results); err != nil {
			return err
		}
	}
	if len(report.Activities) > 0 {
		if err := writeActivitiesSheet(f, report); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, report *api.Report) error {
	const sheet = "Summary"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}

	rows := [][]any{
		{"Report ID", report.ID},
		{"Grade level", report.Level},
		{"Selected career", report.SelectedCareer},
		{"Created", report.CreatedAt.Format("2006-01-02 15:04")},
		{"Answered questions", len(report.Answers)},
	}
	if len(report.EvaluationResults) > 0 {
		rows = append(rows, []any{"Activity score", report.EvaluationResults[0].Overall.Score})
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write summary row %d: %w", i+1, err)
		}
	}
	return nil
}

func writeAnswersSheet(f *excelize.File, report *api.Report) error {
	const sheet = "Answers"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create answers sheet: %w", err)
	}

	header := []any{"Question ID", "Answer"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	// Stable order for reproducible workbooks.
	ids := make([]string, 0, len(report.Answers))
	for id := range report.Answers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for i, id := range ids {
		row := []any{id, report.Answers[id]}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write answer row: %w", err)
		}
	}
	return nil
}

func writeResultsSheet(f *excelize.File, result *api.Result) error {
	const sheet = "Results"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create results sheet: %w", err)
	}

	rowIdx := 1
	writeRow := func(values ...any) error {
		cell, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return err
		}
		rowIdx++
		return f.SetSheetRow(sheet, cell, &values)
	}

	categories := make([]string, 0, len(result.IndividualResults))
	for cat := range result.IndividualResults {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	for _, cat := range categories {
		cr := result.IndividualResults[cat]
		if err := writeRow(cat); err != nil {
			return err
		}
		for i, career := range cr.TopCareers {
			if err := writeRow("", fmt.Sprintf("#%d", i+1), career); err != nil {
				return err
			}
		}
		rowIdx++ // blank separator row
	}

	if err := writeRow("Core subjects"); err != nil {
		return err
	}
	for _, subj := range result.SubjectRecommendations.Core {
		if err := writeRow("", subj); err != nil {
			return err
		}
	}
	if len(result.SubjectRecommendations.Electives) > 0 {
		if err := writeRow("Electives"); err != nil {
			return err
		}
		for _, subj := range result.SubjectRecommendations.Electives {
			if err := writeRow("", subj); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeActivitiesSheet(f *excelize.File, report *api.Report) error {
	const sheet = "Activities"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create activities sheet: %w", err)
	}

	header := []any{"ID", "Title", "Instructions"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, act := range report.Activities {
		row := []any{act.ID, act.Title, act.Instructions}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write activity row: %w", err)
		}
	}
	return nil
}
