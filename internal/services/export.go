package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"alfredoptarigan/resume-ats/internal/models"
)

const (
	analysesSheet    = "Analyses"
	suggestionsSheet = "Suggestions"
)

var analysisColumns = []string{
	"Created", "Job Title", "Company", "ATS Score",
	"Keyword Density", "Industry Alignment", "Experience Match", "Quantification", "Formatting",
	"Strong Keywords", "Missing Keywords",
}

// ExportAnalyses writes a workbook with one row per analysis and a second sheet
// listing every suggestion.
func ExportAnalyses(analyses []models.Analysis, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", analysesSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(suggestionsSheet); err != nil {
		return fmt.Errorf("failed to create suggestions sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	percentStyle, err := f.NewStyle(&excelize.Style{NumFmt: 9})
	if err != nil {
		return fmt.Errorf("failed to create percent style: %w", err)
	}

	if err := writeRow(f, analysesSheet, 1, toAny(analysisColumns)); err != nil {
		return err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(analysisColumns))
	f.SetCellStyle(analysesSheet, "A1", lastCol+"1", headerStyle)
	f.SetColWidth(analysesSheet, "A", "A", 20)
	f.SetColWidth(analysesSheet, "B", "C", 28)
	f.SetColWidth(analysesSheet, "J", "K", 50)

	for i, a := range analyses {
		row := i + 2
		d := a.Detailed.Data()
		values := []any{
			a.CreatedAt.Format("2006-01-02 15:04"),
			a.JobTitle,
			a.CompanyName,
			a.ATSScore,
			d.KeywordDensity,
			d.IndustryAlignment,
			d.ExperienceLevelMatch,
			d.QuantificationScore,
			d.FormattingScore,
			strings.Join(a.StrongKeywords, ", "),
			strings.Join(a.MissingKeywords, ", "),
		}
		if err := writeRow(f, analysesSheet, row, values); err != nil {
			return err
		}
		f.SetCellStyle(analysesSheet, fmt.Sprintf("E%d", row), fmt.Sprintf("I%d", row), percentStyle)
	}

	if err := writeRow(f, suggestionsSheet, 1, []any{"Analysis ID", "Job Title", "#", "Suggestion"}); err != nil {
		return err
	}
	f.SetCellStyle(suggestionsSheet, "A1", "D1", headerStyle)
	f.SetColWidth(suggestionsSheet, "A", "A", 38)
	f.SetColWidth(suggestionsSheet, "B", "B", 28)
	f.SetColWidth(suggestionsSheet, "D", "D", 100)

	row := 2
	for _, a := range analyses {
		for n, s := range a.Suggestions {
			if err := writeRow(f, suggestionsSheet, row, []any{a.ID.String(), a.JobTitle, n + 1, s}); err != nil {
				return err
			}
			row++
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d of %s: %w", row, sheet, err)
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
