package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"alfredoptarigan/resume-ats/internal/models"
)

func TestExportAnalyses(t *testing.T) {
	a := storedAnalysis("u1")
	a.CreatedAt = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	a.Suggestions = []string{"CRITICAL: add sql", "Add a contact line"}

	var buf bytes.Buffer
	require.NoError(t, ExportAnalyses([]models.Analysis{*a}, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{analysesSheet, suggestionsSheet}, f.GetSheetList())

	rows, err := f.GetRows(analysesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, analysisColumns, rows[0])
	assert.Equal(t, "2025-03-14 09:30", rows[1][0])
	assert.Equal(t, "Data Engineer", rows[1][1])
	assert.Equal(t, "Acme", rows[1][2])
	assert.Equal(t, "42", rows[1][3])
	assert.Equal(t, "python", rows[1][9])
	assert.Equal(t, "sql", rows[1][10])

	suggestions, err := f.GetRows(suggestionsSheet)
	require.NoError(t, err)
	require.Len(t, suggestions, 3)
	assert.Equal(t, a.ID.String(), suggestions[1][0])
	assert.Equal(t, "2", suggestions[2][2])
	assert.Equal(t, "Add a contact line", suggestions[2][3])
}

func TestExportAnalysesEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportAnalyses(nil, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(analysesSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
