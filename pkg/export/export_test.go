package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rosterDataset() Dataset {
	return Dataset{
		Title:   "X U roster",
		Headers: []string{"Student ID", "Name", "Department"},
		Rows: [][]string{
			{"2026100001", "Ada Lovelace", "CSE"},
			{"2026100002", "Bo, Jr.", "ECE"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(rosterDataset())
	require.NoError(t, err)
	assert.Equal(t, "Student ID,Name,Department\n2026100001,Ada Lovelace,CSE\n2026100002,\"Bo, Jr.\",ECE\n", string(out))
}

func TestCSVExporterRejectsRaggedRows(t *testing.T) {
	data := rosterDataset()
	data.Rows = append(data.Rows, []string{"only one"})
	_, err := NewCSVExporter().Render(data)
	require.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(rosterDataset())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestFormatContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", FormatPDF.ContentType())
	assert.Equal(t, "text/csv", FormatCSV.ContentType())
}
