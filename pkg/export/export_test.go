package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRendersRowsInHeaderOrder(t *testing.T) {
	out, err := NewCSVExporter().Render(Dataset{
		Headers: []string{"Class", "Subjects"},
		Rows: []map[string]string{
			{"Subjects": "Algebra, Physics", "Class": "10A"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Class,Subjects\n10A,\"Algebra, Physics\"\n", string(out))
}

func TestExportersRequireHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
	_, err = NewPDFExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterProducesDocument(t *testing.T) {
	rows := make([]map[string]string, 0, 80)
	for i := 0; i < 80; i++ {
		rows = append(rows, map[string]string{"Student": "Siti Aminah", "Semester": "Semester 4"})
	}
	out, err := NewPDFExporter().Render(Dataset{Title: "Student Overview", Headers: []string{"Student", "Semester"}, Rows: rows})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat("PDF")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)
	assert.Equal(t, "application/pdf", f.ContentType())

	_, err = ParseFormat("xlsx")
	assert.Error(t, err)
}
