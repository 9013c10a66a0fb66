package export

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Title:   "Members",
		Headers: []string{"ID", "Name", "Email", "Role"},
		Rows: [][]string{
			{"1", "Aaron Miles", "aaron@mailinator.com", "member"},
			{"2", "Smith, Jane", "jane@example.com", "admin"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)
	assert.Equal(t, "ID,Name,Email,Role\n1,Aaron Miles,aaron@mailinator.com,member\n2,\"Smith, Jane\",jane@example.com,admin\n", string(out))
}

func TestCSVExporterEscapesFormulas(t *testing.T) {
	data := sampleDataset()
	data.Rows = [][]string{
		{"3", "=HYPERLINK(\"http://evil.test\")", "+1@x.test", "@admin"},
		{"4", "-2+3", "plain@x.test", "member"},
	}
	out, err := NewCSVExporter().Render(data)
	require.NoError(t, err)
	assert.Equal(t, "ID,Name,Email,Role\n"+
		"3,\"'=HYPERLINK(\"\"http://evil.test\"\")\",'+1@x.test,'@admin\n"+
		"4,'-2+3,plain@x.test,member\n", string(out))
}

func TestCSVExporterRejectsRaggedRows(t *testing.T) {
	data := sampleDataset()
	data.Rows = append(data.Rows, []string{"3"})
	_, err := NewCSVExporter().Render(data)
	assert.Error(t, err)
}

func TestExportersRequireHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
	_, err = NewPDFExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleDataset())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestPDFExporterCoreFontToleratesNonLatinText(t *testing.T) {
	data := sampleDataset()
	data.Rows = append(data.Rows, []string{"3", "Zoë 李雷", "li@example.com", "member"})
	out, err := NewPDFExporter().Render(data)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestPDFExporterMissingFont(t *testing.T) {
	_, err := NewPDFExporter().WithUTF8Font(filepath.Join(t.TempDir(), "missing.ttf")).Render(sampleDataset())
	assert.Error(t, err)
}

func TestColumnWidthsFillBody(t *testing.T) {
	widths := columnWidths(sampleDataset())
	sum := 0.0
	for _, w := range widths {
		sum += w
	}
	assert.InDelta(t, pdfBodyWidth, sum, 0.001)
	assert.Greater(t, widths[2], widths[0])
}
