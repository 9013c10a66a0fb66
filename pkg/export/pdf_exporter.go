package export

import (
	"bytes"
	"fmt"
	"os"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfBodyWidth  = 190.0
	pdfUTF8Family = "body"
)

// PDFExporter renders datasets into a tabular A4 PDF whose header row repeats
// on every page. Without a UTF-8 font the core Arial font is used, which only
// covers cp1252: other characters are printed as '.'.
type PDFExporter struct {
	fontPath string
}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// WithUTF8Font makes the exporter embed the TrueType font at path so any
// Unicode text renders. An empty path keeps the core font.
func (e *PDFExporter) WithUTF8Font(path string) *PDFExporter {
	e.fontPath = path
	return e
}

// ContentType of the rendered payload.
func (e *PDFExporter) ContentType() string { return "application/pdf" }

// Extension of exported files.
func (e *PDFExporter) Extension() string { return "pdf" }

// Render creates the PDF document.
func (e *PDFExporter) Render(data Dataset) ([]byte, error) {
	if err := data.validate(); err != nil {
		return nil, err
	}
	widths := columnWidths(data)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.SetAutoPageBreak(true, 15)
	family := "Arial"
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if e.fontPath != "" {
		font, err := os.ReadFile(e.fontPath)
		if err != nil {
			return nil, fmt.Errorf("read pdf font: %w", err)
		}
		pdf.AddUTF8FontFromBytes(pdfUTF8Family, "", font)
		pdf.AddUTF8FontFromBytes(pdfUTF8Family, "B", font)
		if err := pdf.Error(); err != nil {
			return nil, fmt.Errorf("load pdf font %s: %w", e.fontPath, err)
		}
		family = pdfUTF8Family
		tr = func(s string) string { return s }
	}

	pdf.SetHeaderFunc(func() {
		if data.Title != "" && pdf.PageNo() == 1 {
			pdf.SetFont(family, "B", 14)
			pdf.CellFormat(0, 10, tr(data.Title), "", 1, "C", false, 0, "")
			pdf.Ln(3)
		}
		pdf.SetFont(family, "B", 10)
		for i, header := range data.Headers {
			pdf.CellFormat(widths[i], 8, tr(header), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont(family, "", 9)
	})
	pdf.AddPage()

	for _, row := range data.Rows {
		for i, value := range row {
			pdf.CellFormat(widths[i], 7, tr(value), "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// columnWidths splits the body width by the longest cell of each column, with
// a floor so short columns stay legible.
func columnWidths(data Dataset) []float64 {
	longest := make([]int, len(data.Headers))
	for i, header := range data.Headers {
		longest[i] = len(header)
	}
	for _, row := range data.Rows {
		for i, value := range row {
			if len(value) > longest[i] {
				longest[i] = len(value)
			}
		}
	}

	total := 0
	for i := range longest {
		if longest[i] < 4 {
			longest[i] = 4
		}
		total += longest[i]
	}

	widths := make([]float64, len(longest))
	for i, n := range longest {
		widths[i] = pdfBodyWidth * float64(n) / float64(total)
	}
	return widths
}
