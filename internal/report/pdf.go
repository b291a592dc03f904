package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

const (
	pageMargin = 10.0
	rowHeight  = 7.0
	// bottomLimit is the cursor position after which the next row goes on
	// a new page (A4 portrait is 297mm tall).
	bottomLimit = 280.0
)

// WritePDF renders doc as an A4 portrait PDF.
func WritePDF(w io.Writer, doc *Document) error {
	pdf, err := render(doc)
	if err != nil {
		return err
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func render(doc *Document) (*fpdf.Fpdf, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageWidth, _ := pdf.GetPageSize()
	usable := pageWidth - 2*pageMargin

	pdf.AddPage()
	writeHeader(pdf, doc, tr)
	writeSummary(pdf, doc, tr)

	if len(doc.Columns) > 0 {
		colWidth := usable / float64(len(doc.Columns))
		writeTableHeader(pdf, doc.Columns, colWidth, tr)
		for i, row := range doc.Rows {
			if pdf.GetY()+rowHeight > bottomLimit {
				pdf.AddPage()
				writeTableHeader(pdf, doc.Columns, colWidth, tr)
			}
			fill := i%2 == 1
			pdf.SetFillColor(245, 245, 245)
			for _, cell := range row {
				pdf.CellFormat(colWidth, rowHeight, fit(pdf, tr(cell), colWidth-2), "1", 0, "L", fill, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return pdf, nil
}

func writeHeader(pdf *fpdf.Fpdf, doc *Document, tr func(string) string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 9, tr(doc.Company.Name), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	if doc.Company.Address != "" {
		pdf.CellFormat(0, 5, tr(doc.Company.Address), "", 1, "L", false, 0, "")
	}
	if doc.Company.Phone != "" {
		pdf.CellFormat(0, 5, tr("Tel: "+doc.Company.Phone), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, tr(doc.Title), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, "Generated "+doc.GeneratedAt.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(3)
}

func writeSummary(pdf *fpdf.Fpdf, doc *Document, tr func(string) string) {
	if len(doc.Summary) == 0 {
		return
	}
	for _, s := range doc.Summary {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(50, 6, tr(s.Label), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, tr(s.Value), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func writeTableHeader(pdf *fpdf.Fpdf, cols []string, width float64, tr func(string) string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(52, 73, 94)
	pdf.SetTextColor(255, 255, 255)
	for _, c := range cols {
		pdf.CellFormat(width, rowHeight, fit(pdf, tr(c), width-2), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 8)
}

// fit shortens s with a trailing "..." until it fits in width. s is already
// translated to the single-byte font encoding.
func fit(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}
