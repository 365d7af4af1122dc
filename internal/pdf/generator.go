package pdf

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/nurpe/contracts-service/internal/model"
)

type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica"}
}

func (g *Generator) Generate(invoice model.Invoice) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetTitle(fmt.Sprintf("Invoice %d", invoice.Contract.ID), true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(g.fontName, "B", 16)
	pdf.CellFormat(0, 10, "Invoice", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Contract #%d: %s", invoice.Contract.ID, invoice.Contract.ContractName)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Period: %s - %s", safeValue(invoice.Contract.StartDate), safeValue(invoice.Contract.EndDate))), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	colWidths := []float64{120, 60}
	drawTableRow(pdf, g.fontName, []string{"Point", "Value"}, colWidths, true)
	for _, point := range invoice.Points {
		drawTableRow(pdf, g.fontName, []string{tr(point.Point), tr(point.Value)}, colWidths, false)
	}

	pdf.Ln(2)
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total points: %d", invoice.TotalPoints), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Total value: %s", formatAmount(invoice.TotalValue)), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		align := "L"
		if i > 0 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 8, col, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

// formatAmount prints the shortest decimal that round-trips, matching the
// JSON rendering of total_value.
func formatAmount(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
