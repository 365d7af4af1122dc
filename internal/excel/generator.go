package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/nurpe/contracts-service/internal/model"
)

const summarySheet = "Invoice"

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate writes a summary sheet with one row per contract followed by a
// detail sheet for each contract listing its points.
func (g *Generator) Generate(invoices []model.Invoice) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if err := g.writeSummary(file, summarySheet, invoices); err != nil {
		return nil, err
	}

	usedNames := map[string]struct{}{summarySheet: {}}
	for _, invoice := range invoices {
		sheetName := buildSheetName(invoice.Contract, usedNames)
		usedNames[sheetName] = struct{}{}

		if _, err := file.NewSheet(sheetName); err != nil {
			return nil, err
		}
		if err := g.writeDetail(file, sheetName, invoice); err != nil {
			return nil, err
		}
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, invoices []model.Invoice) error {
	headers := []interface{}{"Contract Id", "Contract Name", "Start Date", "End Date", "Total Points", "Total Value"}
	if err := file.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}

	for i, invoice := range invoices {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			invoice.Contract.ID,
			invoice.Contract.ContractName,
			invoice.Contract.StartDate,
			invoice.Contract.EndDate,
			invoice.TotalPoints,
			invoice.TotalValue,
		}
		if err := file.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	_ = file.SetColWidth(sheet, "A", "A", 12)
	_ = file.SetColWidth(sheet, "B", "B", 40)
	_ = file.SetColWidth(sheet, "C", "D", 14)
	_ = file.SetColWidth(sheet, "E", "F", 14)
	return nil
}

func (g *Generator) writeDetail(file *excelize.File, sheet string, invoice model.Invoice) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Contract")
	set("B1", invoice.Contract.ContractName)
	set("A2", "Start Date")
	set("B2", invoice.Contract.StartDate)
	set("A3", "End Date")
	set("B3", invoice.Contract.EndDate)
	set("A4", "Total Points")
	set("B4", invoice.TotalPoints)
	set("A5", "Total Value")
	set("B5", invoice.TotalValue)

	tableRow := 7
	set(fmt.Sprintf("A%d", tableRow), "Point")
	set(fmt.Sprintf("B%d", tableRow), "Value")

	for i, point := range invoice.Points {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), point.Point)
		set(fmt.Sprintf("B%d", row), point.Value)
	}

	_ = file.SetColWidth(sheet, "A", "A", 32)
	_ = file.SetColWidth(sheet, "B", "B", 20)
	return nil
}

// buildSheetName derives a unique sheet title from the contract. Excel caps
// titles at 31 characters and forbids []:*?/\.
func buildSheetName(contract model.Contract, used map[string]struct{}) string {
	base := fmt.Sprintf("%d - %s", contract.ID, strings.TrimSpace(contract.ContractName))
	if strings.TrimSpace(contract.ContractName) == "" {
		base = fmt.Sprintf("Contract %d", contract.ID)
	}
	base = truncate(sanitizeSheetName(base), 31)

	nameCandidate := base
	counter := 2
	for {
		if _, exists := used[nameCandidate]; !exists {
			return nameCandidate
		}
		suffix := fmt.Sprintf("-%d", counter)
		nameCandidate = truncate(base, 31-len(suffix)) + suffix
		counter++
	}
}

func sanitizeSheetName(value string) string {
	replacer := strings.NewReplacer(
		"[", "-",
		"]", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"/", "-",
		"\\", "-",
	)
	value = strings.TrimSpace(replacer.Replace(value))
	if value == "" {
		return "Sheet"
	}
	return value
}

// truncate cuts on rune boundaries so multi-byte names stay valid UTF-8.
func truncate(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit])
}
