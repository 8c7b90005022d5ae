package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// PartnershipSheetColumns are the header cells of the partnership workbook.
// ParsePartnershipRows reads files in the same layout.
var PartnershipSheetColumns = []string{"SKU", "MATERIAL"}

const instructionsSheet = "Instruções"

// GeneratePartnershipWorkbook writes the reference list in the import
// layout. With no items it is the blank template for a new list.
func GeneratePartnershipWorkbook(items []PartnershipItem) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := PartnershipSheetName
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1D4ED8"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	widths := []float64{16, 45}
	for i, h := range PartnershipSheetColumns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheetName, cell, h)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
		f.SetColWidth(sheetName, col, col, widths[i])
	}

	// SKUs stay text so leading zeros survive a round trip.
	textStyle, err := f.NewStyle(&excelize.Style{NumFmt: 49})
	if err != nil {
		return nil, fmt.Errorf("create text style: %w", err)
	}
	f.SetColStyle(sheetName, "A", textStyle)

	for i, it := range items {
		row := i + 2
		f.SetCellStr(sheetName, fmt.Sprintf("A%d", row), sanitizeExcelCell(it.SKU))
		f.SetCellStr(sheetName, fmt.Sprintf("B%d", row), sanitizeExcelCell(it.Material))
	}

	f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	if err := addInstructionsSheet(f); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write partnership workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// addInstructionsSheet adds a hidden sheet describing the import columns.
// The import only reads the first sheet, so it never interferes.
func addInstructionsSheet(f *excelize.File) error {
	if _, err := f.NewSheet(instructionsSheet); err != nil {
		return fmt.Errorf("create instructions sheet: %w", err)
	}

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E5E7EB"}, Pattern: 1},
	})

	f.SetCellValue(instructionsSheet, "A1", "Importação da lista de parceria")
	f.SetCellStyle(instructionsSheet, "A1", "A1", titleStyle)

	rows := [][]string{
		{"Coluna", "Obrigatória?", "Descrição", "Exemplo"},
		{"SKU", "Sim", "Código do material; não pode repetir", "700100"},
		{"MATERIAL", "Não", "Descrição do material", "CAIXA TERMICA"},
	}
	for i, r := range rows {
		for j, v := range r {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+3)
			f.SetCellValue(instructionsSheet, cell, v)
			if i == 0 {
				f.SetCellStyle(instructionsSheet, cell, cell, headerStyle)
			}
		}
	}

	widths := []float64{14, 14, 45, 20}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(instructionsSheet, col, col, w)
	}

	return f.SetSheetVisible(instructionsSheet, false)
}
