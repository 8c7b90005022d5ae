package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet names of the label workbook.
const (
	MainSheetName        = "Etiquetas"
	PartnershipSheetName = "Parceria"
)

// LabelColumns are the column headers of the results table and workbook.
var LabelColumns = []string{
	"REMESSA", "DATA", "BR", "CIDADE", "CLIENTE", "ORDEM",
	"QTD DE ETIQUETA", "Nº CAIXAS", "PARCERIA",
}

// LabelCells returns the printed cell values of r, in LabelColumns order.
func LabelCells(r LabelRow) []string {
	return []string{
		r.Shipment, r.Date, r.Carrier, r.City, r.Client, r.Order,
		FormatQuantity(r), r.BoxPosition, r.Partnership,
	}
}

// GenerateLabelsExcel writes both label lists to a workbook, one sheet each,
// and returns the file contents.
func GenerateLabelsExcel(set *LabelSet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), MainSheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}
	if _, err := f.NewSheet(PartnershipSheetName); err != nil {
		return nil, fmt.Errorf("create sheet %s: %w", PartnershipSheetName, err)
	}

	styles, err := newLabelStyles(f)
	if err != nil {
		return nil, err
	}

	if err := writeLabelSheet(f, MainSheetName, set.Main, styles); err != nil {
		return nil, err
	}
	if err := writeLabelSheet(f, PartnershipSheetName, set.Partnership, styles); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

type labelStyles struct {
	header    int
	row       int
	separator int
}

func newLabelStyles(f *excelize.File) (labelStyles, error) {
	var s labelStyles
	var err error

	// Column header: bold white on charcoal, centered.
	s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return s, fmt.Errorf("create header style: %w", err)
	}

	s.row, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return s, fmt.Errorf("create row style: %w", err)
	}

	// Attention rows stand out for the printing staff.
	s.separator, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11, Color: "#7F1D1D"},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"#FDE68A"}, Pattern: 1},
		Border: thinBorders(),
	})
	if err != nil {
		return s, fmt.Errorf("create separator style: %w", err)
	}
	return s, nil
}

func writeLabelSheet(f *excelize.File, sheet string, rows []LabelRow, styles labelStyles) error {
	lastCol, err := excelize.ColumnNumberToName(len(LabelColumns))
	if err != nil {
		return fmt.Errorf("last column: %w", err)
	}

	widths := []float64{14, 12, 12, 24, 28, 12, 16, 12, 10}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	header := make([]interface{}, len(LabelColumns))
	for i, h := range LabelColumns {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	f.SetCellStyle(sheet, "A1", lastCol+"1", styles.header)

	for i, r := range rows {
		rowNum := i + 2
		cells := LabelCells(r)
		values := make([]interface{}, len(cells))
		for j, c := range cells {
			values[j] = sanitizeExcelCell(c)
		}
		// Quantity is numeric on label rows.
		if !r.Separator {
			values[6] = r.Quantity
		}

		start := fmt.Sprintf("A%d", rowNum)
		if err := f.SetSheetRow(sheet, start, &values); err != nil {
			return fmt.Errorf("write row %d: %w", rowNum, err)
		}

		style := styles.row
		if r.Separator {
			style = styles.separator
		}
		f.SetCellStyle(sheet, start, fmt.Sprintf("%s%d", lastCol, rowNum), style)
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}
	return nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1,
		}
	}
	return borders
}
