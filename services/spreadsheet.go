package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"etiquetas/config"
)

// ErrUnreadableSpreadsheet is returned when the uploaded spreadsheet cannot
// be decoded. It aborts the whole label run.
var ErrUnreadableSpreadsheet = errors.New("spreadsheet could not be read")

// Association links a shipment to one city/client/SKU row of the spreadsheet.
type Association struct {
	Shipment string `json:"shipment"`
	City     string `json:"city"`
	Client   string `json:"client"`
	SKU      string `json:"sku"`
}

// AssociationIndex maps a shipment id to its associations in row order.
type AssociationIndex map[string][]Association

// ReadSheetRows returns every row of the first sheet of an .xlsx/.xlsm
// workbook, or of a .csv file when fileName says so.
func ReadSheetRows(r io.Reader, fileName string) ([][]string, error) {
	if strings.HasSuffix(strings.ToLower(fileName), ".csv") {
		return readCSVRows(r)
	}
	return readExcelRows(r)
}

func readExcelRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook: %v", ErrUnreadableSpreadsheet, err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrUnreadableSpreadsheet)
	}
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q: %v", ErrUnreadableSpreadsheet, sheetName, err)
	}
	return rows, nil
}

func readCSVRows(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parse CSV: %v", ErrUnreadableSpreadsheet, err)
	}
	return rows, nil
}

// SpreadsheetIndexer extracts shipment associations from spreadsheet rows
// using a fixed column layout.
type SpreadsheetIndexer struct {
	shipmentCol int
	skuCols     []int
	cityCol     int
	clientCol   int
	missing     string
}

// NewSpreadsheetIndexer resolves the column letters of layout. missing is
// the placeholder stored for absent city, client or SKU values.
func NewSpreadsheetIndexer(layout config.SheetLayout, missing string) (*SpreadsheetIndexer, error) {
	idx := &SpreadsheetIndexer{missing: missing}
	var err error
	if idx.shipmentCol, err = config.ColumnIndex(layout.ShipmentColumn); err != nil {
		return nil, err
	}
	if idx.cityCol, err = config.ColumnIndex(layout.CityColumn); err != nil {
		return nil, err
	}
	if idx.clientCol, err = config.ColumnIndex(layout.ClientColumn); err != nil {
		return nil, err
	}
	for _, c := range layout.SKUColumns {
		n, err := config.ColumnIndex(c)
		if err != nil {
			return nil, err
		}
		idx.skuCols = append(idx.skuCols, n)
	}
	return idx, nil
}

// Index builds the shipment lookup. Every row is considered, including a
// header row; a row is kept when it has a shipment id and a city or client.
func (s *SpreadsheetIndexer) Index(rows [][]string) AssociationIndex {
	index := make(AssociationIndex)
	for _, row := range rows {
		a, ok := s.association(row)
		if !ok {
			continue
		}
		index[a.Shipment] = append(index[a.Shipment], a)
	}
	return index
}

// IndexReader reads and indexes a spreadsheet in one step.
func (s *SpreadsheetIndexer) IndexReader(r io.Reader, fileName string) (AssociationIndex, error) {
	rows, err := ReadSheetRows(r, fileName)
	if err != nil {
		return nil, err
	}
	return s.Index(rows), nil
}

func (s *SpreadsheetIndexer) association(row []string) (Association, bool) {
	shipment := cell(row, s.shipmentCol)
	city := cell(row, s.cityCol)
	client := cell(row, s.clientCol)
	if shipment == "" || (city == "" && client == "") {
		return Association{}, false
	}
	return Association{
		Shipment: shipment,
		City:     orMissing(city, s.missing),
		Client:   orMissing(client, s.missing),
		SKU:      orMissing(firstNonEmpty(row, s.skuCols), s.missing),
	}, true
}

// firstNonEmpty returns the first non-empty cell among cols, in the given
// precedence order.
func firstNonEmpty(row []string, cols []int) string {
	for _, c := range cols {
		if v := cell(row, c); v != "" {
			return v
		}
	}
	return ""
}

// cell returns the trimmed value at col, or "" past the end of a short row.
func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func orMissing(v, missing string) string {
	if v == "" {
		return missing
	}
	return v
}
