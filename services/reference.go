package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ValidationError represents a single field-level error on one row of an
// uploaded reference file.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportResult is the outcome of replacing the partnership reference list.
type ImportResult struct {
	TotalRows int               `json:"total_rows"`
	Imported  int               `json:"imported"`
	Errors    []ValidationError `json:"errors,omitempty"`
}

// LoadLabelTables reads the partnership list and the carrier → client table
// from the database.
func LoadLabelTables(app *pocketbase.PocketBase) (LabelTables, error) {
	items, err := LoadPartnershipItems(app)
	if err != nil {
		return LabelTables{}, err
	}

	records, err := app.FindAllRecords("carrier_clients")
	if err != nil {
		return LabelTables{}, fmt.Errorf("load carrier clients: %w", err)
	}
	clients := make(map[string]string, len(records))
	for _, r := range records {
		code := strings.TrimSpace(r.GetString("carrier_code"))
		if code == "" {
			continue
		}
		clients[code] = r.GetString("client")
	}

	return LabelTables{PartnershipItems: items, CarrierClients: clients}, nil
}

// LoadPartnershipItems returns the reference list ordered by SKU.
func LoadPartnershipItems(app *pocketbase.PocketBase) ([]PartnershipItem, error) {
	records, err := app.FindAllRecords("partnership_items")
	if err != nil {
		return nil, fmt.Errorf("load partnership items: %w", err)
	}
	items := make([]PartnershipItem, 0, len(records))
	for _, r := range records {
		items = append(items, PartnershipItem{
			SKU:      r.GetString("sku"),
			Material: r.GetString("material"),
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].SKU < items[j].SKU })
	return items, nil
}

// ParsePartnershipRows reads SKU/MATERIAL rows. The first row is the header
// and must name both columns; their position is free.
func ParsePartnershipRows(rows [][]string) ([]PartnershipItem, []ValidationError, error) {
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	skuCol, materialCol := -1, -1
	for i, h := range rows[0] {
		switch strings.ToUpper(strings.TrimSpace(h)) {
		case "SKU":
			skuCol = i
		case "MATERIAL":
			materialCol = i
		}
	}
	if skuCol < 0 || materialCol < 0 {
		return nil, nil, fmt.Errorf("header must contain SKU and MATERIAL columns")
	}

	var items []PartnershipItem
	var errs []ValidationError
	seen := make(map[string]int)
	for idx, row := range rows[1:] {
		rowNum := idx + 2 // 1-indexed, +1 for header row
		sku := cell(row, skuCol)
		material := cell(row, materialCol)
		if sku == "" && material == "" {
			continue
		}
		if sku == "" {
			errs = append(errs, ValidationError{Row: rowNum, Field: "SKU", Message: "SKU is required"})
			continue
		}
		if first, dup := seen[sku]; dup {
			errs = append(errs, ValidationError{
				Row:     rowNum,
				Field:   "SKU",
				Message: fmt.Sprintf("SKU %s already listed on row %d", sku, first),
			})
			continue
		}
		seen[sku] = rowNum
		items = append(items, PartnershipItem{SKU: sku, Material: material})
	}
	return items, errs, nil
}

// ReplacePartnershipItems swaps the whole reference list inside one
// transaction. Nothing is written when validation errors are present.
func ReplacePartnershipItems(app *pocketbase.PocketBase, items []PartnershipItem, validationErrors []ValidationError) (*ImportResult, error) {
	result := &ImportResult{TotalRows: len(items) + len(validationErrors)}
	if len(validationErrors) > 0 {
		result.Errors = validationErrors
		return result, nil
	}

	err := app.RunInTransaction(func(txApp core.App) error {
		col, err := txApp.FindCollectionByNameOrId("partnership_items")
		if err != nil {
			return fmt.Errorf("partnership_items collection not found: %w", err)
		}

		existing, err := txApp.FindAllRecords(col)
		if err != nil {
			return fmt.Errorf("load existing items: %w", err)
		}
		for _, r := range existing {
			if err := txApp.Delete(r); err != nil {
				return fmt.Errorf("delete sku %s: %w", r.GetString("sku"), err)
			}
		}

		for _, it := range items {
			record := core.NewRecord(col)
			record.Set("sku", it.SKU)
			record.Set("material", it.Material)
			if err := txApp.Save(record); err != nil {
				return fmt.Errorf("save sku %s: %w", it.SKU, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Imported = len(items)
	return result, nil
}
