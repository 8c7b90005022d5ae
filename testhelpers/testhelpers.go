// Package testhelpers provides utilities for testing the label application:
// a PocketBase instance with the reference collections, record fixtures and
// builders for manifest text and spreadsheet files.
package testhelpers

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/xuri/excelize/v2"

	"etiquetas/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	if err := collections.Setup(app); err != nil {
		t.Fatalf("failed to set up collections: %v", err)
	}

	return app
}

// CreateTestPartnershipItem adds an entry to the partnership reference list.
func CreateTestPartnershipItem(t *testing.T, app *pocketbase.PocketBase, sku, material string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("partnership_items")
	if err != nil {
		t.Fatalf("failed to find partnership_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("sku", sku)
	record.Set("material", material)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test partnership item: %v", err)
	}

	return record
}

// CreateTestCarrierClient maps a carrier code to a client name.
func CreateTestCarrierClient(t *testing.T, app *pocketbase.PocketBase, code, client string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("carrier_clients")
	if err != nil {
		t.Fatalf("failed to find carrier_clients collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("carrier_code", code)
	record.Set("client", client)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test carrier client: %v", err)
	}

	return record
}

// ManifestBlock describes one transport document of a test manifest. Empty
// fields leave the corresponding line out of the block.
type ManifestBlock struct {
	Shipment string
	Date     string
	Carrier  string
	Order    string
	Boxes    string
}

// BuildManifest renders blocks in the layout of the expedition report,
// preceded by a page header that the parser must ignore.
func BuildManifest(blocks ...ManifestBlock) string {
	var b strings.Builder
	b.WriteString("RELATORIO DE EXPEDICAO                         Pag.:    1\n")
	b.WriteString("Emitido em 12.03.2024\n\n")
	for i, blk := range blocks {
		fmt.Fprintf(&b, "Doc. Transp : %010d   Tipo : ZTR\n", 1000+i)
		if blk.Shipment != "" || blk.Date != "" {
			fmt.Fprintf(&b, "Rem : %s %s   Dest : CD SUL\n", blk.Shipment, blk.Date)
		}
		if blk.Carrier != "" {
			fmt.Fprintf(&b, "CE  TRANSPORTADORA %s  RODOVIARIO\n", blk.Carrier)
		}
		if blk.Order != "" {
			fmt.Fprintf(&b, "Linha : 10 %s\n", blk.Order)
		}
		if blk.Boxes != "" {
			b.WriteString("Material        Descricao                 Qtd Cx\n")
			fmt.Fprintf(&b, "\n%s CX\n", blk.Boxes)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// BuildWorkbook writes rows to the first sheet of a new workbook and
// returns the .xlsx bytes.
func BuildWorkbook(t *testing.T, rows [][]string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			t.Fatalf("failed to write row %d: %v", i+1, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("failed to write workbook: %v", err)
	}
	return buf.Bytes()
}

// SheetRow builds a spreadsheet row with the shipment in column A, the SKU
// candidates in H, I and M, city in K and client in L.
func SheetRow(shipment, skuH, skuI, city, client, skuM string) []string {
	row := make([]string, 13)
	row[0] = shipment
	row[7] = skuH
	row[8] = skuI
	row[10] = city
	row[11] = client
	row[12] = skuM
	return row
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHTMLNotContains checks that body contains none of the fragments.
func AssertHTMLNotContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if strings.Contains(body, frag) {
			t.Errorf("expected HTML not to contain %q\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
