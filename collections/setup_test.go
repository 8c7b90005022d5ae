package collections_test

import (
	"testing"

	"etiquetas/collections"
	"etiquetas/testhelpers"

	"github.com/pocketbase/pocketbase/core"
)

// expectedCollections is the full list of collections that Setup() must create.
var expectedCollections = []string{
	"partnership_items",
	"carrier_clients",
}

func TestSetup_AllCollectionsExist(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q not found after Setup(): %v", name, err)
			continue
		}
		if col.Name != name {
			t.Errorf("expected collection name %q, got %q", name, col.Name)
		}
	}
}

func TestSetup_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	before := make(map[string]string)
	for _, name := range expectedCollections {
		col, _ := app.FindCollectionByNameOrId(name)
		before[name] = col.Id
	}

	if err := collections.Setup(app); err != nil {
		t.Fatalf("second Setup() error: %v", err)
	}

	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Fatalf("collection %q missing after second Setup(): %v", name, err)
		}
		if col.Id != before[name] {
			t.Errorf("collection %q was recreated (id %s -> %s)", name, before[name], col.Id)
		}
	}
}

func TestSetup_PartnershipItemsFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("partnership_items")

	for _, field := range []string{"sku", "material", "created", "updated"} {
		if col.Fields.GetByName(field) == nil {
			t.Errorf("partnership_items missing field %q", field)
		}
	}
}

func TestSetup_CarrierClientsFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("carrier_clients")

	for _, field := range []string{"carrier_code", "client"} {
		if col.Fields.GetByName(field) == nil {
			t.Errorf("carrier_clients missing field %q", field)
		}
	}
}

func TestSetup_PartnershipSKUUnique(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestPartnershipItem(t, app, "700100", "CAIXA TERMICA")

	col, _ := app.FindCollectionByNameOrId("partnership_items")
	dup := core.NewRecord(col)
	dup.Set("sku", "700100")
	dup.Set("material", "OUTRO")
	if err := app.Save(dup); err == nil {
		t.Error("expected duplicate SKU to be rejected")
	}
}

func TestSetup_CarrierCodePattern(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	col, _ := app.FindCollectionByNameOrId("carrier_clients")
	r := core.NewRecord(col)
	r.Set("carrier_code", "XX123")
	r.Set("client", "ITAPEVA")
	if err := app.Save(r); err == nil {
		t.Error("expected carrier code without BR prefix to be rejected")
	}
}
