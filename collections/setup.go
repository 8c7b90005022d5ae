package collections

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the reference collections the label
// pipeline reads: partnership_items and carrier_clients.
func Setup(app *pocketbase.PocketBase) error {
	_, err := ensureCollection(app, "partnership_items", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "sku", Required: true})
		c.Fields.Add(&core.TextField{Name: "material", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex("idx_partnership_items_sku", true, "sku", "")
	})
	if err != nil {
		return err
	}

	_, err = ensureCollection(app, "carrier_clients", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "carrier_code", Required: true, Pattern: `^BR\d+$`})
		c.Fields.Add(&core.TextField{Name: "client", Required: true})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex("idx_carrier_clients_code", true, "carrier_code", "")
	})
	return err
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) (*core.Collection, error) {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		app.Logger().Debug("collection already exists, skipping creation", "collection", name)
		return existing, nil
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		return nil, fmt.Errorf("create collection %q: %w", name, err)
	}

	app.Logger().Info("created collection", "collection", name, "id", collection.Id)
	return collection, nil
}
