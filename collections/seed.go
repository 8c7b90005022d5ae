package collections

import (
	"fmt"
	"sort"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"etiquetas/config"
)

// Seed fills empty reference collections from the label configuration. Each
// collection is seeded independently and only while it has no records, so
// edits made through the admin UI or the import page are never overwritten.
func Seed(app *pocketbase.PocketBase, cfg config.LabelConfig) error {
	codes := make([]string, 0, len(cfg.CarrierClients))
	for code := range cfg.CarrierClients {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	err := seedIfEmpty(app, "carrier_clients", func(col *core.Collection, txApp core.App) error {
		for _, code := range codes {
			r := core.NewRecord(col)
			r.Set("carrier_code", code)
			r.Set("client", cfg.CarrierClients[code])
			if err := txApp.Save(r); err != nil {
				return fmt.Errorf("carrier %s: %w", code, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	return seedIfEmpty(app, "partnership_items", func(col *core.Collection, txApp core.App) error {
		for _, it := range cfg.PartnershipItems {
			r := core.NewRecord(col)
			r.Set("sku", it.SKU)
			r.Set("material", it.Material)
			if err := txApp.Save(r); err != nil {
				return fmt.Errorf("sku %s: %w", it.SKU, err)
			}
		}
		return nil
	})
}

func seedIfEmpty(app *pocketbase.PocketBase, name string, insert func(*core.Collection, core.App) error) error {
	col, err := app.FindCollectionByNameOrId(name)
	if err != nil {
		return fmt.Errorf("seed: could not find %s collection: %w", name, err)
	}
	existing, err := app.FindAllRecords(col)
	if err != nil {
		return fmt.Errorf("seed: could not query %s: %w", name, err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	app.Logger().Info("seed: collection is empty, inserting defaults", "collection", name)
	if err := app.RunInTransaction(func(txApp core.App) error {
		return insert(col, txApp)
	}); err != nil {
		return fmt.Errorf("seed %s: %w", name, err)
	}
	return nil
}
