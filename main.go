package main

import (
	"log"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"etiquetas/collections"
	"etiquetas/config"
	"etiquetas/handlers"
)

func main() {
	app := pocketbase.New()
	config.RegisterFlags(app.RootCmd.PersistentFlags())

	var cfg config.LabelConfig

	// Load the label configuration, create collections and seed reference data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		var err error
		cfg, err = config.Load(config.FlagPath())
		if err != nil {
			return err
		}
		if err := collections.Setup(app); err != nil {
			return err
		}
		if err := collections.Seed(app, cfg); err != nil {
			app.Logger().Warn("seed data failed", "error", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))

		// ── Labels ───────────────────────────────────────────────
		se.Router.GET("/", handlers.HandleLabelsPage(app))
		se.Router.POST("/labels/process", handlers.HandleLabelsProcess(app, cfg))
		se.Router.POST("/labels/filter", handlers.HandleLabelsFilter(app))
		se.Router.POST("/labels/export/excel", handlers.HandleLabelsExportExcel(app))
		se.Router.POST("/labels/export/pdf", handlers.HandleLabelsExportPDF(app))

		// ── Partnership reference list ───────────────────────────
		se.Router.GET("/parceria", handlers.HandlePartnershipList(app))
		se.Router.POST("/parceria/import", handlers.HandlePartnershipImport(app))
		se.Router.GET("/parceria/export", handlers.HandlePartnershipExport(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
