package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"etiquetas/services"
	"etiquetas/templates"
)

// HandlePartnershipList renders the partnership reference list, filtered by
// the q query parameter.
// Route: GET /parceria
func HandlePartnershipList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		items, err := services.LoadPartnershipItems(app)
		if err != nil {
			app.Logger().Error("partnership list", "error", err)
			return ErrorToast(e, http.StatusInternalServerError, "Algo deu errado. Tente novamente.")
		}

		q := e.Request.URL.Query().Get("q")
		data := templates.PartnershipPageData{
			Items: services.FilterPartnershipItems(items, q),
			Total: len(items),
			Query: q,
		}

		if isHTMX(e) {
			return templates.PartnershipContent(data).Render(e.Request.Context(), e.Response)
		}
		return templates.PartnershipPage(data).Render(e.Request.Context(), e.Response)
	}
}

// HandlePartnershipImport replaces the reference list with the uploaded
// SKU/MATERIAL file. A file with any invalid row changes nothing.
// Route: POST /parceria/import
func HandlePartnershipImport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseMultipartForm(maxUploadSize); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Arquivo muito grande ou formulário inválido")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Selecione um arquivo")
		}
		defer file.Close()

		rows, err := services.ReadSheetRows(file, header.Filename)
		if err != nil {
			app.Logger().Warn("partnership import: unreadable file", "file", header.Filename, "error", err)
			return ErrorToast(e, http.StatusBadRequest, "Não foi possível ler o arquivo "+header.Filename)
		}

		items, validationErrors, err := services.ParsePartnershipRows(rows)
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, err.Error())
		}

		result, err := services.ReplacePartnershipItems(app, items, validationErrors)
		if err != nil {
			app.Logger().Error("partnership import", "error", err)
			return ErrorToast(e, http.StatusInternalServerError, "Algo deu errado. Tente novamente.")
		}

		if len(result.Errors) > 0 {
			SetToast(e, ToastError, fmt.Sprintf("%d linha(s) com erro", len(result.Errors)))
		} else {
			app.Logger().Info("partnership list replaced", "file", header.Filename, "items", result.Imported)
			SetToast(e, ToastSuccess, fmt.Sprintf("%d itens importados", result.Imported))
		}
		return templates.PartnershipImportResult(result).Render(e.Request.Context(), e.Response)
	}
}

// HandlePartnershipExport downloads the reference list in the import layout.
// An empty list downloads the blank template.
// Route: GET /parceria/export
func HandlePartnershipExport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		items, err := services.LoadPartnershipItems(app)
		if err != nil {
			app.Logger().Error("partnership export", "error", err)
			return ErrorToast(e, http.StatusInternalServerError, "Algo deu errado. Tente novamente.")
		}

		xlsxBytes, err := services.GeneratePartnershipWorkbook(items)
		if err != nil {
			app.Logger().Error("partnership export", "error", err)
			return ErrorToast(e, http.StatusInternalServerError, "Falha ao gerar o Excel")
		}

		filename := fmt.Sprintf("Parceria_%s.xlsx", time.Now().Format("2006-01-02"))
		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		_, err = e.Response.Write(xlsxBytes)
		return err
	}
}
