package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"etiquetas/services"
)

// HandleLabelsExportExcel downloads both label lists as an Excel workbook.
// Route: POST /labels/export/excel
func HandleLabelsExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		set, err := postedLabelSet(e)
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, labelSetMessage(err))
		}

		xlsxBytes, err := services.GenerateLabelsExcel(set)
		if err != nil {
			app.Logger().Error("labels export excel", "error", err)
			return ErrorToast(e, http.StatusInternalServerError, "Falha ao gerar o Excel")
		}

		filename := fmt.Sprintf("Etiquetas_%s.xlsx", time.Now().Format("2006-01-02"))
		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Header().Set("Content-Length", fmt.Sprintf("%d", len(xlsxBytes)))
		_, err = e.Response.Write(xlsxBytes)
		return err
	}
}

// HandleLabelsExportPDF prints one list, one label per page.
// Route: POST /labels/export/pdf
func HandleLabelsExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		set, err := postedLabelSet(e)
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, labelSetMessage(err))
		}

		var rows []services.LabelRow
		name := "Etiquetas"
		switch e.Request.FormValue("list") {
		case "", "main":
			rows = set.Main
		case "partnership":
			rows = set.Partnership
			name = "Parceria"
		default:
			return ErrorToast(e, http.StatusBadRequest, "Lista desconhecida")
		}
		if len(rows) == 0 {
			SetToast(e, ToastInfo, "Nenhuma etiqueta para imprimir")
			return e.NoContent(http.StatusNoContent)
		}

		pdfBytes, err := services.GenerateLabelsPDF(rows)
		if err != nil {
			app.Logger().Error("labels export pdf", "list", name, "error", err)
			return ErrorToast(e, http.StatusInternalServerError, "Falha ao gerar o PDF")
		}

		filename := fmt.Sprintf("%s_%s.pdf", name, time.Now().Format("2006-01-02"))
		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Header().Set("Content-Length", fmt.Sprintf("%d", len(pdfBytes)))
		_, err = e.Response.Write(pdfBytes)
		return err
	}
}
