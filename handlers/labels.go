package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"etiquetas/config"
	"etiquetas/services"
	"etiquetas/templates"
)

// maxUploadSize bounds the multipart form of the upload endpoints.
const maxUploadSize = 32 << 20

// HandleLabelsPage renders the upload form.
// Route: GET /
func HandleLabelsPage(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if isHTMX(e) {
			return templates.UploadContent().Render(e.Request.Context(), e.Response)
		}
		return templates.UploadPage().Render(e.Request.Context(), e.Response)
	}
}

// HandleLabelsProcess runs a label run on the uploaded manifest and
// spreadsheet and returns the results partial.
// Route: POST /labels/process
func HandleLabelsProcess(app *pocketbase.PocketBase, cfg config.LabelConfig) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseMultipartForm(maxUploadSize); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Arquivo muito grande ou formulário inválido")
		}

		manifest, err := readManifest(e)
		if errors.Is(err, errMissingManifest) {
			return ErrorToast(e, http.StatusBadRequest, "Envie o relatório de transporte")
		}
		if err != nil {
			app.Logger().Warn("labels: manifest upload", "error", err)
			return ErrorToast(e, http.StatusBadRequest, "Não foi possível ler o relatório de transporte")
		}

		sheet, header, err := e.Request.FormFile("spreadsheet")
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Envie a planilha de remessas")
		}
		defer sheet.Close()

		tables, err := services.LoadLabelTables(app)
		if err != nil {
			app.Logger().Error("labels: load reference tables", "error", err)
			return ErrorToast(e, http.StatusInternalServerError, "Algo deu errado. Tente novamente.")
		}
		pipeline, err := services.NewPipeline(tables, cfg)
		if err != nil {
			app.Logger().Error("labels: build pipeline", "error", err)
			return ErrorToast(e, http.StatusInternalServerError, "Algo deu errado. Tente novamente.")
		}

		set, err := pipeline.Process(manifest, sheet, header.Filename)
		if err != nil {
			if errors.Is(err, services.ErrUnreadableSpreadsheet) {
				app.Logger().Warn("labels: unreadable spreadsheet", "file", header.Filename, "error", err)
				return ErrorToast(e, http.StatusBadRequest, "Não foi possível ler a planilha "+header.Filename)
			}
			app.Logger().Error("labels: process", "error", err)
			return ErrorToast(e, http.StatusInternalServerError, "Algo deu errado. Tente novamente.")
		}

		labelsJSON, err := json.Marshal(set)
		if err != nil {
			app.Logger().Error("labels: marshal label set", "error", err)
			return ErrorToast(e, http.StatusInternalServerError, "Algo deu errado. Tente novamente.")
		}

		app.Logger().Info("labels generated",
			"spreadsheet", header.Filename,
			"main", len(set.Main),
			"partnership", len(set.Partnership),
			"partnershipSkus", pipeline.PartnershipSKUs(),
		)

		if set.Len() == 0 {
			SetToast(e, ToastInfo, "Nenhuma etiqueta gerada")
		} else {
			SetToast(e, ToastSuccess, fmt.Sprintf("%d etiquetas geradas", set.Len()))
		}

		return templates.LabelResults(templates.LabelResultsData{
			Main:        set.Main,
			Partnership: set.Partnership,
			LabelsJSON:  string(labelsJSON),
		}).Render(e.Request.Context(), e.Response)
	}
}

// HandleLabelsFilter narrows both tables to the rows matching q.
// Route: POST /labels/filter
func HandleLabelsFilter(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		set, err := postedLabelSet(e)
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, labelSetMessage(err))
		}

		q := e.Request.FormValue("q")
		return templates.LabelTables(
			services.FilterLabels(set.Main, q),
			services.FilterLabels(set.Partnership, q),
		).Render(e.Request.Context(), e.Response)
	}
}

var errMissingManifest = errors.New("no manifest file or text was sent")

// readManifest returns the uploaded manifest file decoded to UTF-8, or the
// pasted text when no file was sent. Blank content is not an error.
func readManifest(e *core.RequestEvent) (string, error) {
	file, _, err := e.Request.FormFile("manifest")
	if errors.Is(err, http.ErrMissingFile) {
		if !e.Request.Form.Has("manifest_text") {
			return "", errMissingManifest
		}
		return e.Request.FormValue("manifest_text"), nil
	}
	if err != nil {
		return "", fmt.Errorf("open manifest: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("read manifest: %w", err)
	}
	return services.DecodeManifest(data), nil
}

var (
	errMissingLabels = errors.New("labels_json is missing")
	errInvalidLabels = errors.New("labels_json is invalid")
)

// postedLabelSet decodes the labels_json field carried by the results forms.
func postedLabelSet(e *core.RequestEvent) (*services.LabelSet, error) {
	if err := e.Request.ParseForm(); err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidLabels, err)
	}
	raw := e.Request.FormValue("labels_json")
	if raw == "" {
		return nil, errMissingLabels
	}

	var set services.LabelSet
	if err := json.Unmarshal([]byte(raw), &set); err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidLabels, err)
	}
	return &set, nil
}

// labelSetMessage is the user-facing text for a postedLabelSet error.
func labelSetMessage(err error) string {
	if errors.Is(err, errMissingLabels) {
		return "Dados das etiquetas ausentes. Processe os arquivos novamente."
	}
	return "Dados das etiquetas inválidos"
}
