package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"etiquetas/services"
)

// UploadContent is the form that starts a label run.
func UploadContent() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<section class="card"><h1>Gerar etiquetas</h1>`)
		h.raw(`<form id="upload-form" hx-post="/labels/process" hx-encoding="multipart/form-data" hx-target="#results">`)
		h.raw(`<label>Relatório de transporte (.txt)<input type="file" name="manifest" accept=".txt,text/plain"></label>`)
		h.raw(`<label>ou cole o texto<textarea name="manifest_text" rows="6"></textarea></label>`)
		h.raw(`<label>Planilha de remessas (.xlsx, .csv)<input type="file" name="spreadsheet" accept=".xlsx,.xlsm,.csv" required></label>`)
		h.raw(`<button type="submit">Processar</button>`)
		h.raw(`</form></section>`)
		h.raw(`<div id="results"></div>`)
		return h.err
	})
}

// UploadPage is the full upload page.
func UploadPage() templ.Component {
	return Page("Etiquetas", UploadContent())
}

// LabelResultsData is what the results partial shows. LabelsJSON is the
// complete, unfiltered label set carried by the filter and export forms.
type LabelResultsData struct {
	Main        []services.LabelRow
	Partnership []services.LabelRow
	LabelsJSON  string
	Query       string
}

// LabelResults renders the search box, the export buttons and both tables.
func LabelResults(data LabelResultsData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		if len(data.Main) == 0 && len(data.Partnership) == 0 && data.Query == "" {
			h.raw(`<p class="empty">Nenhuma etiqueta gerada.</p>`)
			return h.err
		}

		h.raw(`<section class="toolbar">`)
		h.raw(`<form hx-post="/labels/filter" hx-target="#label-tables" hx-trigger="input changed delay:300ms from:input[name=q], submit">`)
		h.hidden("labels_json", data.LabelsJSON)
		h.raw(`<input type="search" name="q" placeholder="Buscar em todas as colunas" value="`)
		h.text(data.Query)
		h.raw(`"></form>`)

		h.raw(`<form method="post" action="/labels/export/excel">`)
		h.hidden("labels_json", data.LabelsJSON)
		h.raw(`<button type="submit">Exportar Excel</button></form>`)

		for _, list := range []struct{ value, label string }{
			{"main", "PDF etiquetas"},
			{"partnership", "PDF parceria"},
		} {
			h.raw(`<form method="post" action="/labels/export/pdf">`)
			h.hidden("labels_json", data.LabelsJSON)
			h.hidden("list", list.value)
			h.raw(`<button type="submit">`)
			h.text(list.label)
			h.raw(`</button></form>`)
		}
		h.raw(`</section>`)

		h.raw(`<div id="label-tables">`)
		h.component(LabelTables(data.Main, data.Partnership))
		h.raw(`</div>`)
		return h.err
	})
}

// LabelTables renders the main and partnership tables. It is also the
// partial returned by the filter endpoint.
func LabelTables(main, partnership []services.LabelRow) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.component(labelTable("Etiquetas", main))
		h.component(labelTable("Parceria", partnership))
		return h.err
	})
}

func labelTable(title string, rows []services.LabelRow) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<section class="card"><h2>`)
		h.text(fmt.Sprintf("%s (%d)", title, len(rows)))
		h.raw(`</h2>`)
		if len(rows) == 0 {
			h.raw(`<p class="empty">Nenhuma linha.</p></section>`)
			return h.err
		}

		h.raw(`<table class="labels"><thead><tr>`)
		for _, col := range services.LabelColumns {
			h.raw(`<th>`)
			h.text(col)
			h.raw(`</th>`)
		}
		h.raw(`</tr></thead><tbody>`)
		for _, r := range rows {
			if r.Separator {
				h.raw(`<tr class="separator">`)
			} else {
				h.raw(`<tr>`)
			}
			for _, c := range services.LabelCells(r) {
				h.raw(`<td>`)
				h.text(c)
				h.raw(`</td>`)
			}
			h.raw(`</tr>`)
		}
		h.raw(`</tbody></table></section>`)
		return h.err
	})
}
