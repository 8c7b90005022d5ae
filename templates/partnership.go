package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"etiquetas/services"
)

// PartnershipPageData lists the reference entries matching Query.
type PartnershipPageData struct {
	Items []services.PartnershipItem
	Total int
	Query string
}

// PartnershipContent shows the search box, the import form and the list.
func PartnershipContent(data PartnershipPageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<section class="card"><h1>Itens de parceria</h1>`)

		h.raw(`<form hx-get="/parceria" hx-target="#partnership-list" hx-select="#partnership-list" hx-trigger="input changed delay:300ms from:input[name=q], submit">`)
		h.raw(`<input type="search" name="q" placeholder="Buscar por SKU ou material" value="`)
		h.text(data.Query)
		h.raw(`"></form>`)

		h.raw(`<form hx-post="/parceria/import" hx-encoding="multipart/form-data" hx-target="#import-result">`)
		h.raw(`<label>Substituir lista (.xlsx, .csv com colunas SKU e MATERIAL)<input type="file" name="file" accept=".xlsx,.xlsm,.csv" required></label>`)
		h.raw(`<button type="submit">Importar</button></form>`)
		h.raw(`<a href="/parceria/export" download>Baixar lista atual (.xlsx)</a>`)
		h.raw(`<div id="import-result"></div>`)
		h.raw(`</section>`)

		h.component(PartnershipList(data))
		return h.err
	})
}

// PartnershipPage is the full reference list page.
func PartnershipPage(data PartnershipPageData) templ.Component {
	return Page("Parceria", PartnershipContent(data))
}

// PartnershipList renders the reference table.
func PartnershipList(data PartnershipPageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<section class="card" id="partnership-list"><p class="count">`)
		h.text(fmt.Sprintf("%d de %d itens", len(data.Items), data.Total))
		h.raw(`</p>`)
		if len(data.Items) == 0 {
			h.raw(`<p class="empty">Nenhum item encontrado.</p></section>`)
			return h.err
		}
		h.raw(`<table><thead><tr><th>SKU</th><th>MATERIAL</th></tr></thead><tbody>`)
		for _, it := range data.Items {
			h.raw(`<tr><td>`)
			h.text(it.SKU)
			h.raw(`</td><td>`)
			h.text(it.Material)
			h.raw(`</td></tr>`)
		}
		h.raw(`</tbody></table></section>`)
		return h.err
	})
}

// PartnershipImportResult reports the outcome of an import. When the file
// had validation errors nothing was written and the errors are listed.
func PartnershipImportResult(result *services.ImportResult) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		if len(result.Errors) == 0 {
			h.raw(`<p class="success">`)
			h.text(fmt.Sprintf("%d itens importados.", result.Imported))
			h.raw(`</p>`)
			return h.err
		}

		h.raw(`<div class="errors"><p>`)
		h.text(fmt.Sprintf("Arquivo com %d erro(s); a lista atual foi mantida.", len(result.Errors)))
		h.raw(`</p><table><thead><tr><th>Linha</th><th>Campo</th><th>Erro</th></tr></thead><tbody>`)
		for _, ve := range result.Errors {
			h.raw(`<tr><td>`)
			h.text(fmt.Sprint(ve.Row))
			h.raw(`</td><td>`)
			h.text(ve.Field)
			h.raw(`</td><td>`)
			h.text(ve.Message)
			h.raw(`</td></tr>`)
		}
		h.raw(`</tbody></table></div>`)
		return h.err
	})
}
