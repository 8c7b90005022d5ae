// Package templates holds the HTML components of the label application.
// Components implement templ.Component and are rendered by the handlers
// directly into the response.
package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// htmlWriter writes markup and stops at the first error, which Render
// returns once the component is done.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newHTMLWriter(ctx context.Context, w io.Writer) *htmlWriter {
	return &htmlWriter{ctx: ctx, w: w}
}

// raw writes trusted markup.
func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// text writes s escaped for element content or a quoted attribute value.
func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) component(c templ.Component) {
	if h.err != nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

// hidden writes a hidden form input.
func (h *htmlWriter) hidden(name, value string) {
	h.raw(`<input type="hidden" name="`)
	h.text(name)
	h.raw(`" value="`)
	h.text(value)
	h.raw(`">`)
}

// Page wraps content in the application shell. HTMX requests receive the
// content alone, see the handlers.
func Page(title string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<!DOCTYPE html><html lang="pt-BR"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(title)
		h.raw(`</title>`)
		h.raw(`<script src="https://unpkg.com/htmx.org@2.0.4"></script>`)
		h.raw(`<link rel="stylesheet" href="/static/app.css">`)
		h.raw(`</head><body>`)
		h.raw(`<nav class="topbar"><a href="/">Etiquetas</a><a href="/parceria">Parceria</a></nav>`)
		h.raw(`<div id="toast" class="toast" hidden></div>`)
		h.raw(`<main id="main-content">`)
		h.component(content)
		h.raw(`</main>`)
		h.raw(toastScript)
		h.raw(`</body></html>`)
		return h.err
	})
}

// toastScript shows the HX-Trigger showToast event and the flash_toast
// cookie left by non-HTMX redirects.
const toastScript = `<script>
function showToast(d){var t=document.getElementById("toast");t.textContent=d.message;t.className="toast toast-"+d.type;t.hidden=false;setTimeout(function(){t.hidden=true},4000)}
document.body.addEventListener("showToast",function(e){showToast(e.detail)});
(function(){var m=document.cookie.match(/(?:^|; )flash_toast=([^;]*)/);if(m){try{showToast(JSON.parse(decodeURIComponent(m[1].replace(/\+/g," "))))}catch(_){}document.cookie="flash_toast=; Max-Age=0; path=/"}})();
</script>`
