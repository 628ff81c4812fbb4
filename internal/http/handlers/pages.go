package handlers

import (
	"bytes"
	"embed"
	"html/template"
	nethttp "net/http"

	"kbo-news-service/internal/logging"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplates = template.Must(template.New("pages").Option("missingkey=zero").ParseFS(templatesFS, "templates/*.html"))

// render executes a page into a buffer first so a template failure can still
// produce a clean 500.
func (h *Handler) render(w nethttp.ResponseWriter, r *nethttp.Request, name string, data any) {
	var buf bytes.Buffer
	if err := h.pages.ExecuteTemplate(&buf, name, data); err != nil {
		logging.Error(loggerFromContext(r, h.logger), "render page failed", err, "template", name)
		writeError(w, r, nethttp.StatusInternalServerError, "render failed", h.logger)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(nethttp.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
