package handler

import (
	"net/http"

	"github.com/GravityPDF/gravity-pdf-images/internal/render"
	"github.com/GravityPDF/gravity-pdf-images/internal/settings"
)

// RenderEntry returns the HTML of every field of the entry as it appears in
// the PDF.
func (h *Handler) RenderEntry(w http.ResponseWriter, r *http.Request) {
	req, err := decodeEntryRequest(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	html := render.Document(req.Form, req.Entry, render.Options{
		Settings:            req.display(h.settings),
		ShowEmpty:           req.ShowEmpty,
		Preview:             req.Preview,
		DisablePlaceholders: req.DisablePlaceholders,
		PlaceholderURL:      h.placeholderURL,
	}, h.deps)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

// FormData returns the entry export consumed by PDF templates.
func (h *Handler) FormData(w http.ResponseWriter, r *http.Request) {
	req, err := decodeEntryRequest(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, render.BuildFormData(req.Form, req.Entry, req.display(h.settings), h.deps))
}

func (h *Handler) Styles(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Write([]byte(render.Styles()))
}

// SettingsFields lists the options a PDF settings screen offers.
func (h *Handler) SettingsFields(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]settings.Definition{
		"pdf":    settings.Definitions(),
		"global": settings.GlobalDefinitions(),
	})
}
