// Package handler exposes resize queueing and PDF field rendering over HTTP.
package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/GravityPDF/gravity-pdf-images/internal/form"
	"github.com/GravityPDF/gravity-pdf-images/internal/metrics"
	"github.com/GravityPDF/gravity-pdf-images/internal/queue"
	"github.com/GravityPDF/gravity-pdf-images/internal/render"
	"github.com/GravityPDF/gravity-pdf-images/internal/resize"
	"github.com/GravityPDF/gravity-pdf-images/internal/settings"
)

// maxBodyBytes caps the JSON body of a request.
const maxBodyBytes = 8 << 20

// Options wires a Handler to the rest of the service.
type Options struct {
	DB       *sql.DB
	Queue    *queue.Store
	Resizer  *resize.Resizer
	Metrics  *metrics.Recorder
	Settings *settings.Store
	Deps     render.Deps
	// PlaceholderURL replaces uploaded images in previews.
	PlaceholderURL string
	// UploadDir is served under /uploads/ when set.
	UploadDir string
	// OnQueued runs after new jobs were added to the queue.
	OnQueued func()
	Logger   zerolog.Logger
}

type Handler struct {
	db             *sql.DB
	queue          *queue.Store
	resizer        *resize.Resizer
	metrics        *metrics.Recorder
	settings       *settings.Store
	deps           render.Deps
	placeholderURL string
	uploadDir      string
	onQueued       func()
	logger         zerolog.Logger
}

func New(opts Options) *Handler {
	return &Handler{
		db:             opts.DB,
		queue:          opts.Queue,
		resizer:        opts.Resizer,
		metrics:        opts.Metrics,
		settings:       opts.Settings,
		deps:           opts.Deps,
		placeholderURL: opts.PlaceholderURL,
		uploadDir:      opts.UploadDir,
		onQueued:       opts.OnQueued,
		logger:         opts.Logger.With().Str("component", "handler").Logger(),
	}
}

// EntryRequest is the body shared by every entry endpoint.
type EntryRequest struct {
	Form  form.Form  `json:"form"`
	Entry form.Entry `json:"entry"`
	// PDFID selects saved settings. Settings, when present, take precedence.
	PDFID     string       `json:"pdf_id,omitempty"`
	Settings  settings.Raw `json:"settings,omitempty"`
	Preview   bool         `json:"preview,omitempty"`
	ShowEmpty bool         `json:"show_empty,omitempty"`
	// DisablePlaceholders keeps real images in previews.
	DisablePlaceholders bool `json:"disable_placeholders,omitempty"`
}

func (req EntryRequest) display(store *settings.Store) settings.Display {
	if req.Settings != nil {
		return settings.FromRaw(req.Settings)
	}
	return store.Get(req.PDFID)
}

var errMissingForm = errors.New("form has no fields")

func decodeEntryRequest(w http.ResponseWriter, r *http.Request) (EntryRequest, error) {
	var req EntryRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		return req, err
	}
	if len(req.Form.Fields) == 0 {
		return req, errMissingForm
	}
	return req, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
