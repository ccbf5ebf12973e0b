package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GravityPDF/gravity-pdf-images/internal/middleware"
)

// RouterOptions configures the middleware in front of the API.
type RouterOptions struct {
	APIToken string
	// Limiter is optional. When set it guards the API routes.
	Limiter *middleware.RateLimiter
}

// NewRouter returns a chi router with every route registered.
func NewRouter(h *Handler, opts RouterOptions) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(h.logger))
	h.RegisterRoutes(r, opts)
	return r
}

func (h *Handler) RegisterRoutes(r chi.Router, opts RouterOptions) {
	r.Get("/health", h.HealthCheck)
	r.Get("/styles.css", h.Styles)
	r.Get("/settings/fields", h.SettingsFields)

	if h.uploadDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.uploadDir))))
	}

	r.Group(func(r chi.Router) {
		if opts.Limiter != nil {
			r.Use(opts.Limiter.Middleware())
		}
		r.Use(middleware.RequireToken(opts.APIToken))

		r.Post("/queue", h.QueueEntry)
		r.Post("/resize", h.ResizeEntry)
		r.Get("/jobs/{id}", h.GetJob)
		r.Post("/render", h.RenderEntry)
		r.Post("/form-data", h.FormData)
	})
}
