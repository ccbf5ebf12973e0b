package handler

import (
	"net/http"
	"time"

	"github.com/GravityPDF/gravity-pdf-images/internal/metrics"
	"github.com/GravityPDF/gravity-pdf-images/internal/queue"
)

type HealthResponse struct {
	Status    string         `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Queue     *queue.Stats   `json:"queue,omitempty"`
	Metrics   *metrics.Stats `json:"metrics,omitempty"`
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Error().Err(err).Msg("database ping failed")
		writeJSON(w, http.StatusInternalServerError, HealthResponse{
			Status:    "unhealthy",
			Timestamp: time.Now().UTC(),
		})
		return
	}

	resp := HealthResponse{Status: "healthy", Timestamp: time.Now().UTC()}
	if h.queue != nil {
		if stats, err := h.queue.Stats(ctx); err == nil {
			resp.Queue = &stats
		}
	}
	if h.metrics != nil {
		snap := h.metrics.Snapshot()
		resp.Metrics = &snap
	}
	writeJSON(w, http.StatusOK, resp)
}
