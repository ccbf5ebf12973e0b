package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GravityPDF/gravity-pdf-images/internal/metrics"
	"github.com/GravityPDF/gravity-pdf-images/internal/queue"
)

type queueResponse struct {
	Queued int      `json:"queued"`
	Jobs   []string `json:"jobs"`
}

type resizeResult struct {
	Path   string `json:"path"`
	Target string `json:"target,omitempty"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// QueueEntry queues a resize job for every image uploaded to the entry and
// wakes the worker.
func (h *Handler) QueueEntry(w http.ResponseWriter, r *http.Request) {
	req, err := decodeEntryRequest(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	jobs := h.resizer.QueueJobs(req.Form, req.Entry)
	ids := make([]string, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}
	if len(jobs) == 0 {
		writeJSON(w, http.StatusOK, queueResponse{Jobs: ids})
		return
	}

	n, err := h.queue.Enqueue(r.Context(), jobs...)
	if err != nil {
		h.logger.Error().Err(err).Str("entry", req.Entry.ID).Msg("failed to queue resize jobs")
		writeError(w, http.StatusInternalServerError, "failed to queue jobs")
		return
	}
	h.metrics.Record(metrics.EventQueued, n)
	if n > 0 && h.onQueued != nil {
		h.onQueued()
	}

	h.logger.Info().Str("entry", req.Entry.ID).Int("queued", n).Msg("queued resize jobs")
	writeJSON(w, http.StatusAccepted, queueResponse{Queued: n, Jobs: ids})
}

// ResizeEntry resizes the entry's images before responding.
func (h *Handler) ResizeEntry(w http.ResponseWriter, r *http.Request) {
	req, err := decodeEntryRequest(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	results := h.resizer.ResizeEntry(r.Context(), req.Form, req.Entry)
	out := make([]resizeResult, 0, len(results))
	for _, res := range results {
		rr := resizeResult{Path: res.Path, Target: res.Target, Status: res.Status.String()}
		if res.Err != nil {
			rr.Error = res.Err.Error()
		}
		out = append(out, rr)
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": out})
}

func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	job, err := h.queue.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, queue.ErrNotFound) {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load job")
		writeError(w, http.StatusInternalServerError, "failed to load job")
		return
	}
	writeJSON(w, http.StatusOK, job)
}
