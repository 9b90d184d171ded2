package handlers

import (
	"net/http"
	"schedule-comparison-service/internal/domain"
)

type SnapshotReader interface {
	Snapshot() (*domain.AnalyticsSnapshot, error)
}

type HealthHandler struct {
	Engine SnapshotReader
}

// Health is a liveness check that also reports whether a snapshot is loaded.
// A process without data is still alive, so the status code stays 200.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	_, err := h.Engine.Snapshot()

	res := map[string]any{"status": "ok", "loaded": err == nil}
	writeJSON(w, r, http.StatusOK, res)
}
