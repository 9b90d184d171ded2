package handlers

import (
	"context"
	"fmt"
	"net/http"
	"schedule-comparison-service/internal/api/dto"
	"schedule-comparison-service/internal/domain"
	"schedule-comparison-service/internal/ports"
	"strconv"
)

const (
	defaultRunLimit = 20
	maxRunLimit     = 200
)

// Reloader is the write side used by POST /api/reload.
type Reloader interface {
	Reload(ctx context.Context) (domain.LoadRun, error)
}

type RunHandler struct {
	Runs     ports.RunLister
	Reloader Reloader
}

// List returns the most recent archived loads, newest first.
func (h *RunHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultRunLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxRunLimit {
			writeServiceError(w, r, fmt.Errorf("limit must be between 1 and %d, got %q: %w", maxRunLimit, raw, domain.ErrInvalidParameter))
			return
		}
		limit = n
	}

	runs, err := h.Runs.ListRuns(r.Context(), limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res := dto.ListRunResponse{Runs: make([]dto.RunResponse, 0, len(runs))}
	for _, run := range runs {
		res.Runs = append(res.Runs, toRunResponse(run))
	}
	writeJSON(w, r, http.StatusOK, res)
}

// Reload re-reads the configured sources and swaps the snapshot. On failure
// the previous snapshot keeps serving.
func (h *RunHandler) Reload(w http.ResponseWriter, r *http.Request) {
	run, err := h.Reloader.Reload(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toRunResponse(run))
}

func toRunResponse(run domain.LoadRun) dto.RunResponse {
	return dto.RunResponse{
		RunID:                  run.RunID.String(),
		LoadedAt:               run.LoadedAt,
		OriginalSource:         run.OriginalSource,
		OptimizedSource:        run.OptimizedSource,
		OriginalVisits:         run.OriginalVisits,
		OptimizedVisits:        run.OptimizedVisits,
		OriginalSkipped:        run.OriginalSkipped,
		OptimizedSkipped:       run.OptimizedSkipped,
		OriginalTravelMinutes:  run.OriginalTravelMinutes,
		OptimizedTravelMinutes: run.OptimizedTravelMinutes,
		TravelImprovementPct:   run.TravelImprovementPct,
	}
}
