package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"schedule-comparison-service/internal/api/dto"
	"schedule-comparison-service/internal/domain"
	"schedule-comparison-service/internal/platform/obs"
)

const (
	codeNotLoaded        = "not_loaded"
	codeInvalidParameter = "invalid_parameter"
	codeEmptySchedule    = "empty_schedule"
	codeInternal         = "internal"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	writeJSON(w, r, status, map[string]string{"error": code, "message": msg})
}

// writeServiceError maps domain sentinel errors onto HTTP responses.
// Anything unrecognized is logged and reported as an internal error.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotLoaded):
		writeError(w, r, http.StatusServiceUnavailable, codeNotLoaded, "no schedule snapshot has been loaded")
	case errors.Is(err, domain.ErrInvalidParameter):
		writeError(w, r, http.StatusBadRequest, codeInvalidParameter, err.Error())
	case errors.Is(err, domain.ErrEmptySchedule):
		writeError(w, r, http.StatusUnprocessableEntity, codeEmptySchedule, err.Error())
	default:
		log.Printf("request failed: req_id=%s method=%s path=%s err=%v", obs.RequestID(r.Context()), r.Method, r.URL.Path, err)
		writeError(w, r, http.StatusInternalServerError, codeInternal, "internal server error")
	}
}

func toRowResponses(rows []domain.ComparisonRow) []dto.ComparisonRowResponse {
	out := make([]dto.ComparisonRowResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.ComparisonRowResponse(row))
	}
	return out
}
