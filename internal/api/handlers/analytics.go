package handlers

import (
	"fmt"
	"net/http"
	"schedule-comparison-service/internal/api/dto"
	"schedule-comparison-service/internal/domain"
)

// AnalyticsEngine is the read side of services.Engine.
type AnalyticsEngine interface {
	SnapshotReader
	Query(metric, view string) ([]domain.ComparisonRow, error)
	Slots(view string) ([]domain.ComparisonRow, error)
	TimeShiftDistribution() ([]domain.TimeShiftBucket, error)
}

type AnalyticsHandler struct {
	Engine AnalyticsEngine
}

// Comparison serves the travel comparison for ?metric=total|average|median
// and ?view=day|team. Both parameters default to total/day.
func (h *AnalyticsHandler) Comparison(w http.ResponseWriter, r *http.Request) {
	m, err := domain.ParseMetric(queryOr(r, "metric", string(domain.MetricTotal)))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	v, err := domain.ParseView(queryOr(r, "view", string(domain.ViewDay)))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	rows, err := h.Engine.Query(string(m), string(v))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ComparisonResponse{
		Metric: string(m),
		View:   string(v),
		Rows:   toRowResponses(rows),
	})
}

func (h *AnalyticsHandler) Slots(w http.ResponseWriter, r *http.Request) {
	v, err := domain.ParseView(queryOr(r, "view", string(domain.ViewDay)))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	rows, err := h.Engine.Slots(string(v))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.SlotsResponse{View: string(v), Rows: toRowResponses(rows)})
}

func (h *AnalyticsHandler) TimeShift(w http.ResponseWriter, r *http.Request) {
	buckets, err := h.Engine.TimeShiftDistribution()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res := dto.TimeShiftResponse{Buckets: make([]dto.TimeShiftBucketResponse, 0, len(buckets))}
	for _, b := range buckets {
		res.Buckets = append(res.Buckets, dto.TimeShiftBucketResponse(b))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Engine.Snapshot()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	ov := snap.Overview
	writeJSON(w, r, http.StatusOK, dto.SummaryResponse{
		RunID:                snap.RunID.String(),
		LoadedAt:             snap.LoadedAt,
		Original:             dto.VariantSummaryResponse(ov.Original),
		Optimized:            dto.VariantSummaryResponse(ov.Optimized),
		CoveragePct:          ov.CoveragePct,
		TravelImprovementPct: ov.TravelImprovementPct,
	})
}

// Visits lists the normalized visits of ?variant=original|optimized.
func (h *AnalyticsHandler) Visits(w http.ResponseWriter, r *http.Request) {
	variant, err := domain.ParseVariant(queryOr(r, "variant", string(domain.VariantOriginal)))
	if err != nil {
		writeServiceError(w, r, fmt.Errorf("list visits: %w", err))
		return
	}

	snap, err := h.Engine.Snapshot()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	visits := snap.Visits(variant)
	res := dto.ListVisitResponse{Variant: string(variant), Visits: make([]dto.VisitResponse, 0, len(visits))}
	for _, v := range visits {
		res.Visits = append(res.Visits, dto.VisitResponse{
			CustomerID:      v.CustomerID,
			TeamNumber:      v.TeamNumber,
			Day:             v.Day.Label(),
			Date:            v.Date.Format("2006-01-02"),
			Start:           v.Start.String(),
			End:             v.End.String(),
			DurationMinutes: v.DurationMinutes,
			Address:         v.Address,
			City:            v.City,
		})
	}
	writeJSON(w, r, http.StatusOK, res)
}

func queryOr(r *http.Request, key, fallback string) string {
	if v := r.URL.Query().Get(key); v != "" {
		return v
	}
	return fallback
}
