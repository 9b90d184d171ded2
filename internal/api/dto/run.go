package dto

import "time"

type RunResponse struct {
	RunID                  string    `json:"run_id"`
	LoadedAt               time.Time `json:"loaded_at"`
	OriginalSource         string    `json:"original_source"`
	OptimizedSource        string    `json:"optimized_source"`
	OriginalVisits         int       `json:"original_visits"`
	OptimizedVisits        int       `json:"optimized_visits"`
	OriginalSkipped        int       `json:"original_skipped"`
	OptimizedSkipped       int       `json:"optimized_skipped"`
	OriginalTravelMinutes  float64   `json:"original_travel_minutes"`
	OptimizedTravelMinutes float64   `json:"optimized_travel_minutes"`
	TravelImprovementPct   float64   `json:"travel_improvement_pct"`
}

type ListRunResponse struct {
	Runs []RunResponse `json:"runs"`
}
