package dto

import "time"

type VariantSummaryResponse struct {
	Visits               int     `json:"visits"`
	Customers            int     `json:"customers"`
	Teams                int     `json:"teams"`
	TeamDays             int     `json:"team_days"`
	WorkingDays          int     `json:"working_days"`
	TotalTravelMinutes   float64 `json:"total_travel_minutes"`
	AvgTravelPerDay      float64 `json:"avg_travel_per_day"`
	AvgTravelPerTeamDay  float64 `json:"avg_travel_per_team_day"`
	AvgTravelPerCustomer float64 `json:"avg_travel_per_customer"`
	DepotTravelMinutes   float64 `json:"depot_travel_minutes"`
	SkippedRows          int     `json:"skipped_rows"`
}

type SummaryResponse struct {
	RunID                string                 `json:"run_id"`
	LoadedAt             time.Time              `json:"loaded_at"`
	Original             VariantSummaryResponse `json:"original"`
	Optimized            VariantSummaryResponse `json:"optimized"`
	CoveragePct          float64                `json:"coverage_pct"`
	TravelImprovementPct float64                `json:"travel_improvement_pct"`
}
