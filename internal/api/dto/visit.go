package dto

type VisitResponse struct {
	CustomerID      int    `json:"customer_id"`
	TeamNumber      int    `json:"team_number"`
	Day             string `json:"day"`
	Date            string `json:"date"`
	Start           string `json:"start"`
	End             string `json:"end"`
	DurationMinutes int    `json:"duration_minutes"`
	Address         string `json:"address,omitempty"`
	City            string `json:"city,omitempty"`
}

type ListVisitResponse struct {
	Variant string          `json:"variant"`
	Visits  []VisitResponse `json:"visits"`
}
