package dto

type ComparisonRowResponse struct {
	Label          string  `json:"label"`
	OriginalValue  float64 `json:"original_value"`
	OptimizedValue float64 `json:"optimized_value"`
	ImprovementPct float64 `json:"improvement_pct"`
}

type ComparisonResponse struct {
	Metric string                  `json:"metric"`
	View   string                  `json:"view"`
	Rows   []ComparisonRowResponse `json:"rows"`
}

type SlotsResponse struct {
	View string                  `json:"view"`
	Rows []ComparisonRowResponse `json:"rows"`
}

type TimeShiftBucketResponse struct {
	OffsetDays    int `json:"offset_days"`
	CustomerCount int `json:"customer_count"`
}

type TimeShiftResponse struct {
	Buckets []TimeShiftBucketResponse `json:"buckets"`
}
