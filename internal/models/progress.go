package models

// ProgressSummary holds every value the free shipping widget renders.
type ProgressSummary struct {
	Enabled           bool    `json:"enabled"`
	Eligible          bool    `json:"eligible"`
	MinValue          float64 `json:"min_value"`
	CurrentTotal      float64 `json:"current_total"`
	Difference        float64 `json:"difference"`
	CompletionPercent float64 `json:"completion_percent"`
}
