package api

import "time"

type Goal struct {
	Metric       string    `json:"metric"`
	TargetValue  float64   `json:"target_value"`
	TargetPeriod time.Time `json:"target_period,omitempty"`
}

type GoalProgress struct {
	Goal          Goal     `json:"goal"`
	CurrentValue  float64  `json:"current_value"`
	ProgressRatio float64  `json:"progress_ratio"`
	Status        string   `json:"status"`
	Suggestions   []string `json:"suggestions,omitempty"`
}

type Note struct {
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

type BenchmarkEntry struct {
	Metric          string  `json:"metric"`
	IndustryAverage float64 `json:"industry_average"`
	Unit            string  `json:"unit"`
}

type HistoryEntry struct {
	ID          string    `json:"id"`
	Industry    string    `json:"industry"`
	GeneratedAt time.Time `json:"generated_at"`
}
