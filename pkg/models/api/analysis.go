package api

import "time"

type ColumnProfile struct {
	Name         string   `json:"name"`
	InferredType string   `json:"inferred_type"`
	Confidence   float64  `json:"confidence"`
	SampleValues []string `json:"sample_values,omitempty"`
}

type MetricPoint struct {
	Period time.Time `json:"period"`
	Metric string    `json:"metric"`
	Value  float64   `json:"value"`
}

type MetricTable struct {
	Points           []MetricPoint `json:"points"`
	HasTimeDimension bool          `json:"has_time_dimension"`
	Conflicts        int           `json:"conflicts"`
}

type BenchmarkRow struct {
	Metric    string   `json:"metric"`
	Actual    float64  `json:"actual"`
	Benchmark float64  `json:"benchmark"`
	DeltaPct  *float64 `json:"delta_pct"`
	Tier      string   `json:"tier,omitempty"`
	Undefined bool     `json:"undefined,omitempty"`
}

type ComparisonReport struct {
	Rows          []BenchmarkRow `json:"rows"`
	Unbenchmarked []string       `json:"unbenchmarked,omitempty"`
	Unmatched     []string       `json:"unmatched,omitempty"`
}

type Warning struct {
	Kind   string `json:"kind"`
	Column string `json:"column,omitempty"`
	Detail string `json:"detail,omitempty"`
}

type AnalysisReport struct {
	Industry    string           `json:"industry"`
	GeneratedAt time.Time        `json:"generated_at"`
	Profiles    []ColumnProfile  `json:"profiles"`
	Metrics     *MetricTable     `json:"metrics,omitempty"`
	Benchmark   ComparisonReport `json:"benchmark"`
	Goals       []GoalProgress   `json:"goals,omitempty"`
	Insights    []string         `json:"insights,omitempty"`
	Warnings    []Warning        `json:"warnings,omitempty"`
}
