package domain

import "time"

// AnalysisReport is the full output of one analysis run: everything the
// rendering collaborator needs to draw a dashboard.
type AnalysisReport struct {
	Industry    string
	GeneratedAt time.Time

	Profiles  []ColumnProfile
	Metrics   *NormalizedMetricTable
	Benchmark ComparisonReport
	Goals     []GoalProgress

	// Deterministic natural-language summaries derived from the rows above.
	Insights []string

	Warnings []Warning
}

// Snapshot returns the latest value per metric, or nil when the report
// carries no normalized table.
func (r *AnalysisReport) Snapshot() map[MetricKind]float64 {
	if r.Metrics == nil {
		return nil
	}
	return r.Metrics.LatestSnapshot()
}
