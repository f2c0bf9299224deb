package domain

// BenchmarkEntry is a static industry reference value for one metric.
type BenchmarkEntry struct {
	Metric          MetricKind
	IndustryAverage float64
	Unit            string // usd, count, ratio
}

// Tier classifies a metric relative to its benchmark.
type Tier string

const (
	TierAbove Tier = "above"
	TierAt    Tier = "at"
	TierBelow Tier = "below"
)

// BenchmarkComparison is one compared metric. DeltaPct is nil (and
// Undefined true) when the benchmark value is zero.
type BenchmarkComparison struct {
	Metric    MetricKind
	Actual    float64
	Benchmark float64
	DeltaPct  *float64
	Tier      Tier
	Undefined bool
}

// ComparisonReport holds compared rows plus the metrics that could not
// be compared in either direction.
type ComparisonReport struct {
	Rows []BenchmarkComparison

	// Snapshot metrics with no benchmark entry.
	Unbenchmarked []MetricKind
	// Benchmark entries with no snapshot value.
	Unmatched []MetricKind

	Warnings []Warning
}
