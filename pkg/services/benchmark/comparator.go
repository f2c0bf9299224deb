package benchmark

import (
	"fmt"
	"sort"

	"github.com/echolon-ai/echolon/pkg/models/domain"
)

// TierThreshold is the +/- band around the benchmark inside which a
// metric is considered at the industry average.
const TierThreshold = 0.05

// Compare produces signed percentage deviations against the reference
// table. Metrics present in only one side are reported separately, and
// a zero benchmark yields an undefined row instead of a division.
func Compare(
	snapshot map[domain.MetricKind]float64,
	entries []domain.BenchmarkEntry,
) domain.ComparisonReport {
	var report domain.ComparisonReport

	benchmarked := make(map[domain.MetricKind]struct{}, len(entries))
	for _, entry := range entries {
		benchmarked[entry.Metric] = struct{}{}

		actual, ok := snapshot[entry.Metric]
		if !ok {
			report.Unmatched = append(report.Unmatched, entry.Metric)
			continue
		}

		row := domain.BenchmarkComparison{
			Metric:    entry.Metric,
			Actual:    actual,
			Benchmark: entry.IndustryAverage,
		}

		if entry.IndustryAverage == 0 {
			row.Undefined = true
			report.Warnings = append(report.Warnings, domain.Warning{
				Kind:   domain.WarnDivisionUndefined,
				Detail: fmt.Sprintf("benchmark for %s is zero; deviation undefined", entry.Metric),
			})
		} else {
			delta := (actual - entry.IndustryAverage) / entry.IndustryAverage
			row.DeltaPct = &delta
			row.Tier = tierFor(delta)
		}

		report.Rows = append(report.Rows, row)
	}

	for metric := range snapshot {
		if _, ok := benchmarked[metric]; !ok {
			report.Unbenchmarked = append(report.Unbenchmarked, metric)
		}
	}

	sort.Slice(report.Rows, func(i, j int) bool { return report.Rows[i].Metric < report.Rows[j].Metric })
	sort.Slice(report.Unbenchmarked, func(i, j int) bool { return report.Unbenchmarked[i] < report.Unbenchmarked[j] })
	sort.Slice(report.Unmatched, func(i, j int) bool { return report.Unmatched[i] < report.Unmatched[j] })

	return report
}

func tierFor(delta float64) domain.Tier {
	switch {
	case delta > TierThreshold:
		return domain.TierAbove
	case delta < -TierThreshold:
		return domain.TierBelow
	default:
		return domain.TierAt
	}
}
