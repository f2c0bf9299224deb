package adapters

import (
	"github.com/echolon-ai/echolon/pkg/models/api"
	"github.com/echolon-ai/echolon/pkg/models/domain"
)

func MapDomainReportToAPI(report *domain.AnalysisReport) api.AnalysisReport {
	out := api.AnalysisReport{
		Industry:    report.Industry,
		GeneratedAt: report.GeneratedAt,
		Benchmark:   MapDomainComparisonToAPI(report.Benchmark),
		Insights:    report.Insights,
		Warnings:    MapDomainWarningsToAPI(report.Warnings),
	}

	for _, p := range report.Profiles {
		out.Profiles = append(out.Profiles, api.ColumnProfile{
			Name:         p.Name,
			InferredType: string(p.InferredType),
			Confidence:   p.Confidence,
			SampleValues: p.SampleValues,
		})
	}

	if report.Metrics != nil {
		table := &api.MetricTable{
			HasTimeDimension: report.Metrics.HasTimeDimension,
			Conflicts:        report.Metrics.Conflicts,
		}
		for _, p := range report.Metrics.Points {
			table.Points = append(table.Points, api.MetricPoint{
				Period: p.Period,
				Metric: string(p.Metric),
				Value:  p.Value,
			})
		}
		out.Metrics = table
	}

	for _, g := range report.Goals {
		out.Goals = append(out.Goals, MapDomainGoalProgressToAPI(g))
	}

	return out
}

func MapDomainComparisonToAPI(report domain.ComparisonReport) api.ComparisonReport {
	out := api.ComparisonReport{}
	for _, row := range report.Rows {
		out.Rows = append(out.Rows, api.BenchmarkRow{
			Metric:    string(row.Metric),
			Actual:    row.Actual,
			Benchmark: row.Benchmark,
			DeltaPct:  row.DeltaPct,
			Tier:      string(row.Tier),
			Undefined: row.Undefined,
		})
	}
	for _, m := range report.Unbenchmarked {
		out.Unbenchmarked = append(out.Unbenchmarked, string(m))
	}
	for _, m := range report.Unmatched {
		out.Unmatched = append(out.Unmatched, string(m))
	}
	return out
}

func MapDomainGoalProgressToAPI(progress domain.GoalProgress) api.GoalProgress {
	return api.GoalProgress{
		Goal: api.Goal{
			Metric:       string(progress.Goal.Metric),
			TargetValue:  progress.Goal.TargetValue,
			TargetPeriod: progress.Goal.TargetPeriod,
		},
		CurrentValue:  progress.CurrentValue,
		ProgressRatio: progress.ProgressRatio,
		Status:        string(progress.Status),
		Suggestions:   progress.Suggestions,
	}
}

func MapDomainScenarioToAPI(result domain.ScenarioResult) api.ScenarioResult {
	return api.ScenarioResult{
		ProjectedRevenue: result.ProjectedRevenue,
		ProjectedProfit:  result.ProjectedProfit,
		Drivers: api.ScenarioDrivers{
			AdSpendPctChange: result.Drivers.AdSpendPctChange,
			PricePctChange:   result.Drivers.PricePctChange,
			ChurnPctChange:   result.Drivers.ChurnPctChange,
		},
		BaselinePeriod: result.BaselinePeriod,
		Clamped:        result.Clamped,
		Warnings:       MapDomainWarningsToAPI(result.Warnings),
	}
}

func MapDomainWarningsToAPI(warnings []domain.Warning) []api.Warning {
	var out []api.Warning
	for _, w := range warnings {
		out = append(out, api.Warning{
			Kind:   string(w.Kind),
			Column: w.Column,
			Detail: w.Detail,
		})
	}
	return out
}
