package engine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/echolon-ai/echolon/pkg/models/domain"
	"github.com/echolon-ai/echolon/pkg/services/benchmark"
	"github.com/echolon-ai/echolon/pkg/services/goals"
	"github.com/echolon-ai/echolon/pkg/services/normalize"
	"github.com/echolon-ai/echolon/pkg/services/scenario"
	"github.com/echolon-ai/echolon/pkg/services/schema"
	"github.com/rs/zerolog"
)

// Analyzer runs the full pipeline: infer -> normalize -> compare ->
// track, plus on-demand what-if projections. Every stage is a pure
// transformation, so an Analyzer is safe to share across sessions.
type Analyzer struct {
	cfg        Config
	inferencer *schema.Inferencer
	normalizer *normalize.Normalizer
	simulator  *scenario.CachedSimulator
	tracker    *goals.Tracker
	benchmarks benchmark.Registry
}

// NewAnalyzer wires the pipeline. A nil registry falls back to the
// bundled benchmark table and a nil provider to the fixed rule table.
func NewAnalyzer(cfg Config, registry benchmark.Registry, provider goals.SuggestionProvider) *Analyzer {
	if cfg.Industry == "" {
		cfg.Industry = benchmark.DefaultIndustry
	}
	if registry == nil {
		registry = benchmark.NewStaticRegistry()
	}
	return &Analyzer{
		cfg:        cfg,
		inferencer: schema.NewInferencer(cfg.Schema),
		normalizer: normalize.NewNormalizer(),
		simulator:  scenario.NewCachedSimulator(scenario.NewSimulator(cfg.Scenario)),
		tracker:    goals.NewTracker(provider),
		benchmarks: registry,
	}
}

// Analyze produces the full report for one uploaded table.
func (a *Analyzer) Analyze(
	ctx context.Context,
	table domain.RawTable,
	userGoals []domain.Goal,
) (*domain.AnalysisReport, error) {
	logger := zerolog.Ctx(ctx)

	profiles, schemaWarnings, err := a.inferencer.Infer(table)
	if err != nil {
		return nil, fmt.Errorf("schema inference failed: %w", err)
	}

	metrics, normWarnings, err := a.normalizer.Normalize(table, profiles)
	if err != nil {
		return nil, fmt.Errorf("normalization failed: %w", err)
	}

	entries, err := a.benchmarks.Entries(a.cfg.Industry)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve benchmarks for %q: %w", a.cfg.Industry, err)
	}

	snapshot := metrics.LatestSnapshot()
	comparison := benchmark.Compare(snapshot, entries)
	tracked := a.tracker.Track(userGoals, snapshot)

	report := &domain.AnalysisReport{
		Industry:    a.cfg.Industry,
		GeneratedAt: time.Now().UTC(),
		Profiles:    profiles,
		Metrics:     metrics,
		Benchmark:   comparison,
		Goals:       tracked,
	}
	report.Warnings = append(report.Warnings, schemaWarnings...)
	report.Warnings = append(report.Warnings, normWarnings...)
	report.Warnings = append(report.Warnings, comparison.Warnings...)
	report.Insights = buildInsights(comparison, tracked, metrics)

	logger.Info().
		Int("columns", len(table.Columns)).
		Int("rows", len(table.Rows)).
		Int("metric_points", len(metrics.Points)).
		Int("warnings", len(report.Warnings)).
		Bool("has_time_dimension", metrics.HasTimeDimension).
		Msg("analysis completed")

	return report, nil
}

// Simulate projects revenue and profit for a driver set against the
// latest snapshot of the given table.
func (a *Analyzer) Simulate(
	ctx context.Context,
	metrics *domain.NormalizedMetricTable,
	drivers domain.ScenarioDriverSet,
) domain.ScenarioResult {
	result := a.simulator.Simulate(metrics.LatestSnapshot(), metrics.LatestPeriod(), drivers)

	zerolog.Ctx(ctx).Debug().
		Float64("projected_revenue", result.ProjectedRevenue).
		Float64("projected_profit", result.ProjectedProfit).
		Bool("clamped", result.Clamped).
		Msg("scenario simulated")

	return result
}

// SimulateSnapshot is Simulate for hosts that hold a bare snapshot
// instead of a normalized table.
func (a *Analyzer) SimulateSnapshot(
	baseline map[domain.MetricKind]float64,
	baselinePeriod time.Time,
	drivers domain.ScenarioDriverSet,
) domain.ScenarioResult {
	return a.simulator.Simulate(baseline, baselinePeriod, drivers)
}

// Industry returns the benchmark profile this analyzer compares against.
func (a *Analyzer) Industry() string {
	return a.cfg.Industry
}

// buildInsights renders deterministic summary lines from the computed
// rows. These are placeholders with the same shape a generative
// provider would fill later.
func buildInsights(
	comparison domain.ComparisonReport,
	tracked []domain.GoalProgress,
	metrics *domain.NormalizedMetricTable,
) []string {
	var insights []string

	for _, row := range comparison.Rows {
		if row.DeltaPct == nil {
			continue
		}
		direction := "above"
		if *row.DeltaPct < 0 {
			direction = "below"
		}
		insights = append(insights, fmt.Sprintf(
			"%s is %.1f%% %s the industry average.",
			displayName(row.Metric), math.Abs(*row.DeltaPct)*100, direction,
		))
	}

	for _, g := range tracked {
		switch g.Status {
		case domain.GoalMet:
			insights = append(insights, fmt.Sprintf("%s goal met (%.0f%% of target).",
				displayName(g.Goal.Metric), g.ProgressRatio*100))
		case domain.GoalAtRisk:
			insights = append(insights, fmt.Sprintf("%s goal at risk: %.0f%% of target reached.",
				displayName(g.Goal.Metric), g.ProgressRatio*100))
		}
	}

	if !metrics.HasTimeDimension {
		insights = append(insights, "Upload has no date column; analysis reflects a single point in time.")
	}

	return insights
}

func displayName(kind domain.MetricKind) string {
	switch kind {
	case domain.MetricRevenue:
		return "Revenue"
	case domain.MetricOrders:
		return "Orders"
	case domain.MetricChurnRate:
		return "Churn rate"
	case domain.MetricConversionRate:
		return "Conversion rate"
	case domain.MetricAdSpend:
		return "Ad spend"
	case domain.MetricPrice:
		return "Price"
	default:
		return string(kind)
	}
}
