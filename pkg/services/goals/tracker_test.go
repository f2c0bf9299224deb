package goals

import (
	"testing"

	"github.com/echolon-ai/echolon/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_StatusBands(t *testing.T) {
	tracker := NewTracker(nil)

	tests := []struct {
		name     string
		current  float64
		target   float64
		ratio    float64
		expected domain.GoalStatus
	}{
		{"met exactly", 120000, 120000, 1.0, domain.GoalMet},
		{"exceeded", 150000, 120000, 1.25, domain.GoalMet},
		{"on track", 100000, 120000, 0.8333333333333334, domain.GoalOnTrack},
		{"on track boundary", 96000, 120000, 0.8, domain.GoalOnTrack},
		{"at risk", 50000, 120000, 0.4166666666666667, domain.GoalAtRisk},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			results := tracker.Track(
				[]domain.Goal{{Metric: domain.MetricRevenue, TargetValue: tc.target}},
				map[domain.MetricKind]float64{domain.MetricRevenue: tc.current},
			)
			require.Len(t, results, 1)
			assert.InDelta(t, tc.ratio, results[0].ProgressRatio, 1e-9)
			assert.Equal(t, tc.expected, results[0].Status)
		})
	}
}

func TestTracker_ZeroTargetInvalid(t *testing.T) {
	tracker := NewTracker(nil)

	results := tracker.Track(
		[]domain.Goal{{Metric: domain.MetricOrders, TargetValue: 0}},
		map[domain.MetricKind]float64{domain.MetricOrders: 50},
	)

	require.Len(t, results, 1)
	assert.Equal(t, domain.GoalInvalid, results[0].Status)
	assert.Zero(t, results[0].ProgressRatio)
}

func TestTracker_MissingMetricTreatedAsZero(t *testing.T) {
	tracker := NewTracker(nil)

	results := tracker.Track(
		[]domain.Goal{{Metric: domain.MetricConversionRate, TargetValue: 0.05}},
		map[domain.MetricKind]float64{},
	)

	require.Len(t, results, 1)
	assert.Equal(t, domain.GoalAtRisk, results[0].Status)
	assert.Zero(t, results[0].CurrentValue)
}

func TestTracker_AtRiskRevenueSuggestions(t *testing.T) {
	tracker := NewTracker(nil)

	results := tracker.Track(
		[]domain.Goal{{Metric: domain.MetricRevenue, TargetValue: 120000}},
		map[domain.MetricKind]float64{domain.MetricRevenue: 60000},
	)

	require.Len(t, results, 1)
	assert.Contains(t, results[0].Suggestions, "Reallocate 10-15% from underperforming channels.")
}

type cannedProvider struct{ lines []string }

func (p *cannedProvider) Suggest(domain.MetricKind, domain.GoalStatus) []string { return p.lines }

func TestTracker_ProviderSwappable(t *testing.T) {
	tracker := NewTracker(&cannedProvider{lines: []string{"generated advice"}})

	results := tracker.Track(
		[]domain.Goal{{Metric: domain.MetricOrders, TargetValue: 100}},
		map[domain.MetricKind]float64{domain.MetricOrders: 10},
	)

	require.Len(t, results, 1)
	assert.Equal(t, []string{"generated advice"}, results[0].Suggestions)
}
