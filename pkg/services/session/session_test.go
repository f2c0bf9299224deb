package session

import (
	"testing"

	"github.com/echolon-ai/echolon/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Notes(t *testing.T) {
	s := New()
	assert.Empty(t, s.Notes())

	s.AddNote("review churn spike")
	s.AddNote("share with finance")

	notes := s.Notes()
	require.Len(t, notes, 2)
	assert.Equal(t, "review churn spike", notes[0].Text)
	assert.False(t, notes[0].CreatedAt.IsZero())
}

func TestSession_GoalLifecycle(t *testing.T) {
	s := New()

	s.SetGoal(domain.Goal{Metric: domain.MetricRevenue, TargetValue: 120000})
	s.SetGoal(domain.Goal{Metric: domain.MetricOrders, TargetValue: 500})
	require.Len(t, s.Goals(), 2)

	// Setting the same metric edits in place.
	s.SetGoal(domain.Goal{Metric: domain.MetricRevenue, TargetValue: 150000})
	goals := s.Goals()
	require.Len(t, goals, 2)
	for _, g := range goals {
		if g.Metric == domain.MetricRevenue {
			assert.Equal(t, 150000.0, g.TargetValue)
		}
	}

	s.RemoveGoal(domain.MetricOrders)
	require.Len(t, s.Goals(), 1)
	assert.Equal(t, domain.MetricRevenue, s.Goals()[0].Metric)
}

func TestSession_LastReport(t *testing.T) {
	s := New()
	assert.Nil(t, s.LastReport())

	report := &domain.AnalysisReport{Industry: "general"}
	s.SetLastReport(report)
	assert.Same(t, report, s.LastReport())
}
