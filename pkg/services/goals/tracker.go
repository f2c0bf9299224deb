package goals

import "github.com/echolon-ai/echolon/pkg/models/domain"

// Status bands for the progress ratio.
const (
	metRatio     = 1.0
	onTrackRatio = 0.8
)

// Tracker scores goals against current metric values.
type Tracker struct {
	suggestions SuggestionProvider
}

// NewTracker builds a tracker; a nil provider falls back to the fixed
// rule table.
func NewTracker(provider SuggestionProvider) *Tracker {
	if provider == nil {
		provider = NewRuleTable()
	}
	return &Tracker{suggestions: provider}
}

// Track computes progress for every goal. A zero target cannot produce
// a ratio and is reported as invalid rather than failing the call.
func (t *Tracker) Track(
	goals []domain.Goal,
	current map[domain.MetricKind]float64,
) []domain.GoalProgress {
	out := make([]domain.GoalProgress, 0, len(goals))

	for _, goal := range goals {
		progress := domain.GoalProgress{
			Goal:         goal,
			CurrentValue: current[goal.Metric],
		}

		if goal.TargetValue == 0 {
			progress.Status = domain.GoalInvalid
		} else {
			progress.ProgressRatio = progress.CurrentValue / goal.TargetValue
			progress.Status = statusFor(progress.ProgressRatio)
		}

		progress.Suggestions = t.suggestions.Suggest(goal.Metric, progress.Status)
		out = append(out, progress)
	}

	return out
}

func statusFor(ratio float64) domain.GoalStatus {
	switch {
	case ratio >= metRatio:
		return domain.GoalMet
	case ratio >= onTrackRatio:
		return domain.GoalOnTrack
	default:
		return domain.GoalAtRisk
	}
}
