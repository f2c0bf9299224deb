package goals

import "github.com/echolon-ai/echolon/pkg/models/domain"

// SuggestionProvider produces short recovery suggestions for a
// (metric, status) pair. The rule table below is the fixed default; a
// generative implementation can be swapped in without touching any
// call site.
type SuggestionProvider interface {
	Suggest(metric domain.MetricKind, status domain.GoalStatus) []string
}

type ruleKey struct {
	metric domain.MetricKind
	status domain.GoalStatus
}

// RuleTable is the deterministic suggestion source.
type RuleTable struct {
	rules map[ruleKey][]string
}

func NewRuleTable() *RuleTable {
	return &RuleTable{rules: map[ruleKey][]string{
		{domain.MetricRevenue, domain.GoalAtRisk}: {
			"Reallocate 10-15% from underperforming channels.",
			"Increase pricing tiers by +5% if churn < 3%.",
		},
		{domain.MetricRevenue, domain.GoalOnTrack}: {
			"Hold current channel mix; revisit pricing after the next period.",
		},
		{domain.MetricOrders, domain.GoalAtRisk}: {
			"Run a limited-time bundle to lift order volume.",
			"Review checkout funnel drop-off for quick wins.",
		},
		{domain.MetricConversionRate, domain.GoalAtRisk}: {
			"A/B test landing pages on the two highest-traffic channels.",
		},
		{domain.MetricChurnRate, domain.GoalAtRisk}: {
			"Launch a win-back campaign for customers inactive 30+ days.",
			"Survey recent churners to isolate the top cancellation driver.",
		},
		{domain.MetricAdSpend, domain.GoalAtRisk}: {
			"Shift budget toward the channels with the strongest ROI.",
		},
		{domain.MetricPrice, domain.GoalAtRisk}: {
			"Test a +5% increase on the top-selling tier.",
		},
	}}
}

func (r *RuleTable) Suggest(metric domain.MetricKind, status domain.GoalStatus) []string {
	return r.rules[ruleKey{metric: metric, status: status}]
}
