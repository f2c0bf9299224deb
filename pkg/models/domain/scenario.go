package domain

import "time"

// ScenarioDriverSet carries the user-adjustable percentage changes,
// expressed as fractions (+0.10 == +10%).
type ScenarioDriverSet struct {
	AdSpendPctChange float64
	PricePctChange   float64
	ChurnPctChange   float64
}

// ScenarioResult is a projection for one driver set against one
// baseline. Drivers holds the values actually used after clamping.
type ScenarioResult struct {
	ProjectedRevenue float64
	ProjectedProfit  float64
	Drivers          ScenarioDriverSet
	BaselinePeriod   time.Time
	Clamped          bool
	Warnings         []Warning
}
