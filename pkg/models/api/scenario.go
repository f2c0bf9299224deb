package api

import "time"

type ScenarioDrivers struct {
	AdSpendPctChange float64 `json:"ad_spend_pct_change"`
	PricePctChange   float64 `json:"price_pct_change"`
	ChurnPctChange   float64 `json:"churn_pct_change"`
}

// ScenarioRequest runs a what-if projection. Baseline is optional;
// when omitted, the latest analyzed snapshot is used.
type ScenarioRequest struct {
	Drivers  ScenarioDrivers    `json:"drivers"`
	Baseline map[string]float64 `json:"baseline,omitempty"`
}

type ScenarioResult struct {
	ProjectedRevenue float64         `json:"projected_revenue"`
	ProjectedProfit  float64         `json:"projected_profit"`
	Drivers          ScenarioDrivers `json:"drivers"`
	BaselinePeriod   time.Time       `json:"baseline_period"`
	Clamped          bool            `json:"clamped"`
	Warnings         []Warning       `json:"warnings,omitempty"`
}
