package domain

import "time"

// Goal is a user-set target for one metric. Session-scoped.
type Goal struct {
	Metric       MetricKind
	TargetValue  float64
	TargetPeriod time.Time
}

// GoalStatus bands progress toward a goal.
type GoalStatus string

const (
	GoalMet     GoalStatus = "met"
	GoalOnTrack GoalStatus = "on_track"
	GoalAtRisk  GoalStatus = "at_risk"
	GoalInvalid GoalStatus = "invalid" // target value of zero
)

// GoalProgress is the tracked state of one goal.
type GoalProgress struct {
	Goal          Goal
	CurrentValue  float64
	ProgressRatio float64
	Status        GoalStatus
	Suggestions   []string
}
