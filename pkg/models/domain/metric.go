package domain

import (
	"sort"
	"time"
)

// MetricKind is the canonical business metric vocabulary.
type MetricKind string

const (
	MetricRevenue        MetricKind = "revenue"
	MetricOrders         MetricKind = "orders"
	MetricChurnRate      MetricKind = "churn_rate"
	MetricConversionRate MetricKind = "conversion_rate"
	MetricAdSpend        MetricKind = "ad_spend"
	MetricPrice          MetricKind = "price"
)

// MetricKinds lists every canonical metric in stable order.
func MetricKinds() []MetricKind {
	return []MetricKind{
		MetricRevenue,
		MetricOrders,
		MetricChurnRate,
		MetricConversionRate,
		MetricAdSpend,
		MetricPrice,
	}
}

// Valid reports whether k is part of the canonical vocabulary.
func (k MetricKind) Valid() bool {
	for _, known := range MetricKinds() {
		if k == known {
			return true
		}
	}
	return false
}

// MetricPoint is a single normalized observation.
type MetricPoint struct {
	Period time.Time
	Metric MetricKind
	Value  float64
}

// NormalizedMetricTable is the time-indexed canonical metric table.
// At most one value exists per (period, metric) pair; Conflicts counts
// source rows that were overwritten to enforce that.
type NormalizedMetricTable struct {
	Points           []MetricPoint
	HasTimeDimension bool
	Conflicts        int
}

// Periods returns the distinct periods in ascending order.
func (t *NormalizedMetricTable) Periods() []time.Time {
	seen := make(map[time.Time]struct{})
	var periods []time.Time
	for _, p := range t.Points {
		if _, ok := seen[p.Period]; !ok {
			seen[p.Period] = struct{}{}
			periods = append(periods, p.Period)
		}
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].Before(periods[j]) })
	return periods
}

// Series returns all points for one metric in period order.
func (t *NormalizedMetricTable) Series(kind MetricKind) []MetricPoint {
	var points []MetricPoint
	for _, p := range t.Points {
		if p.Metric == kind {
			points = append(points, p)
		}
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Period.Before(points[j].Period) })
	return points
}

// LatestPeriod returns the most recent period present, or the zero time.
func (t *NormalizedMetricTable) LatestPeriod() time.Time {
	var latest time.Time
	for _, p := range t.Points {
		if p.Period.After(latest) {
			latest = p.Period
		}
	}
	return latest
}

// LatestSnapshot collapses the table to the most recent value per metric.
func (t *NormalizedMetricTable) LatestSnapshot() map[MetricKind]float64 {
	type stamped struct {
		period time.Time
		value  float64
	}
	latest := make(map[MetricKind]stamped)
	for _, p := range t.Points {
		if cur, ok := latest[p.Metric]; !ok || p.Period.After(cur.period) {
			latest[p.Metric] = stamped{period: p.Period, value: p.Value}
		}
	}
	snapshot := make(map[MetricKind]float64, len(latest))
	for kind, s := range latest {
		snapshot[kind] = s.value
	}
	return snapshot
}
