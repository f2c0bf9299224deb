package normalize

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/echolon-ai/echolon/pkg/models/domain"
	"github.com/echolon-ai/echolon/pkg/services/schema"
)

// SyntheticPeriod is the single period assigned to every row when the
// upload has no date column. Downstream consumers see a one-point
// "current" series keyed on this stable value.
var SyntheticPeriod = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

// aliasTable maps lowercased snake_case column keys onto the canonical
// vocabulary. Exact key match is tried first, then substring match.
var aliasTable = map[domain.MetricKind][]string{
	domain.MetricRevenue:        {"revenue", "rev", "sales", "income", "turnover", "monthly_revenue"},
	domain.MetricOrders:         {"orders", "order_count", "purchases", "transactions", "units_sold"},
	domain.MetricChurnRate:      {"churn", "churn_rate", "attrition", "attrition_rate"},
	domain.MetricConversionRate: {"conversion", "conversion_rate", "cvr", "conv_rate"},
	domain.MetricAdSpend:        {"ad_spend", "adspend", "ad_budget", "marketing_spend", "advertising"},
	domain.MetricPrice:          {"price", "avg_price", "unit_price", "average_price"},
}

// Normalizer maps inferred columns onto the canonical metric table.
type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize builds the time-indexed canonical table. Unmappable columns
// are dropped with a warning; a missing date column degrades to a
// single synthetic period. Conflicting (period, metric) cells follow
// last-row-wins with the overwrite count recorded on the table.
func (n *Normalizer) Normalize(
	table domain.RawTable,
	profiles []domain.ColumnProfile,
) (*domain.NormalizedMetricTable, []domain.Warning, error) {
	if table.Empty() {
		return nil, nil, domain.ErrEmptyInput
	}

	var warnings []domain.Warning

	dateColumn := ""
	for _, p := range profiles {
		if p.InferredType == domain.ColumnTypeDate {
			dateColumn = p.Name
			break
		}
	}

	hasTime := dateColumn != ""
	if !hasTime {
		warnings = append(warnings, domain.Warning{
			Kind:   domain.WarnMissingTimeDimension,
			Detail: "no date column found; all rows collapsed onto a single synthetic period",
		})
	}

	type mapped struct {
		column  string
		kind    domain.MetricKind
		colType domain.ColumnType
	}
	var mappedColumns []mapped

	for _, p := range profiles {
		switch p.InferredType {
		case domain.ColumnTypeCurrency, domain.ColumnTypePercentage, domain.ColumnTypeCount:
		default:
			continue
		}
		kind, ok := MatchMetric(p.Name)
		if !ok {
			warnings = append(warnings, domain.Warning{
				Kind:   domain.WarnUnmappableColumn,
				Column: p.Name,
				Detail: fmt.Sprintf("column %q does not match any canonical metric; dropped", p.Name),
			})
			continue
		}
		mappedColumns = append(mappedColumns, mapped{column: p.Name, kind: kind, colType: p.InferredType})
	}

	type cellKey struct {
		period time.Time
		metric domain.MetricKind
	}
	values := make(map[cellKey]float64)
	conflicts := 0

	lastPeriod := SyntheticPeriod
	for _, row := range table.Rows {
		period := SyntheticPeriod
		if hasTime {
			if t, ok := schema.ParseDate(row[dateColumn]); ok {
				period = t
				lastPeriod = t
			} else {
				// Unparseable date cell: keep the row on the previous period
				// rather than dropping its metrics.
				period = lastPeriod
			}
		}

		for _, mc := range mappedColumns {
			raw := strings.TrimSpace(row[mc.column])
			if raw == "" {
				continue
			}
			value, ok := parseValue(raw, mc.colType)
			if !ok {
				continue
			}
			key := cellKey{period: period, metric: mc.kind}
			if _, exists := values[key]; exists {
				conflicts++
			}
			values[key] = value
		}
	}

	out := &domain.NormalizedMetricTable{
		HasTimeDimension: hasTime,
		Conflicts:        conflicts,
	}
	for key, value := range values {
		out.Points = append(out.Points, domain.MetricPoint{
			Period: key.period,
			Metric: key.metric,
			Value:  value,
		})
	}
	sort.Slice(out.Points, func(i, j int) bool {
		if !out.Points[i].Period.Equal(out.Points[j].Period) {
			return out.Points[i].Period.Before(out.Points[j].Period)
		}
		return out.Points[i].Metric < out.Points[j].Metric
	})

	return out, warnings, nil
}

// MatchMetric resolves a raw column name against the alias table.
func MatchMetric(column string) (domain.MetricKind, bool) {
	key := toKey(column)

	for kind, aliases := range aliasTable {
		for _, alias := range aliases {
			if key == alias {
				return kind, true
			}
		}
	}

	// Substring pass, longest alias first so "churn_rate" beats "rate".
	type candidate struct {
		kind  domain.MetricKind
		alias string
	}
	var candidates []candidate
	for kind, aliases := range aliasTable {
		for _, alias := range aliases {
			if strings.Contains(key, alias) {
				candidates = append(candidates, candidate{kind: kind, alias: alias})
			}
		}
	}
	if len(candidates) == 0 {
		return "", false
	}
	sort.Slice(candidates, func(i, j int) bool {
		if len(candidates[i].alias) != len(candidates[j].alias) {
			return len(candidates[i].alias) > len(candidates[j].alias)
		}
		return candidates[i].alias < candidates[j].alias
	})
	return candidates[0].kind, true
}

// parseValue converts a raw cell to a float using the column's
// inferred type. Percentages with a % suffix are scaled to fractions.
func parseValue(raw string, colType domain.ColumnType) (float64, bool) {
	v := strings.TrimSpace(raw)
	hadPercentSign := false

	if colType == domain.ColumnTypePercentage && strings.HasSuffix(v, "%") {
		v = strings.TrimSuffix(v, "%")
		hadPercentSign = true
	}
	for _, sym := range []string{"$", "€", "£"} {
		v = strings.TrimPrefix(v, sym)
	}
	v = strings.ReplaceAll(strings.TrimSpace(v), ",", "")

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	if hadPercentSign {
		f /= 100
	}
	return f, true
}

func toKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return strings.Trim(s, "_")
}
