package schema

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/echolon-ai/echolon/pkg/models/domain"
)

// Config holds the inference thresholds. They are deliberately tunable:
// column-type heuristics are ambiguous and callers may need to retune
// them per dataset.
type Config struct {
	// SampleSize is the max number of non-empty cells inspected per column.
	SampleSize int `mapstructure:"sample_size"`
	// MinConfidence is the match fraction below which a column is
	// demoted to text and flagged for manual override.
	MinConfidence float64 `mapstructure:"min_confidence"`
	// MaxCategoricalValues is the absolute distinct-value cutoff for
	// the categorical probe.
	MaxCategoricalValues int `mapstructure:"max_categorical_values"`
	// CategoricalRatio is the distinct/total ratio cutoff for the
	// categorical probe.
	CategoricalRatio float64 `mapstructure:"categorical_ratio"`
}

// DefaultConfig returns the default inference thresholds.
func DefaultConfig() Config {
	return Config{
		SampleSize:           50,
		MinConfidence:        0.6,
		MaxCategoricalValues: 20,
		CategoricalRatio:     0.10,
	}
}

// Inferencer classifies uploaded columns into semantic types.
type Inferencer struct {
	cfg Config
}

func NewInferencer(cfg Config) *Inferencer {
	def := DefaultConfig()
	if cfg.SampleSize <= 0 {
		cfg.SampleSize = def.SampleSize
	}
	if cfg.MinConfidence <= 0 {
		cfg.MinConfidence = def.MinConfidence
	}
	if cfg.MaxCategoricalValues <= 0 {
		cfg.MaxCategoricalValues = def.MaxCategoricalValues
	}
	if cfg.CategoricalRatio <= 0 {
		cfg.CategoricalRatio = def.CategoricalRatio
	}
	return &Inferencer{cfg: cfg}
}

// Infer produces exactly one profile per input column. The table is
// never mutated. Returns domain.ErrEmptyInput on a structurally
// invalid table; everything else degrades into warnings.
func (inf *Inferencer) Infer(table domain.RawTable) ([]domain.ColumnProfile, []domain.Warning, error) {
	if table.Empty() {
		return nil, nil, domain.ErrEmptyInput
	}

	profiles := make([]domain.ColumnProfile, 0, len(table.Columns))
	var warnings []domain.Warning

	for _, column := range table.Columns {
		samples, distinct := inf.sampleColumn(table, column)
		profile, warning := inf.classify(column, samples, distinct, len(table.Rows))
		profiles = append(profiles, profile)
		if warning != nil {
			warnings = append(warnings, *warning)
		}
	}

	return profiles, warnings, nil
}

// sampleColumn collects up to SampleSize non-empty trimmed cells and
// the distinct count across the whole column.
func (inf *Inferencer) sampleColumn(table domain.RawTable, column string) ([]string, int) {
	var samples []string
	distinct := make(map[string]struct{})

	for _, row := range table.Rows {
		val := strings.TrimSpace(row[column])
		if isNullish(val) {
			continue
		}
		distinct[val] = struct{}{}
		if len(samples) < inf.cfg.SampleSize {
			samples = append(samples, val)
		}
	}

	return samples, len(distinct)
}

// classify applies the ordered probes: date, currency, percentage,
// count, categorical, text. The earliest probe that clears the
// confidence floor wins.
func (inf *Inferencer) classify(
	column string,
	samples []string,
	distinct, totalRows int,
) (domain.ColumnProfile, *domain.Warning) {
	profile := domain.ColumnProfile{
		Name:         column,
		SampleValues: head(samples, 5),
	}

	if len(samples) == 0 {
		profile.InferredType = domain.ColumnTypeText
		profile.Confidence = 0
		return profile, &domain.Warning{
			Kind:   domain.WarnSchemaAmbiguous,
			Column: column,
			Detail: "column has no usable values",
		}
	}

	probes := []struct {
		colType domain.ColumnType
		match   func(string) bool
	}{
		{domain.ColumnTypeDate, isDateValue},
		{domain.ColumnTypeCurrency, func(v string) bool { return isCurrencyValue(v, column) }},
		{domain.ColumnTypePercentage, func(v string) bool { return isPercentageValue(v, column) }},
		{domain.ColumnTypeCount, func(v string) bool { return isCountValue(v, column) }},
	}

	// A probe claims the column when it matches a majority of samples;
	// the claim only sticks when it also clears MinConfidence.
	for _, probe := range probes {
		matched := 0
		for _, v := range samples {
			if probe.match(v) {
				matched++
			}
		}
		fraction := float64(matched) / float64(len(samples))
		if fraction < 0.5 {
			continue
		}
		if fraction < inf.cfg.MinConfidence {
			profile.InferredType = domain.ColumnTypeText
			profile.Confidence = fraction
			return profile, &domain.Warning{
				Kind:   domain.WarnSchemaAmbiguous,
				Column: column,
				Detail: fmt.Sprintf("looked like %s but only %.0f%% of sampled values matched", probe.colType, fraction*100),
			}
		}
		profile.InferredType = probe.colType
		profile.Confidence = fraction
		return profile, nil
	}

	cutoff := inf.cfg.MaxCategoricalValues
	if ratioCutoff := int(float64(totalRows) * inf.cfg.CategoricalRatio); ratioCutoff < cutoff && ratioCutoff > 0 {
		cutoff = ratioCutoff
	}
	if distinct <= cutoff && distinct < totalRows {
		profile.InferredType = domain.ColumnTypeCategorical
		profile.Confidence = 1.0
		return profile, nil
	}

	profile.InferredType = domain.ColumnTypeText
	profile.Confidence = 1.0
	return profile, nil
}

func isNullish(v string) bool {
	switch strings.ToLower(v) {
	case "", "null", "n/a", "na", "-":
		return true
	}
	return false
}

func head(values []string, n int) []string {
	if len(values) <= n {
		return values
	}
	return values[:n]
}

// DateFormats are the layouts the engine recognizes for period columns.
// Shared with the normalizer so both stages agree on what a date is.
var DateFormats = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"2006/01/02",
	"2006-01",
	"Jan-2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"January 2006",
}

// ParseDate attempts every recognized layout.
func ParseDate(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	for _, layout := range DateFormats {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func isDateValue(v string) bool {
	_, ok := ParseDate(v)
	return ok
}

var currencyAmountRe = regexp.MustCompile(`^-?\d{1,3}(,\d{3})*\.\d{2}$|^-?\d+\.\d{2}$`)

var currencyNameHints = []string{"revenue", "sales", "income", "spend", "cost", "price", "amount", "budget"}

// isCurrencyValue accepts a leading currency symbol, the two-decimal
// magnitude convention, or a plain numeric value on a money-named
// column (raw exports often drop both symbol and decimals).
func isCurrencyValue(v, column string) bool {
	stripped := strings.TrimSpace(v)
	hasSymbol := false
	for _, sym := range []string{"$", "€", "£"} {
		if strings.HasPrefix(stripped, sym) {
			hasSymbol = true
			stripped = strings.TrimPrefix(stripped, sym)
			break
		}
	}
	stripped = strings.TrimSpace(stripped)

	if hasSymbol {
		return parsesAsNumber(stripped)
	}
	if currencyAmountRe.MatchString(stripped) {
		return true
	}
	return nameContains(column, currencyNameHints) && parsesAsNumber(stripped)
}

var percentageNameHints = []string{"rate", "churn", "conversion", "pct", "percent", "ratio"}

// isPercentageValue accepts a trailing % sign, or a value strictly
// within [0,1] on a rate-named column.
func isPercentageValue(v, column string) bool {
	v = strings.TrimSpace(v)
	if strings.HasSuffix(v, "%") {
		return parsesAsNumber(strings.TrimSuffix(v, "%"))
	}
	if !nameContains(column, percentageNameHints) {
		return false
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64)
	return err == nil && f >= 0 && f <= 1
}

var countNameHints = []string{"count", "orders", "order", "qty", "quantity", "units", "customers", "visits", "sessions", "transactions"}

func isCountValue(v, column string) bool {
	if !nameContains(column, countNameHints) {
		return false
	}
	v = strings.ReplaceAll(strings.TrimSpace(v), ",", "")
	_, err := strconv.ParseInt(v, 10, 64)
	return err == nil
}

func parsesAsNumber(v string) bool {
	v = strings.ReplaceAll(strings.TrimSpace(v), ",", "")
	_, err := strconv.ParseFloat(v, 64)
	return err == nil
}

func nameContains(column string, hints []string) bool {
	lowered := strings.ToLower(column)
	for _, hint := range hints {
		if strings.Contains(lowered, hint) {
			return true
		}
	}
	return false
}
