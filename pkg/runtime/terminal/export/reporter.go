package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/echolon-ai/echolon/pkg/models/domain"
)

type TableConfig struct {
	NameWidth   int
	ValueWidth  int
	UnitWidth   int
	DetailWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:   24,
		ValueWidth:  24,
		UnitWidth:   10,
		DetailWidth: 48,
	}
}

// Reporter renders analysis and scenario results as aligned text tables.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

type row struct {
	Name   string
	Value  string
	Unit   string
	Detail string
}

type section struct {
	Title string
	Rows  []row
	Lines []string
}

type view struct {
	Title    string
	Subtitle string
	Sections []section
}

const reportTemplate = `
{{.Title}}
{{.Subtitle}}
{{range .Sections}}
=== {{.Title}} ===
{{if .Rows}}{{separator}}
{{formatRow "Name" "Value" "Unit" "Detail"}}
{{separator}}
{{range .Rows}}{{formatRow .Name .Value .Unit .Detail}}
{{end}}{{separator}}
{{end}}{{range .Lines}}- {{.}}
{{end}}{{end}}
`

func (c *Reporter) render(v view) error {
	funcMap := template.FuncMap{
		"formatRow": func(name, value, unit, detail string) string {
			return fmt.Sprintf("| %-*s | %-*s | %-*s | %-*s |",
				c.config.NameWidth, name,
				c.config.ValueWidth, value,
				c.config.UnitWidth, unit,
				c.config.DetailWidth, detail)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2),
				strings.Repeat("-", c.config.UnitWidth+2),
				strings.Repeat("-", c.config.DetailWidth+2))
		},
	}

	t, err := template.New("report").Funcs(funcMap).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, v)
}

// Handle renders a full analysis report.
func (c *Reporter) Handle(report *domain.AnalysisReport) error {
	v := view{
		Title: "Metrics Analysis",
		Subtitle: fmt.Sprintf("Industry profile: %s | Generated: %s",
			report.Industry, report.GeneratedAt.Format(time.RFC3339)),
	}

	schemaSection := section{Title: "Detected Schema"}
	for _, p := range report.Profiles {
		schemaSection.Rows = append(schemaSection.Rows, row{
			Name:   p.Name,
			Value:  string(p.InferredType),
			Detail: fmt.Sprintf("confidence %.2f", p.Confidence),
		})
	}
	v.Sections = append(v.Sections, schemaSection)

	if report.Metrics != nil {
		metricsSection := section{Title: "Latest Metrics"}
		period := report.Metrics.LatestPeriod()
		snapshot := report.Metrics.LatestSnapshot()
		for _, kind := range domain.MetricKinds() {
			value, ok := snapshot[kind]
			if !ok {
				continue
			}
			detail := ""
			if report.Metrics.HasTimeDimension {
				detail = fmt.Sprintf("period %s", period.Format("2006-01-02"))
			}
			metricsSection.Rows = append(metricsSection.Rows, row{
				Name:   string(kind),
				Value:  fmt.Sprintf("%.2f", value),
				Detail: detail,
			})
		}
		if !report.Metrics.HasTimeDimension {
			metricsSection.Lines = append(metricsSection.Lines,
				"No date column detected; values reflect a single point in time.")
		}
		v.Sections = append(v.Sections, metricsSection)
	}

	benchSection := section{Title: "Benchmark Comparison"}
	for _, r := range report.Benchmark.Rows {
		delta := "n/a"
		if r.DeltaPct != nil {
			delta = fmt.Sprintf("%+.1f%%", *r.DeltaPct*100)
		}
		benchSection.Rows = append(benchSection.Rows, row{
			Name:   string(r.Metric),
			Value:  fmt.Sprintf("%.2f vs %.2f", r.Actual, r.Benchmark),
			Unit:   string(r.Tier),
			Detail: delta,
		})
	}
	for _, m := range report.Benchmark.Unbenchmarked {
		benchSection.Lines = append(benchSection.Lines,
			fmt.Sprintf("%s has no benchmark entry", m))
	}
	v.Sections = append(v.Sections, benchSection)

	if len(report.Goals) > 0 {
		goalSection := section{Title: "Goals"}
		for _, g := range report.Goals {
			goalSection.Rows = append(goalSection.Rows, row{
				Name:   string(g.Goal.Metric),
				Value:  fmt.Sprintf("%.2f / %.2f", g.CurrentValue, g.Goal.TargetValue),
				Unit:   string(g.Status),
				Detail: fmt.Sprintf("%.0f%% of target", g.ProgressRatio*100),
			})
			goalSection.Lines = append(goalSection.Lines, g.Suggestions...)
		}
		v.Sections = append(v.Sections, goalSection)
	}

	if len(report.Insights) > 0 {
		v.Sections = append(v.Sections, section{Title: "Insights", Lines: report.Insights})
	}

	if len(report.Warnings) > 0 {
		warnSection := section{Title: "Warnings"}
		for _, w := range report.Warnings {
			line := string(w.Kind)
			if w.Column != "" {
				line += ": " + w.Column
			}
			if w.Detail != "" {
				line += " (" + w.Detail + ")"
			}
			warnSection.Lines = append(warnSection.Lines, line)
		}
		v.Sections = append(v.Sections, warnSection)
	}

	return c.render(v)
}

// HandleScenario renders a what-if projection.
func (c *Reporter) HandleScenario(result domain.ScenarioResult) error {
	v := view{
		Title:    "Scenario Projection",
		Subtitle: fmt.Sprintf("Baseline period: %s", result.BaselinePeriod.Format("2006-01-02")),
	}

	s := section{Title: "Projection"}
	s.Rows = append(s.Rows,
		row{Name: "projected_revenue", Value: fmt.Sprintf("%.2f", result.ProjectedRevenue), Unit: "usd"},
		row{Name: "projected_profit", Value: fmt.Sprintf("%.2f", result.ProjectedProfit), Unit: "usd"},
		row{Name: "ad_spend_change", Value: fmt.Sprintf("%+.1f%%", result.Drivers.AdSpendPctChange*100)},
		row{Name: "price_change", Value: fmt.Sprintf("%+.1f%%", result.Drivers.PricePctChange*100)},
		row{Name: "churn_change", Value: fmt.Sprintf("%+.1f%%", result.Drivers.ChurnPctChange*100)},
	)
	if result.Clamped {
		s.Lines = append(s.Lines, "One or more drivers were clamped to the supported range.")
	}
	for _, w := range result.Warnings {
		s.Lines = append(s.Lines, w.Detail)
	}
	v.Sections = append(v.Sections, s)

	return c.render(v)
}
