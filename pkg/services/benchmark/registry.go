package benchmark

import (
	"fmt"
	"sort"

	"github.com/echolon-ai/echolon/pkg/models/domain"
	"gopkg.in/ini.v1"
)

// DefaultIndustry is the compiled-in fallback profile.
const DefaultIndustry = "general"

// Registry resolves industry benchmark profiles.
type Registry interface {
	Industries() []string
	Entries(industry string) ([]domain.BenchmarkEntry, error)
}

type iniRegistry struct {
	profiles map[string][]domain.BenchmarkEntry
}

// NewRegistry loads benchmark profiles from an ini file where each
// section is an industry and each key a canonical metric, e.g.
//
//	[saas]
//	revenue = 110000
//	churn_rate = 0.045
//
// The compiled-in general profile is always available.
func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load benchmark file: %w", err)
	}

	profiles := map[string][]domain.BenchmarkEntry{
		DefaultIndustry: DefaultEntries(),
	}

	for _, section := range cfg.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}
		var entries []domain.BenchmarkEntry
		for _, key := range section.Keys() {
			kind := domain.MetricKind(key.Name())
			if !kind.Valid() {
				return nil, fmt.Errorf("benchmark file: unknown metric %q in industry %q", key.Name(), section.Name())
			}
			value, err := key.Float64()
			if err != nil {
				return nil, fmt.Errorf("benchmark file: metric %q in industry %q is not numeric: %w", key.Name(), section.Name(), err)
			}
			entries = append(entries, domain.BenchmarkEntry{
				Metric:          kind,
				IndustryAverage: value,
				Unit:            unitFor(kind),
			})
		}
		if len(entries) > 0 {
			profiles[section.Name()] = entries
		}
	}

	return &iniRegistry{profiles: profiles}, nil
}

// NewStaticRegistry wraps fixed profiles; used by tests and the CLI
// when no benchmark file is supplied.
func NewStaticRegistry() Registry {
	return &iniRegistry{profiles: map[string][]domain.BenchmarkEntry{
		DefaultIndustry: DefaultEntries(),
	}}
}

func (r *iniRegistry) Industries() []string {
	industries := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		industries = append(industries, name)
	}
	sort.Strings(industries)
	return industries
}

func (r *iniRegistry) Entries(industry string) ([]domain.BenchmarkEntry, error) {
	entries, ok := r.profiles[industry]
	if !ok {
		return nil, fmt.Errorf("unknown industry %q", industry)
	}
	return entries, nil
}

// DefaultEntries is the bundled cross-industry reference table.
func DefaultEntries() []domain.BenchmarkEntry {
	return []domain.BenchmarkEntry{
		{Metric: domain.MetricRevenue, IndustryAverage: 100000, Unit: "usd"},
		{Metric: domain.MetricOrders, IndustryAverage: 1200, Unit: "count"},
		{Metric: domain.MetricChurnRate, IndustryAverage: 0.05, Unit: "ratio"},
		{Metric: domain.MetricConversionRate, IndustryAverage: 0.03, Unit: "ratio"},
		{Metric: domain.MetricAdSpend, IndustryAverage: 12000, Unit: "usd"},
		{Metric: domain.MetricPrice, IndustryAverage: 85, Unit: "usd"},
	}
}

func unitFor(kind domain.MetricKind) string {
	switch kind {
	case domain.MetricChurnRate, domain.MetricConversionRate:
		return "ratio"
	case domain.MetricOrders:
		return "count"
	default:
		return "usd"
	}
}
