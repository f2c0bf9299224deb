package scenario

import (
	"fmt"
	"time"

	"github.com/echolon-ai/echolon/pkg/models/domain"
)

// Config holds the projection model constants. They are tunable
// configuration, not learned parameters: hosts with better elasticity
// estimates for their vertical should override them.
type Config struct {
	// Elasticity scales how strongly ad-spend changes move revenue.
	Elasticity float64 `mapstructure:"elasticity"`
	// ChurnImpactFactor scales how strongly churn changes reduce revenue.
	ChurnImpactFactor float64 `mapstructure:"churn_impact_factor"`
	// CostRatio estimates baseline costs as a share of baseline revenue
	// when the snapshot carries no ad-spend metric.
	CostRatio float64 `mapstructure:"cost_ratio"`
	// MinDriver/MaxDriver bound every driver; out-of-range values are
	// clamped, never rejected.
	MinDriver float64 `mapstructure:"min_driver"`
	MaxDriver float64 `mapstructure:"max_driver"`
}

// DefaultConfig returns the documented default constants.
func DefaultConfig() Config {
	return Config{
		Elasticity:        0.3,
		ChurnImpactFactor: 1.0,
		CostRatio:         0.65,
		MinDriver:         -1.0,
		MaxDriver:         5.0,
	}
}

// Simulator projects revenue and profit for a driver set. Simulate is
// pure: identical inputs always produce identical results, which makes
// memoizing slider interactions safe.
type Simulator struct {
	cfg Config
}

func NewSimulator(cfg Config) *Simulator {
	def := DefaultConfig()
	if cfg.Elasticity == 0 {
		cfg.Elasticity = def.Elasticity
	}
	if cfg.ChurnImpactFactor == 0 {
		cfg.ChurnImpactFactor = def.ChurnImpactFactor
	}
	if cfg.CostRatio == 0 {
		cfg.CostRatio = def.CostRatio
	}
	if cfg.MinDriver == 0 && cfg.MaxDriver == 0 {
		cfg.MinDriver = def.MinDriver
		cfg.MaxDriver = def.MaxDriver
	}
	return &Simulator{cfg: cfg}
}

// Simulate clamps the drivers to the configured bounds, then applies
// the deterministic formula model:
//
//	projected = revenue * (1+price) * (1+elasticity*adSpend) * (1-churn*churnImpact)
//	profit    = projected - costs*(1+adSpend)
func (s *Simulator) Simulate(
	baseline map[domain.MetricKind]float64,
	baselinePeriod time.Time,
	drivers domain.ScenarioDriverSet,
) domain.ScenarioResult {
	clamped, warnings := s.clamp(drivers)

	revenue := baseline[domain.MetricRevenue]

	projectedRevenue := revenue *
		(1 + clamped.PricePctChange) *
		(1 + s.cfg.Elasticity*clamped.AdSpendPctChange) *
		(1 - clamped.ChurnPctChange*s.cfg.ChurnImpactFactor)

	costs, ok := baseline[domain.MetricAdSpend]
	if !ok {
		costs = revenue * s.cfg.CostRatio
	}
	estimatedCosts := costs * (1 + clamped.AdSpendPctChange)

	return domain.ScenarioResult{
		ProjectedRevenue: projectedRevenue,
		ProjectedProfit:  projectedRevenue - estimatedCosts,
		Drivers:          clamped,
		BaselinePeriod:   baselinePeriod,
		Clamped:          len(warnings) > 0,
		Warnings:         warnings,
	}
}

func (s *Simulator) clamp(drivers domain.ScenarioDriverSet) (domain.ScenarioDriverSet, []domain.Warning) {
	var warnings []domain.Warning

	clampOne := func(name string, v float64) float64 {
		if v < s.cfg.MinDriver || v > s.cfg.MaxDriver {
			warnings = append(warnings, domain.Warning{
				Kind:   domain.WarnDriverOutOfBounds,
				Detail: fmt.Sprintf("%s driver %.2f clamped to [%.2f, %.2f]", name, v, s.cfg.MinDriver, s.cfg.MaxDriver),
			})
		}
		if v < s.cfg.MinDriver {
			return s.cfg.MinDriver
		}
		if v > s.cfg.MaxDriver {
			return s.cfg.MaxDriver
		}
		return v
	}

	return domain.ScenarioDriverSet{
		AdSpendPctChange: clampOne("ad_spend", drivers.AdSpendPctChange),
		PricePctChange:   clampOne("price", drivers.PricePctChange),
		ChurnPctChange:   clampOne("churn", drivers.ChurnPctChange),
	}, warnings
}
