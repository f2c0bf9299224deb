package scenario

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/echolon-ai/echolon/pkg/models/domain"
)

// CachedSimulator memoizes Simulate on (baseline, drivers). The
// underlying simulator is pure, so entries never need invalidation;
// hosts re-running the projection on every slider move pay for each
// distinct input once.
type CachedSimulator struct {
	sim *Simulator

	mu    sync.RWMutex
	cache map[string]domain.ScenarioResult
}

func NewCachedSimulator(sim *Simulator) *CachedSimulator {
	return &CachedSimulator{
		sim:   sim,
		cache: make(map[string]domain.ScenarioResult),
	}
}

func (c *CachedSimulator) Simulate(
	baseline map[domain.MetricKind]float64,
	baselinePeriod time.Time,
	drivers domain.ScenarioDriverSet,
) domain.ScenarioResult {
	key := cacheKey(baseline, baselinePeriod, drivers)

	c.mu.RLock()
	cached, ok := c.cache[key]
	c.mu.RUnlock()
	if ok {
		return cached
	}

	result := c.sim.Simulate(baseline, baselinePeriod, drivers)

	c.mu.Lock()
	c.cache[key] = result
	c.mu.Unlock()

	return result
}

// Len reports the number of memoized projections.
func (c *CachedSimulator) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

func cacheKey(
	baseline map[domain.MetricKind]float64,
	baselinePeriod time.Time,
	drivers domain.ScenarioDriverSet,
) string {
	kinds := make([]string, 0, len(baseline))
	for kind := range baseline {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)

	var b strings.Builder
	for _, kind := range kinds {
		fmt.Fprintf(&b, "%s=%v;", kind, baseline[domain.MetricKind(kind)])
	}
	fmt.Fprintf(&b, "@%d|%v|%v|%v",
		baselinePeriod.UnixNano(),
		drivers.AdSpendPctChange,
		drivers.PricePctChange,
		drivers.ChurnPctChange,
	)
	return b.String()
}
