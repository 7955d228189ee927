package costs

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/careplanhq/careplan/internal/domain"
)

// DefaultCacheTTL bounds how long an identical cost query reuses a prior
// result within a session.
const DefaultCacheTTL = 30 * time.Minute

// CachedCalculator wraps a Calculator with a value-keyed, time-boxed result
// cache. Keys are built from the query values plus the care plan identity,
// so concurrent callers with identical inputs share one computation through
// singleflight and everyone else computes independently.
type CachedCalculator struct {
	calc *Calculator
	ttl  time.Duration
	now  func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
	group   singleflight.Group
}

type cacheEntry struct {
	plan    *domain.CostPlan
	expires time.Time
}

// NewCachedCalculator wraps calc with a TTL cache. A non-positive ttl uses
// DefaultCacheTTL.
func NewCachedCalculator(calc *Calculator, ttl time.Duration) *CachedCalculator {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedCalculator{
		calc:    calc,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// ComputeFacility is the cached variant of Calculator.ComputeFacility.
func (c *CachedCalculator) ComputeFacility(plan *domain.CarePlan, req FacilityRequest) (*domain.CostPlan, error) {
	key := fmt.Sprintf("facility|%s|%s|%s|%s|%t|%s",
		plan.ID, req.CareType, req.Zip, req.State, req.KeepHome, overrideKey(req.HomeCarryOverride))
	return c.compute(key, func() (*domain.CostPlan, error) {
		return c.calc.ComputeFacility(plan, req)
	})
}

// ComputeInHome is the cached variant of Calculator.ComputeInHome.
func (c *CachedCalculator) ComputeInHome(plan *domain.CarePlan, req InHomeRequest) (*domain.CostPlan, error) {
	key := fmt.Sprintf("in_home|%s|%s|%s|%s|%s",
		plan.ID, req.HoursPerDay, req.Zip, req.State, overrideKey(req.HomeCarryOverride))
	return c.compute(key, func() (*domain.CostPlan, error) {
		return c.calc.ComputeInHome(plan, req)
	})
}

func (c *CachedCalculator) compute(key string, fn func() (*domain.CostPlan, error)) (*domain.CostPlan, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && c.now().Before(e.expires) {
		c.mu.Unlock()
		return e.plan, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do(key, func() (any, error) {
		plan, err := fn()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[key] = cacheEntry{plan: plan, expires: c.now().Add(c.ttl)}
		c.mu.Unlock()
		return plan, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.CostPlan), nil
}

func overrideKey(d *decimal.Decimal) string {
	if d == nil {
		return "-"
	}
	return d.String()
}
