package costs

import (
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"

	"github.com/careplanhq/careplan/internal/domain"
	"github.com/careplanhq/careplan/internal/flags"
	"github.com/careplanhq/careplan/internal/region"
)

// daysPerMonth converts an hourly in-home schedule to a monthly amount.
var daysPerMonth = decimal.NewFromFloat(30.44)

// FacilityRequest describes a facility cost query. Hours-per-day has no
// effect on facility cost, so the field does not exist here at all.
type FacilityRequest struct {
	CareType          domain.Tier
	Zip               string
	State             string
	KeepHome          bool
	HomeCarryOverride *decimal.Decimal
}

// InHomeRequest describes an in-home cost query. In-home care assumes the
// home is kept, so there is no keep-home gate.
type InHomeRequest struct {
	HoursPerDay       decimal.Decimal
	Zip               string
	State             string
	HomeCarryOverride *decimal.Decimal
}

// Calculator produces cost plans for one person at a time.
type Calculator struct {
	rates    Rates
	resolver *region.Resolver
	schema   *flags.Schema
}

// NewCalculator builds a calculator over the given rates, regional resolver
// and flag schema.
func NewCalculator(rates Rates, resolver *region.Resolver, schema *flags.Schema) *Calculator {
	if schema == nil {
		schema = flags.DefaultSchema()
	}
	return &Calculator{rates: rates, resolver: resolver, schema: schema}
}

// ComputeFacility estimates monthly facility cost for the care plan:
// tier base rate scaled by the regional multiplier, then the modifier
// chain, plus home carry only when the home is kept.
func (c *Calculator) ComputeFacility(plan *domain.CarePlan, req FacilityRequest) (*domain.CostPlan, error) {
	careType := req.CareType
	if careType == "" {
		careType = plan.FinalTier
	}
	base, ok := c.rates.FacilityMonthly[careType]
	if !ok {
		return nil, eris.Errorf("costs: no facility rate for tier %s", careType)
	}

	regional := c.resolver.Resolve(req.Zip, req.State)
	baseCare := base.Mul(regional.Multiplier)

	adjustments, adjusted := ApplyModifiers(baseCare, flagIDs(plan), plan.FinalTier, c.rates, c.schema)

	homeCarry := decimal.Zero
	if req.KeepHome {
		homeCarry = c.homeCarry(req.HomeCarryOverride)
	}

	return c.assemble(plan, domain.ScenarioFacility, regional, baseCare, adjustments, adjusted, homeCarry), nil
}

// ComputeInHome estimates monthly in-home cost: hourly rate times hours per
// day across the month, scaled and adjusted the same way. Home carry always
// applies.
func (c *Calculator) ComputeInHome(plan *domain.CarePlan, req InHomeRequest) (*domain.CostPlan, error) {
	if req.HoursPerDay.LessThanOrEqual(decimal.Zero) {
		return nil, eris.New("costs: in-home hours per day must be positive")
	}

	regional := c.resolver.Resolve(req.Zip, req.State)
	baseCare := c.rates.InHomeHourly.Mul(req.HoursPerDay).Mul(daysPerMonth).Mul(regional.Multiplier)

	adjustments, adjusted := ApplyModifiers(baseCare, flagIDs(plan), plan.FinalTier, c.rates, c.schema)
	homeCarry := c.homeCarry(req.HomeCarryOverride)

	return c.assemble(plan, domain.ScenarioInHome, regional, baseCare, adjustments, adjusted, homeCarry), nil
}

func (c *Calculator) homeCarry(override *decimal.Decimal) decimal.Decimal {
	if override != nil {
		return *override
	}
	return c.rates.HomeCarryDefault
}

func (c *Calculator) assemble(plan *domain.CarePlan, kind domain.ScenarioKind, regional domain.RegionalMultiplier, baseCare decimal.Decimal, adjustments []domain.CostAdjustment, adjusted, homeCarry decimal.Decimal) *domain.CostPlan {
	breakdown := map[domain.Segment]decimal.Decimal{
		domain.SegmentBaseCare:        baseCare,
		domain.SegmentRiskAdjustments: adjusted.Sub(baseCare),
	}
	total := adjusted
	if homeCarry.GreaterThan(decimal.Zero) {
		breakdown[domain.SegmentHomeCarry] = homeCarry
		total = total.Add(homeCarry)
	}

	return &domain.CostPlan{
		ID:           uuid.New(),
		PersonID:     plan.PersonID,
		CarePlanID:   plan.ID,
		Scenario:     kind,
		TotalMonthly: total,
		Breakdown:    breakdown,
		Adjustments:  adjustments,
		Regional:     regional,
	}
}

func flagIDs(plan *domain.CarePlan) []string {
	ids := make([]string, 0, len(plan.Flags))
	for _, f := range plan.Flags {
		ids = append(ids, f.ID)
	}
	return ids
}
