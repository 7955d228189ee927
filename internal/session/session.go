// Package session wires the assessment and cost engines together and runs
// the full pipeline over one intake document. The CLI and the JSON API both
// go through it, so file-driven and request-driven runs share identical
// semantics.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"

	"github.com/careplanhq/careplan/internal/advisory"
	"github.com/careplanhq/careplan/internal/assess"
	"github.com/careplanhq/careplan/internal/config"
	"github.com/careplanhq/careplan/internal/costs"
	"github.com/careplanhq/careplan/internal/domain"
	"github.com/careplanhq/careplan/internal/flags"
	"github.com/careplanhq/careplan/internal/output"
	"github.com/careplanhq/careplan/internal/region"
)

// Runner holds the assembled engines for one process lifetime.
type Runner struct {
	Engine *assess.Engine
	Calc   *costs.CachedCalculator
	Rates  costs.Rates
}

// FromConfig assembles a runner from configuration: external data tables
// where paths are set, built-in defaults otherwise.
func FromConfig(cfg *config.Config) (*Runner, error) {
	schema := flags.DefaultSchema()
	if cfg.Data.FlagSchema != "" {
		var err error
		if schema, err = flags.LoadSchema(cfg.Data.FlagSchema); err != nil {
			return nil, eris.Wrap(err, "session: load flag schema")
		}
	}

	table := region.DefaultTable()
	if cfg.Data.RegionalTable != "" {
		var err error
		if table, err = region.LoadTable(cfg.Data.RegionalTable); err != nil {
			return nil, eris.Wrap(err, "session: load regional table")
		}
	}

	rates := costs.DefaultRates()
	if cfg.Data.CostRates != "" {
		var err error
		if rates, err = costs.LoadRates(cfg.Data.CostRates); err != nil {
			return nil, eris.Wrap(err, "session: load cost rates")
		}
	}

	engine := assess.NewEngine(schema)
	if cfg.Advisory.TimeoutSecs > 0 {
		engine.AdvisoryTimeout = time.Duration(cfg.Advisory.TimeoutSecs) * time.Second
	}

	calc := costs.NewCalculator(rates, region.NewResolver(table), schema)
	cached := costs.NewCachedCalculator(calc, time.Duration(cfg.Cost.CacheTTLMinutes)*time.Minute)

	return &Runner{Engine: engine, Calc: cached, Rates: rates}, nil
}

// Run executes the full pipeline for one intake: a care plan per person,
// a cost plan per person under the requested scenario, and the household
// aggregate. The intake must already be validated.
func (r *Runner) Run(ctx context.Context, intake *config.Intake) (*output.Report, error) {
	report := &output.Report{}

	report.Primary = r.Engine.ComputeCarePlan(ctx, uuid.Nil,
		intake.Primary.Name, intake.Primary.PersonAnswers(), AdvisorFor(&intake.Primary))
	if intake.Partner != nil {
		report.Partner = r.Engine.ComputeCarePlan(ctx, uuid.Nil,
			intake.Partner.Name, intake.Partner.PersonAnswers(), AdvisorFor(intake.Partner))
	}

	var err error
	if report.PrimaryCost, err = r.personCost(report.Primary, &intake.Household); err != nil {
		return nil, eris.Wrap(err, "session: primary cost")
	}
	if report.Partner != nil {
		if report.PartnerCost, err = r.personCost(report.Partner, &intake.Household); err != nil {
			return nil, eris.Wrap(err, "session: partner cost")
		}
	}

	household := r.Household(report.PrimaryCost, report.PartnerCost, &intake.Household)
	report.Household = &household
	return report, nil
}

// personCost prices one person for the report. A person whose final tier
// has no facility rate (no_care_needed, in_home) gets no facility placement
// priced unless the intake names an explicit care type; a nil cost plan
// aggregates as zero.
func (r *Runner) personCost(plan *domain.CarePlan, h *config.HouseholdIntake) (*domain.CostPlan, error) {
	if domain.ScenarioKind(h.Scenario) != domain.ScenarioInHome && h.CareType == "" {
		if _, ok := r.Rates.FacilityMonthly[plan.FinalTier]; !ok {
			return nil, nil
		}
	}
	return r.CostPlan(plan, h)
}

// CostPlan estimates one person's monthly cost under the intake's scenario.
func (r *Runner) CostPlan(plan *domain.CarePlan, h *config.HouseholdIntake) (*domain.CostPlan, error) {
	switch domain.ScenarioKind(h.Scenario) {
	case domain.ScenarioInHome:
		var hours decimal.Decimal
		if h.HoursPerDay != nil {
			hours = *h.HoursPerDay
		}
		return r.Calc.ComputeInHome(plan, costs.InHomeRequest{
			HoursPerDay:       hours,
			Zip:               h.Zip,
			State:             h.State,
			HomeCarryOverride: h.HomeCarry,
		})
	default:
		return r.Calc.ComputeFacility(plan, costs.FacilityRequest{
			CareType:          domain.Tier(h.CareType),
			Zip:               h.Zip,
			State:             h.State,
			KeepHome:          h.KeepHome,
			HomeCarryOverride: h.HomeCarry,
		})
	}
}

// Household aggregates the computed cost plans with the shared housing
// settings. A single-person household passes a nil partner plan.
func (r *Runner) Household(primary, partner *domain.CostPlan, h *config.HouseholdIntake) domain.HouseholdTotal {
	carry := r.Rates.HomeCarryDefault
	if h.HomeCarry != nil {
		carry = *h.HomeCarry
	}
	return costs.ComputeHouseholdTotal(primary, partner, costs.HouseholdSettings{
		KeepHome:  h.KeepHome,
		Ownership: costs.Ownership(h.Ownership),
		HomeCarry: carry,
	})
}

// AdvisorFor wraps a recorded intake suggestion as an advisor. No recorded
// suggestion means no advisory consultation at all.
func AdvisorFor(p *config.IntakePerson) advisory.Advisor {
	if p.Advisory == nil {
		return nil
	}
	return &advisory.Static{Suggestion: &advisory.Suggestion{
		Tier:       p.Advisory.Tier,
		Confidence: p.Advisory.Confidence,
	}}
}
