package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ScenarioKind selects the cost scenario being estimated.
type ScenarioKind string

const (
	ScenarioFacility ScenarioKind = "facility"
	ScenarioInHome   ScenarioKind = "in_home"
)

// Segment labels one line of a cost plan breakdown.
type Segment string

const (
	SegmentBaseCare        Segment = "base_care"
	SegmentRiskAdjustments Segment = "risk_adjustments"
	SegmentHomeCarry       Segment = "home_carry"
)

// CostAdjustment is one step of the cumulative modifier chain. Adjustments
// are computed per calculation and discarded after rendering; they are never
// stored. Amount is the dollar delta at that step, which depends on the
// position of the step in the chain even though the final total does not.
type CostAdjustment struct {
	FlagID     string          `json:"flag_id" yaml:"flag_id"`
	Percentage decimal.Decimal `json:"percentage" yaml:"percentage"`
	Amount     decimal.Decimal `json:"amount" yaml:"amount"`
	Label      string          `json:"label" yaml:"label"`
	Rationale  string          `json:"rationale" yaml:"rationale"`
}

// RegionalPrecision identifies which precedence level resolved a multiplier.
type RegionalPrecision string

const (
	PrecisionZip      RegionalPrecision = "zip"
	PrecisionZip3     RegionalPrecision = "zip3"
	PrecisionState    RegionalPrecision = "state"
	PrecisionNational RegionalPrecision = "national"
)

// RegionalMultiplier is a cost scaling factor resolved fresh per query by
// geographic specificity precedence.
type RegionalMultiplier struct {
	Multiplier decimal.Decimal   `json:"multiplier" yaml:"multiplier"`
	RegionName string            `json:"region_name" yaml:"region_name"`
	Precision  RegionalPrecision `json:"precision" yaml:"precision"`
}

// CostPlan is the monthly cost estimate for one person under one scenario.
type CostPlan struct {
	ID           uuid.UUID                   `json:"id" yaml:"id"`
	PersonID     uuid.UUID                   `json:"person_id" yaml:"person_id"`
	CarePlanID   uuid.UUID                   `json:"care_plan_id" yaml:"care_plan_id"`
	Scenario     ScenarioKind                `json:"scenario" yaml:"scenario"`
	TotalMonthly decimal.Decimal             `json:"total_monthly" yaml:"total_monthly"`
	Breakdown    map[Segment]decimal.Decimal `json:"breakdown" yaml:"breakdown"`
	Adjustments  []CostAdjustment            `json:"adjustments" yaml:"adjustments"`
	Regional     RegionalMultiplier          `json:"regional" yaml:"regional"`
}

// HomeCarry returns the home-carry segment of the breakdown, zero when the
// scenario carries no home cost.
func (p *CostPlan) HomeCarry() decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}
	if v, ok := p.Breakdown[SegmentHomeCarry]; ok {
		return v
	}
	return decimal.Zero
}

// CareOnlyTotal returns the monthly total excluding home carry. Household
// aggregation uses it so the shared home cost is counted exactly once.
func (p *CostPlan) CareOnlyTotal() decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}
	return p.TotalMonthly.Sub(p.HomeCarry())
}

// HouseholdSplit is the even two-way division of the household total.
type HouseholdSplit struct {
	Primary decimal.Decimal `json:"primary" yaml:"primary"`
	Partner decimal.Decimal `json:"partner" yaml:"partner"`
}

// HouseholdTotal combines up to two cost plans with the shared housing cost.
// It is derived on demand from the inputs and never stored.
type HouseholdTotal struct {
	PrimaryTotal   decimal.Decimal `json:"primary_total" yaml:"primary_total"`
	PartnerTotal   decimal.Decimal `json:"partner_total" yaml:"partner_total"`
	HomeCarry      decimal.Decimal `json:"home_carry" yaml:"home_carry"`
	HouseholdTotal decimal.Decimal `json:"household_total" yaml:"household_total"`
	Split          HouseholdSplit  `json:"split" yaml:"split"`
}
