package session

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careplanhq/careplan/internal/config"
	"github.com/careplanhq/careplan/internal/domain"
)

func testIntake() *config.Intake {
	return &config.Intake{
		Primary: config.IntakePerson{
			Name: "Ruth",
			Answers: map[string]any{
				"memory_changes":       "severe",
				"cognitive_dx_confirm": "dx_yes",
				"behaviors":            []any{"wandering"},
				"hours_per_day":        "24h",
			},
			Advisory: &config.AdvisoryIntake{Tier: "assisted_living", Confidence: 0.72},
		},
		Partner: &config.IntakePerson{
			Name:    "Al",
			Answers: map[string]any{"memory_changes": "none"},
		},
		Household: config.HouseholdIntake{
			Scenario: "facility",
			KeepHome: true,
		},
	}
}

func TestFromConfigDefaults(t *testing.T) {
	runner, err := FromConfig(&config.Config{})
	require.NoError(t, err)
	require.NotNil(t, runner.Engine)
	require.NotNil(t, runner.Calc)
}

func TestFromConfigBadPaths(t *testing.T) {
	_, err := FromConfig(&config.Config{
		Data: config.DataConfig{RegionalTable: "/nonexistent/regional.yaml"},
	})
	assert.Error(t, err)
}

func TestRunFullPipeline(t *testing.T) {
	runner, err := FromConfig(&config.Config{})
	require.NoError(t, err)

	report, err := runner.Run(context.Background(), testIntake())
	require.NoError(t, err)

	require.NotNil(t, report.Primary)
	assert.Equal(t, domain.TierAssistedLiving, report.Primary.FinalTier,
		"Recorded advisory suggestion adjudicates like a live one")
	assert.Equal(t, domain.SourceAdvisory, report.Primary.Adjudication.Source)

	require.NotNil(t, report.Partner)
	assert.Equal(t, domain.TierNoCareNeeded, report.Partner.FinalTier)

	require.NotNil(t, report.PrimaryCost)
	assert.Equal(t, domain.ScenarioFacility, report.PrimaryCost.Scenario)
	assert.True(t, report.PrimaryCost.HomeCarry().Equal(decimal.NewFromInt(1800)))

	assert.Nil(t, report.PartnerCost,
		"No facility placement is priced for a no-care partner")
	require.NotNil(t, report.Household)
	assert.True(t, report.Household.PartnerTotal.IsZero())
	assert.True(t, report.Household.HomeCarry.Equal(decimal.NewFromInt(1800)))
}

func TestRunExplicitCareTypePricesEveryone(t *testing.T) {
	runner, err := FromConfig(&config.Config{})
	require.NoError(t, err)

	intake := testIntake()
	intake.Household.CareType = "assisted_living"

	report, err := runner.Run(context.Background(), intake)
	require.NoError(t, err)

	require.NotNil(t, report.PartnerCost)
	assert.True(t, report.PartnerCost.Breakdown[domain.SegmentBaseCare].Equal(decimal.NewFromInt(4500)))
}

func TestRunInHomeScenario(t *testing.T) {
	runner, err := FromConfig(&config.Config{})
	require.NoError(t, err)

	hours := decimal.NewFromInt(4)
	intake := testIntake()
	intake.Partner = nil
	intake.Household = config.HouseholdIntake{
		Scenario:    "in_home",
		HoursPerDay: &hours,
		KeepHome:    true,
	}

	report, err := runner.Run(context.Background(), intake)
	require.NoError(t, err)

	assert.Equal(t, domain.ScenarioInHome, report.PrimaryCost.Scenario)
	assert.Nil(t, report.PartnerCost)
	require.NotNil(t, report.Household)
	// Care-only total plus one shared home carry.
	expected := report.PrimaryCost.CareOnlyTotal().Add(decimal.NewFromInt(1800))
	assert.True(t, report.Household.HouseholdTotal.Equal(expected))
}

func TestHouseholdUsesOverrideCarry(t *testing.T) {
	runner, err := FromConfig(&config.Config{})
	require.NoError(t, err)

	carry := decimal.NewFromInt(2400)
	h := &config.HouseholdIntake{Scenario: "facility", KeepHome: true, HomeCarry: &carry}

	total := runner.Household(
		&domain.CostPlan{TotalMonthly: decimal.NewFromInt(4500),
			Breakdown: map[domain.Segment]decimal.Decimal{domain.SegmentBaseCare: decimal.NewFromInt(4500)}},
		nil, h)

	assert.True(t, total.HomeCarry.Equal(carry))
	assert.True(t, total.HouseholdTotal.Equal(decimal.NewFromInt(6900)))
}
