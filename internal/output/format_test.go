package output

import (
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careplanhq/careplan/internal/domain"
)

func sampleReport() *Report {
	conf := 0.72
	adv := domain.TierAssistedLiving
	det := domain.TierMemoryCare
	return &Report{
		Primary: &domain.CarePlan{
			ID:         uuid.New(),
			PersonID:   uuid.New(),
			PersonName: "Ruth",
			FinalTier:  domain.TierAssistedLiving,
			Confidence: 0.72,
			AllowedTiers: []domain.Tier{
				domain.TierNoCareNeeded, domain.TierInHome,
				domain.TierAssistedLiving, domain.TierMemoryCare,
			},
			Bands: domain.Bands{Cognition: domain.CognitionSevere, Support: domain.SupportHigh},
			Flags: []domain.Flag{
				{ID: "wandering_risk", Label: "Wandering / elopement risk", Tone: domain.ToneCritical},
			},
			Rationale: []string{"cognition burden 1.00"},
			NextSteps: []string{"Tour secured memory care communities"},
			Adjudication: domain.AdjudicationDecision{
				DeterministicTier:  &det,
				AdvisoryTier:       &adv,
				AdvisoryRawTier:    "assisted_living",
				AdvisoryConfidence: &conf,
				FinalTier:          domain.TierAssistedLiving,
				Source:             domain.SourceAdvisory,
				Reason:             domain.ReasonAdvisoryValid,
			},
		},
		PrimaryCost: &domain.CostPlan{
			ID:           uuid.New(),
			Scenario:     domain.ScenarioFacility,
			TotalMonthly: decimal.NewFromFloat(5924.34),
			Breakdown: map[domain.Segment]decimal.Decimal{
				domain.SegmentBaseCare:        decimal.NewFromInt(5175),
				domain.SegmentRiskAdjustments: decimal.NewFromFloat(749.34),
			},
			Adjustments: []domain.CostAdjustment{{
				FlagID:     "mobility_limited",
				Percentage: decimal.NewFromFloat(0.08),
				Amount:     decimal.NewFromInt(414),
				Label:      "Limited mobility",
			}},
			Regional: domain.RegionalMultiplier{
				Multiplier: decimal.NewFromFloat(1.15),
				RegionName: "San Francisco",
				Precision:  domain.PrecisionZip,
			},
		},
		Household: &domain.HouseholdTotal{
			PrimaryTotal:   decimal.NewFromFloat(5924.34),
			PartnerTotal:   decimal.NewFromInt(3000),
			HomeCarry:      decimal.NewFromInt(1800),
			HouseholdTotal: decimal.NewFromFloat(10724.34),
			Split: domain.HouseholdSplit{
				Primary: decimal.NewFromFloat(5362.17),
				Partner: decimal.NewFromFloat(5362.17),
			},
		},
	}
}

func TestGetFormatterByName(t *testing.T) {
	assert.IsType(t, ConsoleFormatter{}, GetFormatterByName("console"))
	assert.IsType(t, ConsoleFormatter{}, GetFormatterByName(""), "Console is the default")
	assert.IsType(t, JSONFormatter{}, GetFormatterByName("json"))
	assert.IsType(t, CSVFormatter{}, GetFormatterByName("csv"))
	assert.Nil(t, GetFormatterByName("html"))
}

func TestConsoleFormat(t *testing.T) {
	data, err := (ConsoleFormatter{}).Format(sampleReport())
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "assisted_living")
	assert.Contains(t, out, "advisory (ADVISORY_VALID)")
	assert.Contains(t, out, "$5175.00")
	assert.Contains(t, out, "$5924.34")
	assert.Contains(t, out, "Household total:   $10724.34")
	assert.Contains(t, out, "$5362.17 each")
	assert.Contains(t, out, "Tour secured memory care communities")
	assert.NotContains(t, out, "PARTNER", "No partner section without a partner plan")
}

func TestJSONFormatRoundTrip(t *testing.T) {
	report := sampleReport()
	data, err := (JSONFormatter{}).Format(report)
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, report.Primary.FinalTier, decoded.Primary.FinalTier)
	assert.True(t, decoded.PrimaryCost.TotalMonthly.Equal(report.PrimaryCost.TotalMonthly))
	assert.Nil(t, decoded.Partner)
}

func TestCSVFormat(t *testing.T) {
	data, err := (CSVFormatter{}).Format(sampleReport())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3, "header, primary row, household row")
	assert.True(t, strings.HasPrefix(lines[0], "role,name,final_tier"))
	assert.Contains(t, lines[1], "Ruth")
	assert.Contains(t, lines[1], "assisted_living")
	assert.Contains(t, lines[1], "5924.34")
	assert.True(t, strings.HasPrefix(lines[2], "household"))
	assert.Contains(t, lines[2], "10724.34")
}
