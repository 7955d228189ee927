// Package costs turns a care plan into a monthly cost estimate: base rates
// scaled by the regional multiplier, adjusted by a cumulative multiplicative
// modifier chain, aggregated across a two-person household.
package costs

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/careplanhq/careplan/internal/domain"
)

// Rates holds the externally loaded cost configuration: per-tier facility
// base rates, the in-home hourly rate, the default home-carry amount, and
// the per-flag adjustment percentages.
type Rates struct {
	FacilityMonthly      map[domain.Tier]decimal.Decimal `yaml:"facility_monthly"`
	InHomeHourly         decimal.Decimal                 `yaml:"in_home_hourly"`
	HomeCarryDefault     decimal.Decimal                 `yaml:"home_carry_default"`
	FlagAdjustments      map[string]decimal.Decimal      `yaml:"flag_adjustments"`
	HighAcuityAdjustment decimal.Decimal                 `yaml:"high_acuity_adjustment"`
}

// LoadRates reads a yaml rates file.
func LoadRates(path string) (Rates, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rates{}, eris.Wrapf(err, "costs: read rates %s", path)
	}
	var r Rates
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Rates{}, eris.Wrap(err, "costs: parse rates")
	}
	return r, nil
}

// DefaultRates returns the built-in national baseline rates.
func DefaultRates() Rates {
	return Rates{
		FacilityMonthly: map[domain.Tier]decimal.Decimal{
			domain.TierAssistedLiving:       decimal.NewFromInt(4500),
			domain.TierMemoryCare:           decimal.NewFromInt(6200),
			domain.TierMemoryCareHighAcuity: decimal.NewFromInt(8100),
		},
		InHomeHourly:     decimal.NewFromInt(28),
		HomeCarryDefault: decimal.NewFromInt(1800),
		FlagAdjustments: map[string]decimal.Decimal{
			"mobility_limited":      decimal.NewFromFloat(0.08),
			"medication_management": decimal.NewFromFloat(0.06),
			"fall_risk":             decimal.NewFromFloat(0.05),
			"cognitive_risk":        decimal.NewFromFloat(0.07),
			"wandering_risk":        decimal.NewFromFloat(0.10),
			"isolation_risk":        decimal.NewFromFloat(0.03),
		},
		HighAcuityAdjustment: decimal.NewFromFloat(0.12),
	}
}
