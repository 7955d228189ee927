package costs

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/careplanhq/careplan/internal/domain"
	"github.com/careplanhq/careplan/internal/flags"
)

// highAcuityFlagID labels the unconditional high-acuity tier adjustment in
// the audit trail. It is not a care-plan flag.
const highAcuityFlagID = "high_acuity_tier"

// ApplyModifiers runs the cumulative modifier chain over a base amount.
// Each step multiplies the running total, never the original base:
//
//	amount_n = amount_{n-1} * (1 + percentage_n)
//
// Flags apply at most one adjustment each, in schema-priority order; the
// high-acuity adjustment applies last, unconditionally, when the tier is
// memory_care_high_acuity. The final amount is order-independent (the
// product commutes) but each step's dollar delta is not, so every step
// records its own delta for auditability.
func ApplyModifiers(base decimal.Decimal, flagIDs []string, tier domain.Tier, rates Rates, schema *flags.Schema) ([]domain.CostAdjustment, decimal.Decimal) {
	amount := base
	var adjustments []domain.CostAdjustment

	seen := make(map[string]struct{}, len(flagIDs))
	for _, id := range schema.OrderIDs(flagIDs) {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		pct, ok := rates.FlagAdjustments[id]
		if !ok || pct.IsZero() {
			continue
		}

		label := id
		if e, found := schema.Lookup(id); found {
			label = e.Label
		}
		adj, next := step(amount, id, pct, label,
			fmt.Sprintf("%s increases required care time and oversight", label))
		adjustments = append(adjustments, adj)
		amount = next
	}

	if tier == domain.TierMemoryCareHighAcuity && !rates.HighAcuityAdjustment.IsZero() {
		adj, next := step(amount, highAcuityFlagID, rates.HighAcuityAdjustment,
			"High-acuity memory care",
			"high-acuity memory care carries higher staffing ratios")
		adjustments = append(adjustments, adj)
		amount = next
	}

	return adjustments, amount
}

func step(amount decimal.Decimal, id string, pct decimal.Decimal, label, rationale string) (domain.CostAdjustment, decimal.Decimal) {
	next := amount.Mul(decimal.NewFromInt(1).Add(pct))
	return domain.CostAdjustment{
		FlagID:     id,
		Percentage: pct,
		Amount:     next.Sub(amount),
		Label:      label,
		Rationale:  rationale,
	}, next
}
