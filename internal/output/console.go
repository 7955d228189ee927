package output

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/careplanhq/careplan/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// ConsoleFormatter renders a plain-text report for terminal use.
type ConsoleFormatter struct{}

// Name implements Formatter.
func (ConsoleFormatter) Name() string { return "console" }

// Format implements Formatter.
func (ConsoleFormatter) Format(r *Report) ([]byte, error) {
	var b strings.Builder

	writeCarePlan(&b, "PRIMARY", r.Primary)
	if r.Partner != nil {
		writeCarePlan(&b, "PARTNER", r.Partner)
	}
	if r.PrimaryCost != nil {
		writeCostPlan(&b, "PRIMARY", r.PrimaryCost)
	}
	if r.PartnerCost != nil {
		writeCostPlan(&b, "PARTNER", r.PartnerCost)
	}
	if r.Household != nil {
		writeHousehold(&b, r.Household)
	}

	return []byte(b.String()), nil
}

func writeCarePlan(b *strings.Builder, role string, plan *domain.CarePlan) {
	if plan == nil {
		return
	}
	fmt.Fprintf(b, "%s CARE PLAN", role)
	if plan.PersonName != "" {
		fmt.Fprintf(b, " (%s)", plan.PersonName)
	}
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", 40) + "\n")
	fmt.Fprintf(b, "Recommended tier:  %s\n", plan.FinalTier)
	fmt.Fprintf(b, "Decision source:   %s (%s)\n", plan.Adjudication.Source, plan.Adjudication.Reason)
	if plan.Adjudication.AdvisoryConfidence != nil {
		fmt.Fprintf(b, "Advisory confidence: %.2f\n", *plan.Adjudication.AdvisoryConfidence)
	}
	fmt.Fprintf(b, "Cognition band:    %s\n", plan.Bands.Cognition)
	fmt.Fprintf(b, "Support band:      %s\n", plan.Bands.Support)

	tiers := make([]string, 0, len(plan.AllowedTiers))
	for _, t := range plan.AllowedTiers {
		tiers = append(tiers, string(t))
	}
	fmt.Fprintf(b, "Permitted tiers:   %s\n", strings.Join(tiers, ", "))

	if len(plan.Flags) > 0 {
		b.WriteString("Flags:\n")
		for _, f := range plan.Flags {
			fmt.Fprintf(b, "  [%s] %s\n", f.Tone, f.Label)
		}
	}
	if len(plan.Rationale) > 0 {
		b.WriteString("Rationale:\n")
		for _, line := range plan.Rationale {
			fmt.Fprintf(b, "  - %s\n", line)
		}
	}
	if len(plan.NextSteps) > 0 {
		b.WriteString("Next steps:\n")
		for _, step := range plan.NextSteps {
			fmt.Fprintf(b, "  - %s\n", step)
		}
	}
	if plan.NeedsManualReview() {
		b.WriteString("NOTE: placeholder recommendation, manual review required\n")
	}
	b.WriteString("\n")
}

func writeCostPlan(b *strings.Builder, role string, plan *domain.CostPlan) {
	fmt.Fprintf(b, "%s MONTHLY COST (%s)\n", role, plan.Scenario)
	b.WriteString(strings.Repeat("=", 40) + "\n")
	fmt.Fprintf(b, "Region:            %s (%s, x%s)\n",
		plan.Regional.RegionName, plan.Regional.Precision, plan.Regional.Multiplier)
	fmt.Fprintf(b, "Base care:         $%s\n", plan.Breakdown[domain.SegmentBaseCare].StringFixed(2))
	for _, adj := range plan.Adjustments {
		fmt.Fprintf(b, "  +%s%% %-24s $%s\n",
			adj.Percentage.Mul(hundred).StringFixed(0), adj.Label, adj.Amount.StringFixed(2))
	}
	if hc := plan.HomeCarry(); hc.GreaterThan(decimal.Zero) {
		fmt.Fprintf(b, "Home carry:        $%s\n", hc.StringFixed(2))
	}
	fmt.Fprintf(b, "TOTAL:             $%s\n\n", plan.TotalMonthly.StringFixed(2))
}

func writeHousehold(b *strings.Builder, h *domain.HouseholdTotal) {
	b.WriteString("HOUSEHOLD\n")
	b.WriteString(strings.Repeat("=", 40) + "\n")
	fmt.Fprintf(b, "Primary care cost: $%s\n", h.PrimaryTotal.StringFixed(2))
	fmt.Fprintf(b, "Partner care cost: $%s\n", h.PartnerTotal.StringFixed(2))
	fmt.Fprintf(b, "Home carry:        $%s\n", h.HomeCarry.StringFixed(2))
	fmt.Fprintf(b, "Household total:   $%s\n", h.HouseholdTotal.StringFixed(2))
	fmt.Fprintf(b, "Even split:        $%s each\n", h.Split.Primary.StringFixed(2))
}
