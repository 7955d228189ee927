package output

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"

	"github.com/careplanhq/careplan/internal/domain"
)

// CSVFormatter emits one summary row per person plus an optional household
// row, suitable for spreadsheet import.
type CSVFormatter struct{}

// Name implements Formatter.
func (CSVFormatter) Name() string { return "csv" }

// Format implements Formatter.
func (CSVFormatter) Format(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"role", "name", "final_tier", "decision_source", "confidence",
		"cognition_band", "support_band", "flags",
		"scenario", "base_care", "risk_adjustments", "home_carry", "total_monthly",
	}
	if err := w.Write(header); err != nil {
		return nil, eris.Wrap(err, "output: write csv header")
	}

	if err := w.Write(personRow("primary", r.Primary, r.PrimaryCost)); err != nil {
		return nil, eris.Wrap(err, "output: write primary row")
	}
	if r.Partner != nil {
		if err := w.Write(personRow("partner", r.Partner, r.PartnerCost)); err != nil {
			return nil, eris.Wrap(err, "output: write partner row")
		}
	}
	if r.Household != nil {
		row := []string{
			"household", "", "", "", "", "", "", "", "",
			"", "", r.Household.HomeCarry.StringFixed(2), r.Household.HouseholdTotal.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, eris.Wrap(err, "output: write household row")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, eris.Wrap(err, "output: flush csv")
	}
	return buf.Bytes(), nil
}

func personRow(role string, plan *domain.CarePlan, cost *domain.CostPlan) []string {
	row := []string{role, "", "", "", "", "", "", "", "", "", "", "", ""}
	if plan != nil {
		row[1] = plan.PersonName
		row[2] = string(plan.FinalTier)
		row[3] = string(plan.Adjudication.Source)
		row[4] = fmt.Sprintf("%.2f", plan.Confidence)
		row[5] = string(plan.Bands.Cognition)
		row[6] = string(plan.Bands.Support)
		row[7] = flagIDs(plan)
	}
	if cost != nil {
		row[8] = string(cost.Scenario)
		row[9] = cost.Breakdown[domain.SegmentBaseCare].StringFixed(2)
		row[10] = cost.Breakdown[domain.SegmentRiskAdjustments].StringFixed(2)
		row[11] = cost.HomeCarry().StringFixed(2)
		row[12] = cost.TotalMonthly.StringFixed(2)
	} else if plan != nil {
		row[9] = decimal.Zero.StringFixed(2)
	}
	return row
}

func flagIDs(plan *domain.CarePlan) string {
	var s string
	for i, f := range plan.Flags {
		if i > 0 {
			s += ";"
		}
		s += f.ID
	}
	return s
}
