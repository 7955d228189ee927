// Package output renders assessment results in the formats the CLI
// supports. Formatters are looked up by name.
package output

import (
	"github.com/careplanhq/careplan/internal/domain"
)

// Report bundles everything one assessment run produced.
type Report struct {
	Primary     *domain.CarePlan       `json:"primary"`
	Partner     *domain.CarePlan       `json:"partner,omitempty"`
	PrimaryCost *domain.CostPlan       `json:"primary_cost,omitempty"`
	PartnerCost *domain.CostPlan       `json:"partner_cost,omitempty"`
	Household   *domain.HouseholdTotal `json:"household,omitempty"`
}

// Formatter renders a report to bytes.
type Formatter interface {
	Name() string
	Format(r *Report) ([]byte, error)
}

// GetFormatterByName returns the formatter for a name, nil when unknown.
func GetFormatterByName(name string) Formatter {
	switch name {
	case "console", "":
		return ConsoleFormatter{}
	case "json":
		return JSONFormatter{}
	case "csv":
		return CSVFormatter{}
	default:
		return nil
	}
}
