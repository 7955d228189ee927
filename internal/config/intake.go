package config

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/careplanhq/careplan/internal/domain"
	"github.com/careplanhq/careplan/internal/gates"
)

// Intake is one assessment session document: the primary person's answers,
// optionally a partner's, the shared household settings, and the cost
// scenario to estimate.
type Intake struct {
	Primary   IntakePerson    `yaml:"primary" json:"primary"`
	Partner   *IntakePerson   `yaml:"partner,omitempty" json:"partner,omitempty"`
	Household HouseholdIntake `yaml:"household" json:"household"`
}

// IntakePerson carries one person's name and raw answers.
type IntakePerson struct {
	Name    string         `yaml:"name" json:"name"`
	Answers map[string]any `yaml:"answers" json:"answers"`

	// Advisory carries a pre-obtained advisory suggestion for offline runs
	// and testing; absent means no advisory opinion.
	Advisory *AdvisoryIntake `yaml:"advisory,omitempty" json:"advisory,omitempty"`
}

// AdvisoryIntake is a recorded advisory suggestion.
type AdvisoryIntake struct {
	Tier       string  `yaml:"tier" json:"tier"`
	Confidence float64 `yaml:"confidence" json:"confidence"`
}

// HouseholdIntake carries the shared household and scenario settings.
type HouseholdIntake struct {
	Zip         string           `yaml:"zip,omitempty" json:"zip,omitempty"`
	State       string           `yaml:"state,omitempty" json:"state,omitempty"`
	Scenario    string           `yaml:"scenario" json:"scenario"`
	CareType    string           `yaml:"care_type,omitempty" json:"care_type,omitempty"`
	HoursPerDay *decimal.Decimal `yaml:"hours_per_day,omitempty" json:"hours_per_day,omitempty"`
	KeepHome    bool             `yaml:"keep_home" json:"keep_home"`
	Ownership   string           `yaml:"ownership,omitempty" json:"ownership,omitempty"`
	HomeCarry   *decimal.Decimal `yaml:"home_carry,omitempty" json:"home_carry,omitempty"`
}

// IntakeParser handles parsing of intake documents.
type IntakeParser struct{}

// NewIntakeParser creates a new intake parser.
func NewIntakeParser() *IntakeParser {
	return &IntakeParser{}
}

// LoadFromFile loads an intake document from a YAML file.
func (ip *IntakeParser) LoadFromFile(filename string) (*Intake, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, eris.Wrapf(err, "config: read intake %s", filename)
	}

	var intake Intake
	if err := yaml.Unmarshal(data, &intake); err != nil {
		return nil, eris.Wrap(err, "config: parse intake")
	}

	if err := ip.Validate(&intake); err != nil {
		return nil, eris.Wrap(err, "config: intake validation failed")
	}
	return &intake, nil
}

// Validate checks the intake document for contract violations.
func (ip *IntakeParser) Validate(intake *Intake) error {
	if err := ip.ValidatePerson("primary", &intake.Primary); err != nil {
		return err
	}
	if intake.Partner != nil {
		if err := ip.ValidatePerson("partner", intake.Partner); err != nil {
			return err
		}
	}
	return ip.validateHousehold(&intake.Household)
}

// ValidatePerson checks one person's answers in isolation; the care plan
// API accepts a person without any household settings.
func (ip *IntakeParser) ValidatePerson(role string, p *IntakePerson) error {
	if len(p.Answers) == 0 {
		return eris.Errorf("%s: answers are required", role)
	}
	if _, ok := p.Answers[gates.KeyMemoryChanges]; !ok {
		return eris.Errorf("%s: %s answer is required", role, gates.KeyMemoryChanges)
	}
	return nil
}

func (ip *IntakeParser) validateHousehold(h *HouseholdIntake) error {
	switch domain.ScenarioKind(h.Scenario) {
	case domain.ScenarioFacility:
		// Care type is optional; the care plan's final tier is used when
		// unset. When present it must parse.
		if h.CareType != "" {
			if _, err := domain.ParseTier(h.CareType); err != nil {
				return eris.Wrap(err, "household: care_type")
			}
		}
	case domain.ScenarioInHome:
		if h.HoursPerDay == nil || h.HoursPerDay.LessThanOrEqual(decimal.Zero) {
			return eris.New("household: hours_per_day must be positive for the in_home scenario")
		}
		// In-home care assumes the home is kept.
		h.KeepHome = true
	default:
		return eris.Errorf("household: scenario must be %q or %q, got %q",
			domain.ScenarioFacility, domain.ScenarioInHome, h.Scenario)
	}

	if h.Ownership != "" && h.Ownership != "owner" && h.Ownership != "tenant" {
		return eris.Errorf("household: ownership must be 'owner' or 'tenant', got %q", h.Ownership)
	}
	if h.HomeCarry != nil && h.HomeCarry.LessThan(decimal.Zero) {
		return eris.New("household: home_carry cannot be negative")
	}
	return nil
}

// PersonAnswers converts the raw intake answers into the immutable Answers
// value consumed by the engine.
func (p *IntakePerson) PersonAnswers() domain.Answers {
	out := make(domain.Answers, len(p.Answers))
	for k, v := range p.Answers {
		out[k] = v
	}
	return out
}
