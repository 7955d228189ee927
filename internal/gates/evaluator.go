// Package gates classifies intake answers into cognition/support bands and
// determines which care tiers are structurally permissible before any
// scoring or advisory input is considered.
package gates

import (
	"github.com/careplanhq/careplan/internal/domain"
)

// Answer keys consumed by the evaluator.
const (
	KeyMemoryChanges      = "memory_changes"
	KeyCognitiveDxConfirm = "cognitive_dx_confirm"
	KeyBehaviors          = "behaviors"
	KeyHoursPerDay        = "hours_per_day"
	KeyADLNeeds           = "adl_needs"
	KeyIADLNeeds          = "iadl_needs"
)

// riskyBehaviorTags is the fixed set of behavior tags that trip the safety
// override. Behavioral risk forces the memory-care tiers into the allowed
// set; it is a safety override, not a scored preference.
var riskyBehaviorTags = map[string]struct{}{
	"wandering":    {},
	"elopement":    {},
	"exit_seeking": {},
	"aggression":   {},
	"sundowning":   {},
}

// hoursPoints maps the hours-per-day intake band to support points.
var hoursPoints = map[string]int{
	"none":  0,
	"lt_2h": 1,
	"2_4h":  2,
	"4_8h":  3,
	"8_16h": 4,
	"24h":   5,
}

// Result is the full gate evaluation for one person.
type Result struct {
	Bands          domain.Bands
	Allowed        domain.TierSet
	RiskyBehaviors bool
}

// Evaluate derives bands and the allowed-tier set from answers.
func Evaluate(ans domain.Answers) Result {
	cognition := cognitionBand(ans)
	support := supportBand(ans)
	risky := hasRiskyBehaviors(ans)

	// Structural floor. In-home and no-care remain allowed for every
	// assessment, so the set can never be empty.
	allowed := domain.NewTierSet(
		domain.TierNoCareNeeded,
		domain.TierInHome,
		domain.TierAssistedLiving,
	)

	// Cognitive gate: memory-care tiers require at least moderate cognition
	// decline, so support-hours pressure alone cannot reach them. Behavioral
	// risk with cognitive involvement forces them in regardless of score.
	if cognition.AtLeast(domain.CognitionModerate) || risky {
		allowed.Add(domain.TierMemoryCare)
		allowed.Add(domain.TierMemoryCareHighAcuity)
	}

	return Result{
		Bands:          domain.Bands{Cognition: cognition, Support: support},
		Allowed:        allowed,
		RiskyBehaviors: risky,
	}
}

// cognitionBand derives the cognition band from memory-change severity and,
// for severe changes, the confirmed-diagnosis answer. An unconfirmed severe
// report is treated as moderate so memory-care gating does not trigger
// without clinical confirmation.
func cognitionBand(ans domain.Answers) domain.CognitionBand {
	switch ans.Str(KeyMemoryChanges) {
	case "none":
		return domain.CognitionNone
	case "mild":
		return domain.CognitionMild
	case "moderate":
		return domain.CognitionModerate
	case "severe":
		if ans.StrOr(KeyCognitiveDxConfirm, "dx_unsure") == "dx_yes" {
			return domain.CognitionSevere
		}
		return domain.CognitionModerate
	default:
		panic("gates: unknown memory_changes value " + ans.Str(KeyMemoryChanges))
	}
}

// supportBand derives the support band from hours-per-day of assistance and
// the count of ADL/IADL needs requiring help.
func supportBand(ans domain.Answers) domain.SupportBand {
	hours, ok := hoursPoints[ans.StrOr(KeyHoursPerDay, "none")]
	if !ok {
		panic("gates: unknown hours_per_day value " + ans.Str(KeyHoursPerDay))
	}

	needs := len(ans.Strings(KeyADLNeeds)) + len(ans.Strings(KeyIADLNeeds))
	points := hours
	switch {
	case needs >= 6:
		points += 2
	case needs >= 3:
		points++
	}

	switch {
	case points <= 1:
		return domain.SupportLow
	case points <= 4:
		return domain.SupportMedium
	default:
		return domain.SupportHigh
	}
}

// HasRiskyBehaviors reports whether any answered behavior tag is in the
// fixed risky set. Exposed for the scorer's safety domain and override.
func HasRiskyBehaviors(ans domain.Answers) bool {
	return hasRiskyBehaviors(ans)
}

func hasRiskyBehaviors(ans domain.Answers) bool {
	for _, tag := range ans.Strings(KeyBehaviors) {
		if _, ok := riskyBehaviorTags[tag]; ok {
			return true
		}
	}
	return false
}
