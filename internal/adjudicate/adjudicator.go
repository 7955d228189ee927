// Package adjudicate combines the deterministic tier, the advisory
// suggestion, and the allowed-tier set into one final tier plus an
// explainable decision record.
//
// The policy is advisory-first with a deterministic fallback. Validity
// (membership in the allowed set) is the only gate; confidence is recorded
// for observability and never influences the decision.
package adjudicate

import (
	"go.uber.org/zap"

	"github.com/careplanhq/careplan/internal/advisory"
	"github.com/careplanhq/careplan/internal/domain"
)

// safeDefaultTier is the fail-safe when both signals are missing. The
// resulting plan is a placeholder needing manual review, not a
// recommendation.
const safeDefaultTier = domain.TierAssistedLiving

// Input carries the two signals and the gate outcome for one person.
// Partner adjudication runs through the same function with its own Input;
// no cross-person state exists.
type Input struct {
	Deterministic  *domain.Tier
	Advisory       *advisory.Suggestion
	Allowed        domain.TierSet
	RiskyBehaviors bool
}

// Decide resolves one final tier. The returned decision always satisfies
// FinalTier ∈ Allowed.
func Decide(in Input) domain.AdjudicationDecision {
	dec := domain.AdjudicationDecision{
		DeterministicTier: in.Deterministic,
		Allowed:           in.Allowed.Tiers(),
		RiskyBehaviors:    in.RiskyBehaviors,
	}

	if in.Advisory != nil {
		conf := in.Advisory.Confidence
		dec.AdvisoryConfidence = &conf
		dec.AdvisoryRawTier = in.Advisory.Tier
		if t, err := domain.ParseTier(in.Advisory.Tier); err == nil {
			dec.AdvisoryTier = &t
		}
	}

	switch {
	case in.Advisory == nil:
		return fallback(dec, in, domain.ReasonAdvisoryUnavailable)

	case dec.AdvisoryTier == nil || !in.Allowed.Contains(*dec.AdvisoryTier):
		zap.L().Warn("adjudicate: advisory tier rejected",
			zap.String("rejected_tier", dec.AdvisoryRawTier),
			zap.Bool("in_enum", dec.AdvisoryTier != nil),
			zap.Float64("confidence", in.Advisory.Confidence),
		)
		return fallback(dec, in, domain.ReasonAdvisoryTierNotAllowed)

	default:
		// Advisory wins whenever valid. Agreement with the deterministic
		// tier still reports the advisory source: it confirmed the tier
		// rather than changed it.
		dec.FinalTier = *dec.AdvisoryTier
		dec.Source = domain.SourceAdvisory
		dec.Reason = domain.ReasonAdvisoryValid
		return dec
	}
}

func fallback(dec domain.AdjudicationDecision, in Input, reason domain.ReasonCode) domain.AdjudicationDecision {
	dec.Source = domain.SourceDeterministic
	dec.Reason = reason

	if in.Deterministic == nil {
		dec.FinalTier = safeDefaultTier
		dec.Reason = domain.ReasonDoubleMissingDefault
		zap.L().Error("adjudicate: both signals missing, using safe default",
			zap.String("default_tier", string(safeDefaultTier)),
		)
		return dec
	}

	dec.FinalTier = in.Allowed.ClampToAllowed(*in.Deterministic)
	return dec
}
