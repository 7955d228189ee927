// Package assess orchestrates one person's assessment: gate evaluation,
// deterministic scoring, the advisory consultation, adjudication, and flag
// derivation, producing a complete care plan.
package assess

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/careplanhq/careplan/internal/adjudicate"
	"github.com/careplanhq/careplan/internal/advisory"
	"github.com/careplanhq/careplan/internal/domain"
	"github.com/careplanhq/careplan/internal/flags"
	"github.com/careplanhq/careplan/internal/gates"
	"github.com/careplanhq/careplan/internal/scoring"
)

// DefaultAdvisoryTimeout bounds the advisory consultation. On timeout the
// adjudicator proceeds exactly as if no suggestion existed.
const DefaultAdvisoryTimeout = 5 * time.Second

// Engine computes care plans. Every call is a pure function of its inputs
// except the advisory consultation, which runs under an explicit timeout.
type Engine struct {
	Schema          *flags.Schema
	AdvisoryTimeout time.Duration
}

// NewEngine builds an engine over the given flag schema. A nil schema uses
// the built-in one.
func NewEngine(schema *flags.Schema) *Engine {
	if schema == nil {
		schema = flags.DefaultSchema()
	}
	return &Engine{Schema: schema, AdvisoryTimeout: DefaultAdvisoryTimeout}
}

// ComputeCarePlan assesses one person. A nil advisor means no advisory
// opinion is available; the deterministic path still always produces a
// plan. Partner assessments are independent calls with their own answers
// and advisor result; nothing carries over between persons.
func (e *Engine) ComputeCarePlan(ctx context.Context, personID uuid.UUID, personName string, ans domain.Answers, advisor advisory.Advisor) *domain.CarePlan {
	if personID == uuid.Nil {
		personID = uuid.New()
	}

	gateRes := gates.Evaluate(ans)
	scoreRes := scoring.Score(ans)

	deterministic := gateRes.Allowed.ClampToAllowed(scoreRes.Tier)
	suggestion := e.consult(ctx, advisor, gateRes, scoreRes)

	decision := adjudicate.Decide(adjudicate.Input{
		Deterministic:  &deterministic,
		Advisory:       suggestion,
		Allowed:        gateRes.Allowed,
		RiskyBehaviors: gateRes.RiskyBehaviors,
	})

	activeFlags := deriveFlags(ans, gateRes)
	confidence := 0.0
	if decision.Source == domain.SourceAdvisory && decision.AdvisoryConfidence != nil {
		confidence = *decision.AdvisoryConfidence
	}

	plan := &domain.CarePlan{
		ID:           uuid.New(),
		PersonID:     personID,
		PersonName:   personName,
		FinalTier:    decision.FinalTier,
		Confidence:   confidence,
		AllowedTiers: gateRes.Allowed.Tiers(),
		Bands:        gateRes.Bands,
		Flags:        e.Schema.Resolve(activeFlags),
		Rationale:    rationale(scoreRes, decision),
		NextSteps:    e.Schema.NextActions(activeFlags),
		Adjudication: decision,
	}

	zap.L().Info("assess: care plan computed",
		zap.String("person_id", personID.String()),
		zap.String("final_tier", string(plan.FinalTier)),
		zap.String("source", string(decision.Source)),
		zap.String("reason", string(decision.Reason)),
	)
	return plan
}

// consult runs the advisory port under the engine timeout. Unavailability
// of any kind collapses to "no suggestion"; it is recovered locally and
// never surfaces as a failure.
func (e *Engine) consult(ctx context.Context, advisor advisory.Advisor, gateRes gates.Result, scoreRes scoring.Result) *advisory.Suggestion {
	if advisor == nil {
		return nil
	}

	timeout := e.AdvisoryTimeout
	if timeout <= 0 {
		timeout = DefaultAdvisoryTimeout
	}
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	domainScores := make(map[string]float64, len(scoreRes.DomainScores))
	for d, s := range scoreRes.DomainScores {
		domainScores[string(d)] = s
	}

	suggestion, err := advisor.Advise(cctx, advisory.Context{
		Bands:          gateRes.Bands,
		Allowed:        gateRes.Allowed.Tiers(),
		DomainScores:   domainScores,
		RiskyBehaviors: gateRes.RiskyBehaviors,
	})
	if err != nil {
		zap.L().Warn("assess: advisory unavailable", zap.Error(err))
		return nil
	}
	return suggestion
}

// deriveFlags computes the active flag ids from answers and the gate
// outcome. The schema supplies presentation; activation lives here.
func deriveFlags(ans domain.Answers, gateRes gates.Result) []string {
	var ids []string

	if ans.IntOr(scoring.KeyFallsLastYear, 0) >= 2 {
		ids = append(ids, "fall_risk")
	}
	switch ans.StrOr(scoring.KeyMobility, "independent") {
	case "walker", "wheelchair", "bedbound":
		ids = append(ids, "mobility_limited")
	}
	if ans.IntOr(scoring.KeyMedCount, 0) >= 8 {
		ids = append(ids, "medication_management")
	}
	if gateRes.Bands.Cognition.AtLeast(domain.CognitionModerate) {
		ids = append(ids, "cognitive_risk")
	}
	if gateRes.RiskyBehaviors {
		ids = append(ids, "wandering_risk")
	}
	if ans.BoolOr(scoring.KeyLivesAlone, false) && !ans.BoolOr(scoring.KeyCaregiverAvailable, true) {
		ids = append(ids, "isolation_risk")
	}
	return ids
}

// rationale assembles the human-readable explanation: the top scoring
// factors plus a sentence describing how the final tier was decided.
func rationale(scoreRes scoring.Result, decision domain.AdjudicationDecision) []string {
	points := make([]string, 0, len(scoreRes.SummaryPoints)+2)
	points = append(points, scoreRes.SummaryPoints...)

	if decision.DeterministicTier != nil && scoreRes.Tier != *decision.DeterministicTier {
		points = append(points, fmt.Sprintf(
			"baseline score favored %s; structural gates limited the recommendation to %s",
			scoreRes.Tier, *decision.DeterministicTier))
	}

	switch decision.Reason {
	case domain.ReasonAdvisoryValid:
		points = append(points, fmt.Sprintf(
			"advisory review agreed %s is appropriate", decision.FinalTier))
	case domain.ReasonAdvisoryTierNotAllowed:
		points = append(points, fmt.Sprintf(
			"advisory suggestion %q was outside the permitted tiers; the baseline recommendation stands",
			decision.AdvisoryRawTier))
	case domain.ReasonAdvisoryUnavailable:
		points = append(points, "advisory review was unavailable; the baseline recommendation stands")
	case domain.ReasonDoubleMissingDefault:
		points = append(points, "no recommendation signal was available; this plan needs manual review")
	}
	return points
}
