// Package scoring computes the deterministic baseline tier from raw intake
// answers. It is independent of gates and of any advisory input: the tier
// with the highest weighted aggregate score wins, subject to the cognitive
// short-circuit override.
package scoring

import (
	"fmt"
	"sort"

	"github.com/careplanhq/careplan/internal/domain"
	"github.com/careplanhq/careplan/internal/gates"
)

// Domain is one scored assessment domain. Scores are unit-interval floats.
type Domain string

const (
	DomainMobility  Domain = "mobility"
	DomainCognition Domain = "cognition"
	DomainADL       Domain = "adl"
	DomainMedical   Domain = "medical"
	DomainIsolation Domain = "isolation"
	DomainSafety    Domain = "safety"
)

// Answer keys consumed by the scorer beyond the gate keys.
const (
	KeyMobility           = "mobility"
	KeyFallsLastYear      = "falls_last_year"
	KeyConditions         = "conditions"
	KeyMedCount           = "med_count"
	KeyLivesAlone         = "lives_alone"
	KeyCaregiverAvailable = "caregiver_available"
)

// maxSummaryPoints caps the rationale factors so explanations stay terse.
const maxSummaryPoints = 5

// tierAffinity weights each domain's contribution to each care tier's
// aggregate score. no_care_needed is scored on inverted domain scores, see
// aggregate.
var tierAffinity = map[domain.Tier]map[Domain]float64{
	domain.TierInHome: {
		DomainADL:       0.35,
		DomainIsolation: 0.25,
		DomainMobility:  0.15,
		DomainMedical:   0.15,
		DomainCognition: 0.05,
		DomainSafety:    0.05,
	},
	domain.TierAssistedLiving: {
		DomainADL:       0.30,
		DomainMobility:  0.30,
		DomainMedical:   0.25,
		DomainSafety:    0.10,
		DomainCognition: 0.05,
	},
	domain.TierMemoryCare: {
		DomainCognition: 0.50,
		DomainSafety:    0.30,
		DomainADL:       0.10,
		DomainMobility:  0.05,
		DomainMedical:   0.05,
	},
	domain.TierMemoryCareHighAcuity: {
		DomainCognition: 0.40,
		DomainSafety:    0.35,
		DomainMedical:   0.15,
		DomainADL:       0.10,
	},
}

// noCareScale damps the inverted-score aggregate for no_care_needed so a
// mixed profile prefers a care tier over no care.
const noCareScale = 0.8

// Result is the full deterministic scoring output for one person.
type Result struct {
	Tier          domain.Tier
	DomainScores  map[Domain]float64
	SummaryPoints []string
}

// Score computes the deterministic tier and per-domain scores from answers.
func Score(ans domain.Answers) Result {
	scores := map[Domain]float64{
		DomainMobility:  mobilityScore(ans),
		DomainCognition: cognitionScore(ans),
		DomainADL:       adlScore(ans),
		DomainMedical:   medicalScore(ans),
		DomainIsolation: isolationScore(ans),
		DomainSafety:    safetyScore(ans),
	}

	tier := pickTier(ans, scores)

	return Result{
		Tier:          tier,
		DomainScores:  scores,
		SummaryPoints: summarize(scores),
	}
}

// pickTier selects the highest-aggregate tier. A confirmed severe cognitive
// diagnosis combined with behavioral risk short-circuits to memory_care
// regardless of the aggregate scores.
func pickTier(ans domain.Answers, scores map[Domain]float64) domain.Tier {
	severeConfirmed := ans.StrOr(gates.KeyMemoryChanges, "none") == "severe" &&
		ans.StrOr(gates.KeyCognitiveDxConfirm, "dx_unsure") == "dx_yes"
	if severeConfirmed && gates.HasRiskyBehaviors(ans) {
		return domain.TierMemoryCare
	}

	best := domain.TierNoCareNeeded
	bestScore := aggregate(domain.TierNoCareNeeded, scores)
	for _, t := range domain.AllTiers[1:] {
		// Ties resolve toward the more intensive tier: when in doubt the
		// engine recommends more support, never less.
		if s := aggregate(t, scores); s >= bestScore {
			best, bestScore = t, s
		}
	}
	return best
}

func aggregate(t domain.Tier, scores map[Domain]float64) float64 {
	if t == domain.TierNoCareNeeded {
		var total float64
		for _, s := range scores {
			total += (1 - s) / float64(len(scores))
		}
		return total * noCareScale
	}

	var total float64
	for d, w := range tierAffinity[t] {
		total += w * scores[d]
	}
	return total
}

func mobilityScore(ans domain.Answers) float64 {
	var base float64
	switch ans.StrOr(KeyMobility, "independent") {
	case "independent":
		base = 0
	case "cane":
		base = 0.25
	case "walker":
		base = 0.5
	case "wheelchair":
		base = 0.75
	case "bedbound":
		base = 1
	default:
		panic("scoring: unknown mobility value " + ans.Str(KeyMobility))
	}
	return clamp(base + fallsScore(ans)*0.3)
}

func cognitionScore(ans domain.Answers) float64 {
	switch ans.StrOr(gates.KeyMemoryChanges, "none") {
	case "none":
		return 0
	case "mild":
		return 0.33
	case "moderate":
		return 0.66
	default: // severe; confirmation affects gating, not burden
		return 1
	}
}

func adlScore(ans domain.Answers) float64 {
	needs := len(ans.Strings(gates.KeyADLNeeds)) + len(ans.Strings(gates.KeyIADLNeeds))
	hours := hoursFraction(ans)
	return clamp(0.6*float64(needs)/8 + 0.4*hours)
}

func medicalScore(ans domain.Answers) float64 {
	conditions := len(ans.Strings(KeyConditions))
	score := float64(conditions) / 6
	if ans.IntOr(KeyMedCount, 0) >= 8 {
		score += 0.25
	}
	return clamp(score)
}

func isolationScore(ans domain.Answers) float64 {
	score := 0.2
	if ans.BoolOr(KeyLivesAlone, false) {
		score = 0.6
	}
	if !ans.BoolOr(KeyCaregiverAvailable, true) {
		score += 0.4
	}
	return clamp(score)
}

func safetyScore(ans domain.Answers) float64 {
	risky := 0.0
	if gates.HasRiskyBehaviors(ans) {
		risky = 0.7
	}
	return clamp(risky + fallsScore(ans)*0.3)
}

func fallsScore(ans domain.Answers) float64 {
	switch falls := ans.IntOr(KeyFallsLastYear, 0); {
	case falls >= 2:
		return 1
	case falls == 1:
		return 0.5
	default:
		return 0
	}
}

func hoursFraction(ans domain.Answers) float64 {
	switch ans.StrOr(gates.KeyHoursPerDay, "none") {
	case "none":
		return 0
	case "lt_2h":
		return 0.2
	case "2_4h":
		return 0.4
	case "4_8h":
		return 0.6
	case "8_16h":
		return 0.8
	default: // 24h
		return 1
	}
}

// summarize captures the top contributing factors for rationale generation.
func summarize(scores map[Domain]float64) []string {
	type contrib struct {
		d Domain
		s float64
	}
	contribs := make([]contrib, 0, len(scores))
	for d, s := range scores {
		if s > 0 {
			contribs = append(contribs, contrib{d, s})
		}
	}
	sort.Slice(contribs, func(i, j int) bool {
		if contribs[i].s != contribs[j].s {
			return contribs[i].s > contribs[j].s
		}
		return contribs[i].d < contribs[j].d
	})
	if len(contribs) > maxSummaryPoints {
		contribs = contribs[:maxSummaryPoints]
	}

	points := make([]string, 0, len(contribs))
	for _, c := range contribs {
		points = append(points, fmt.Sprintf("%s burden %.2f", c.d, c.s))
	}
	return points
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return v
}
