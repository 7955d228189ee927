package domain

import (
	"github.com/google/uuid"
)

// CognitionBand is the coarse cognition classification used by gates.
type CognitionBand string

const (
	CognitionNone     CognitionBand = "none"
	CognitionMild     CognitionBand = "mild"
	CognitionModerate CognitionBand = "moderate"
	CognitionSevere   CognitionBand = "severe"
)

var cognitionOrder = map[CognitionBand]int{
	CognitionNone:     0,
	CognitionMild:     1,
	CognitionModerate: 2,
	CognitionSevere:   3,
}

// AtLeast reports whether the band is at or above the given band.
func (b CognitionBand) AtLeast(other CognitionBand) bool {
	return cognitionOrder[b] >= cognitionOrder[other]
}

// SupportBand is the coarse support-need classification used by gates.
type SupportBand string

const (
	SupportLow    SupportBand = "low"
	SupportMedium SupportBand = "medium"
	SupportHigh   SupportBand = "high"
)

// Bands pairs the two derived classifications. Pure function of Answers.
type Bands struct {
	Cognition CognitionBand `json:"cognition_band" yaml:"cognition_band"`
	Support   SupportBand   `json:"support_band" yaml:"support_band"`
}

// DecisionSource identifies which signal produced the final tier.
type DecisionSource string

const (
	SourceDeterministic DecisionSource = "deterministic"
	SourceAdvisory      DecisionSource = "advisory"
)

// ReasonCode explains the adjudication outcome.
type ReasonCode string

const (
	ReasonAdvisoryValid          ReasonCode = "ADVISORY_VALID"
	ReasonAdvisoryUnavailable    ReasonCode = "ADVISORY_UNAVAILABLE"
	ReasonAdvisoryTierNotAllowed ReasonCode = "ADVISORY_TIER_NOT_ALLOWED"
	ReasonDoubleMissingDefault   ReasonCode = "DOUBLE_MISSING_DEFAULT"
)

// AdjudicationDecision is the immutable record of one adjudication call.
// A re-assessment produces a new decision; nothing updates one in place.
type AdjudicationDecision struct {
	DeterministicTier  *Tier          `json:"deterministic_tier" yaml:"deterministic_tier"`
	AdvisoryTier       *Tier          `json:"advisory_tier,omitempty" yaml:"advisory_tier,omitempty"`
	AdvisoryRawTier    string         `json:"advisory_raw_tier,omitempty" yaml:"advisory_raw_tier,omitempty"`
	AdvisoryConfidence *float64       `json:"advisory_confidence,omitempty" yaml:"advisory_confidence,omitempty"`
	Allowed            []Tier         `json:"allowed" yaml:"allowed"`
	FinalTier          Tier           `json:"final_tier" yaml:"final_tier"`
	Source             DecisionSource `json:"source" yaml:"source"`
	Reason             ReasonCode     `json:"reason" yaml:"reason"`
	RiskyBehaviors     bool           `json:"risky_behaviors" yaml:"risky_behaviors"`
}

// FlagTone is the severity coloring of a flag.
type FlagTone string

const (
	ToneInfo     FlagTone = "info"
	ToneWarning  FlagTone = "warning"
	ToneCritical FlagTone = "critical"
)

// Flag is a safety or risk marker attached to a care plan. The label,
// tone and description come from the static flag schema; the engine only
// decides which ids are active.
type Flag struct {
	ID          string   `json:"id" yaml:"id"`
	Label       string   `json:"label" yaml:"label"`
	Tone        FlagTone `json:"tone" yaml:"tone"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// CarePlan is the care tier recommendation for one person. One active plan
// exists per person; a re-assessment replaces it with a new value.
type CarePlan struct {
	ID           uuid.UUID            `json:"id" yaml:"id"`
	PersonID     uuid.UUID            `json:"person_id" yaml:"person_id"`
	PersonName   string               `json:"person_name,omitempty" yaml:"person_name,omitempty"`
	FinalTier    Tier                 `json:"final_tier" yaml:"final_tier"`
	Confidence   float64              `json:"confidence" yaml:"confidence"`
	AllowedTiers []Tier               `json:"allowed_tiers" yaml:"allowed_tiers"`
	Bands        Bands                `json:"bands" yaml:"bands"`
	Flags        []Flag               `json:"flags" yaml:"flags"`
	Rationale    []string             `json:"rationale" yaml:"rationale"`
	NextSteps    []string             `json:"next_steps,omitempty" yaml:"next_steps,omitempty"`
	Adjudication AdjudicationDecision `json:"adjudication" yaml:"adjudication"`
}

// NeedsManualReview reports whether the plan is a fail-safe placeholder
// rather than a real recommendation. Downstream consumers may block on it.
func (p *CarePlan) NeedsManualReview() bool {
	return p.Adjudication.Reason == ReasonDoubleMissingDefault
}
