package domain

import "fmt"

// Tier is one of the fixed care intensity levels. The ordering of the
// constants reflects increasing care intensity and is relied on when a tier
// has to be clamped into an allowed set.
type Tier string

const (
	TierNoCareNeeded         Tier = "no_care_needed"
	TierInHome               Tier = "in_home"
	TierAssistedLiving       Tier = "assisted_living"
	TierMemoryCare           Tier = "memory_care"
	TierMemoryCareHighAcuity Tier = "memory_care_high_acuity"
)

// AllTiers lists every tier in ascending intensity order.
var AllTiers = []Tier{
	TierNoCareNeeded,
	TierInHome,
	TierAssistedLiving,
	TierMemoryCare,
	TierMemoryCareHighAcuity,
}

var tierIntensity = map[Tier]int{
	TierNoCareNeeded:         0,
	TierInHome:               1,
	TierAssistedLiving:       2,
	TierMemoryCare:           3,
	TierMemoryCareHighAcuity: 4,
}

// ParseTier converts a raw string into a Tier. Unknown values return an
// error rather than a zero tier so callers can distinguish "not a tier"
// from "not allowed".
func ParseTier(s string) (Tier, error) {
	t := Tier(s)
	if _, ok := tierIntensity[t]; !ok {
		return "", fmt.Errorf("unknown care tier %q", s)
	}
	return t, nil
}

// Intensity returns the ordinal intensity of the tier. Unknown tiers map
// to -1.
func (t Tier) Intensity() int {
	if i, ok := tierIntensity[t]; ok {
		return i
	}
	return -1
}

// IsMemoryCare reports whether the tier is one of the memory-care tiers.
func (t Tier) IsMemoryCare() bool {
	return t == TierMemoryCare || t == TierMemoryCareHighAcuity
}

// TierSet is the subset of tiers that gates permit. It is never empty: the
// gate evaluator always leaves at least the structural floor in place.
type TierSet map[Tier]struct{}

// NewTierSet builds a set from the given tiers.
func NewTierSet(tiers ...Tier) TierSet {
	s := make(TierSet, len(tiers))
	for _, t := range tiers {
		s[t] = struct{}{}
	}
	return s
}

// Add inserts a tier into the set.
func (s TierSet) Add(t Tier) { s[t] = struct{}{} }

// Contains reports membership.
func (s TierSet) Contains(t Tier) bool {
	_, ok := s[t]
	return ok
}

// Tiers returns the members in ascending intensity order.
func (s TierSet) Tiers() []Tier {
	out := make([]Tier, 0, len(s))
	for _, t := range AllTiers {
		if s.Contains(t) {
			out = append(out, t)
		}
	}
	return out
}

// ClampToAllowed returns the nearest member of the set at or below the
// intensity of t, falling back to the least intensive member when every
// member sits above t. The scorer is gate-independent, so its tier can land
// outside the allowed set; clamping keeps the final-tier invariant intact on
// the deterministic fallback path.
func (s TierSet) ClampToAllowed(t Tier) Tier {
	if s.Contains(t) {
		return t
	}
	members := s.Tiers()
	clamped := members[0]
	for _, m := range members {
		if m.Intensity() <= t.Intensity() {
			clamped = m
		}
	}
	return clamped
}
