// Package advisory defines the external second-opinion contract consumed by
// the tier adjudicator. Implementations (a network call to a language model,
// or a stub) live outside the core; only the signature matters here.
package advisory

import (
	"context"

	"github.com/careplanhq/careplan/internal/domain"
)

// Context carries exactly the derived assessment state an advisor may see:
// gate bands, the allowed-tier set, and summarized domain scores. Raw
// free-text answers never cross this boundary.
type Context struct {
	Bands          domain.Bands       `json:"bands"`
	Allowed        []domain.Tier      `json:"allowed"`
	DomainScores   map[string]float64 `json:"domain_scores"`
	RiskyBehaviors bool               `json:"risky_behaviors"`
}

// Suggestion is an advisor's optional opinion. Tier is carried as a raw
// string: the adjudicator parses it, so an out-of-enum tier is rejected the
// same way a gated-out tier is.
type Suggestion struct {
	Tier       string  `json:"tier"`
	Confidence float64 `json:"confidence"`
}

// Advisor is the port contract. A nil suggestion with a nil error means the
// advisor has no opinion. Implementations must honor ctx cancellation; the
// caller invokes Advise under an explicit timeout and treats timeout or
// error exactly like "no suggestion".
type Advisor interface {
	Advise(ctx context.Context, actx Context) (*Suggestion, error)
}
