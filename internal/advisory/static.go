package advisory

import (
	"context"
	"time"
)

// Static is a deterministic Advisor for tests and offline CLI runs. It
// returns a fixed suggestion (or error) after an optional delay, so timeout
// behavior can be exercised without a real transport.
type Static struct {
	Suggestion *Suggestion
	Err        error
	Delay      time.Duration
}

// Advise implements Advisor.
func (s *Static) Advise(ctx context.Context, _ Context) (*Suggestion, error) {
	if s.Delay > 0 {
		select {
		case <-time.After(s.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Suggestion, nil
}
