package flags

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// Requirement is the closed variant type gating a flag's suggested next
// action. Expressions are parsed once at schema-load time and evaluated by
// exhaustive type switch; no stringly-typed rules survive past loading.
//
// Grammar: "<product>:complete", "<product>:progress>=<fraction>", or
// "flag:<id>|<id>|...". An empty expression means always satisfied.
type Requirement interface {
	isRequirement()
}

// ProductComplete requires a named product (assessment workflow) to be
// complete.
type ProductComplete struct {
	Product string
}

// ProgressAtLeast requires a minimum completion fraction of a product.
type ProgressAtLeast struct {
	Product string
	Min     float64
}

// AnyFlag requires at least one of the listed flag ids to be active.
type AnyFlag struct {
	IDs []string
}

func (ProductComplete) isRequirement() {}
func (ProgressAtLeast) isRequirement() {}
func (AnyFlag) isRequirement()         {}

// ParseRequirement parses a requirement expression. Empty input yields a nil
// Requirement, which every state satisfies.
func ParseRequirement(expr string) (Requirement, error) {
	if expr == "" {
		return nil, nil
	}

	head, rest, found := strings.Cut(expr, ":")
	if !found {
		return nil, eris.Errorf("flags: malformed requirement %q", expr)
	}

	if head == "flag" {
		ids := strings.Split(rest, "|")
		for _, id := range ids {
			if id == "" {
				return nil, eris.Errorf("flags: empty flag id in requirement %q", expr)
			}
		}
		return AnyFlag{IDs: ids}, nil
	}

	if rest == "complete" {
		return ProductComplete{Product: head}, nil
	}

	if frac, ok := strings.CutPrefix(rest, "progress>="); ok {
		f, err := strconv.ParseFloat(frac, 64)
		if err != nil || f < 0 || f > 1 {
			return nil, eris.Errorf("flags: bad progress fraction in requirement %q", expr)
		}
		return ProgressAtLeast{Product: head, Min: f}, nil
	}

	return nil, eris.Errorf("flags: unknown requirement form %q", expr)
}

// EvalState is the caller-owned state requirements evaluate against.
type EvalState struct {
	Completed   map[string]bool
	Progress    map[string]float64
	ActiveFlags map[string]bool
}

// Satisfied evaluates a requirement against state. A nil requirement is
// always satisfied.
func Satisfied(req Requirement, state EvalState) bool {
	switch r := req.(type) {
	case nil:
		return true
	case ProductComplete:
		return state.Completed[r.Product]
	case ProgressAtLeast:
		return state.Progress[r.Product] >= r.Min
	case AnyFlag:
		for _, id := range r.IDs {
			if state.ActiveFlags[id] {
				return true
			}
		}
		return false
	default:
		return false
	}
}
