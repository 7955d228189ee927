package flags

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequirement(t *testing.T) {
	t.Run("empty means always satisfied", func(t *testing.T) {
		req, err := ParseRequirement("")
		require.NoError(t, err)
		assert.Nil(t, req)
		assert.True(t, Satisfied(req, EvalState{}))
	})

	t.Run("product complete", func(t *testing.T) {
		req, err := ParseRequirement("gcp:complete")
		require.NoError(t, err)
		assert.Equal(t, ProductComplete{Product: "gcp"}, req)
	})

	t.Run("progress threshold", func(t *testing.T) {
		req, err := ParseRequirement("gcp:progress>=0.5")
		require.NoError(t, err)
		assert.Equal(t, ProgressAtLeast{Product: "gcp", Min: 0.5}, req)
	})

	t.Run("any flag", func(t *testing.T) {
		req, err := ParseRequirement("flag:fall_risk|cognitive_risk")
		require.NoError(t, err)
		assert.Equal(t, AnyFlag{IDs: []string{"fall_risk", "cognitive_risk"}}, req)
	})

	t.Run("malformed expressions fail at parse time", func(t *testing.T) {
		for _, expr := range []string{
			"no-colon",
			"gcp:finished",
			"gcp:progress>=1.5",
			"gcp:progress>=abc",
			"flag:a||b",
		} {
			_, err := ParseRequirement(expr)
			assert.Error(t, err, "expression %q should not parse", expr)
		}
	})
}

func TestSatisfied(t *testing.T) {
	state := EvalState{
		Completed:   map[string]bool{"gcp": true},
		Progress:    map[string]float64{"gcp": 0.7, "cost": 0.2},
		ActiveFlags: map[string]bool{"fall_risk": true},
	}

	tests := []struct {
		name string
		expr string
		want bool
	}{
		{"completed product", "gcp:complete", true},
		{"incomplete product", "cost:complete", false},
		{"progress met", "gcp:progress>=0.5", true},
		{"progress not met", "cost:progress>=0.5", false},
		{"active flag matches", "flag:fall_risk|wandering_risk", true},
		{"no active flag matches", "flag:wandering_risk|isolation_risk", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ParseRequirement(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Satisfied(req, state))
		})
	}
}
