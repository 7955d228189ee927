package flags

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careplanhq/careplan/internal/domain"
)

func TestDefaultSchemaResolveOrdersByPriority(t *testing.T) {
	s := DefaultSchema()

	resolved := s.Resolve([]string{"isolation_risk", "fall_risk", "wandering_risk"})
	require.Len(t, resolved, 3)
	assert.Equal(t, "wandering_risk", resolved[0].ID, "Critical wandering risk sorts first")
	assert.Equal(t, "fall_risk", resolved[1].ID)
	assert.Equal(t, "isolation_risk", resolved[2].ID)
	assert.Equal(t, domain.ToneCritical, resolved[0].Tone)
}

func TestResolveUnknownIDSurfaces(t *testing.T) {
	s := DefaultSchema()

	resolved := s.Resolve([]string{"fall_risk", "mystery_flag"})
	require.Len(t, resolved, 2)
	assert.Equal(t, "fall_risk", resolved[0].ID)
	assert.Equal(t, "mystery_flag", resolved[1].ID, "Unknown ids sort last")
	assert.Equal(t, domain.ToneInfo, resolved[1].Tone)
	assert.Equal(t, "mystery_flag", resolved[1].Label)
}

func TestOrderIDsDeterministic(t *testing.T) {
	s := DefaultSchema()

	a := s.OrderIDs([]string{"medication_management", "mobility_limited", "fall_risk"})
	b := s.OrderIDs([]string{"fall_risk", "medication_management", "mobility_limited"})

	assert.Equal(t, a, b, "Order must not depend on input order")
	assert.Equal(t, []string{"fall_risk", "mobility_limited", "medication_management"}, a)
}

func TestNextActions(t *testing.T) {
	s := DefaultSchema()

	actions := s.NextActions([]string{"isolation_risk", "fall_risk", "wandering_risk", "mobility_limited"})
	assert.Equal(t, []string{
		"Tour secured memory care communities",
		"Schedule a home safety evaluation",
		"Connect with local senior companion programs",
	}, actions, "Priority order; flags without a follow-up contribute nothing")
}

func TestNextActionsRequirementGates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flags.yaml")
	doc := `
med_review:
  label: Medication review
  priority: 10
  next_action:
    action: Book a pharmacist consult
    requires: "flag:fall_risk"
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	s, err := LoadSchema(path)
	require.NoError(t, err)

	assert.Empty(t, s.NextActions([]string{"med_review"}),
		"Requirement not met by the active set")
	assert.Equal(t, []string{"Book a pharmacist consult"},
		s.NextActions([]string{"med_review", "fall_risk"}))
}

func TestLoadSchema(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flags.yaml")
	doc := `
fall_risk:
  label: Fall risk
  tone: warning
  priority: 10
  next_action:
    action: Schedule a home safety evaluation
    requires: "flag:fall_risk|mobility_limited"
cognitive_risk:
  label: Cognitive decline
  tone: warning
  priority: 15
  next_action:
    action: Refer for neuropsychological testing
    requires: "gcp:complete"
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	s, err := LoadSchema(path)
	require.NoError(t, err)

	e, ok := s.Lookup("fall_risk")
	require.True(t, ok)
	assert.Equal(t, "Fall risk", e.Label)
	require.NotNil(t, e.NextAction)
	assert.Equal(t, AnyFlag{IDs: []string{"fall_risk", "mobility_limited"}}, e.NextAction.Requires)

	e, ok = s.Lookup("cognitive_risk")
	require.True(t, ok)
	assert.Equal(t, ProductComplete{Product: "gcp"}, e.NextAction.Requires)
}

func TestLoadSchemaRejectsBadRequirement(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flags.yaml")
	doc := `
fall_risk:
  label: Fall risk
  next_action:
    action: Something
    requires: "gcp:progress>=nope"
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	_, err := LoadSchema(path)
	assert.Error(t, err, "Malformed requirement must fail at load, not at runtime")
}
