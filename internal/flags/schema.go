// Package flags holds the static flag schema: the id-keyed table of labels,
// tones, priorities and suggested next actions attached to care plans. The
// engine only looks ids up; it does not own or validate the schema's
// completeness.
package flags

import (
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/careplanhq/careplan/internal/domain"
)

// NextAction is a schema-suggested follow-up, shown only when its
// requirement is satisfied.
type NextAction struct {
	Action   string      `yaml:"action"`
	Requires Requirement `yaml:"-"`
}

// Entry is one flag schema row.
type Entry struct {
	ID          string          `yaml:"id"`
	Label       string          `yaml:"label"`
	Description string          `yaml:"description"`
	Tone        domain.FlagTone `yaml:"tone"`
	Priority    int             `yaml:"priority"`
	NextAction  *NextAction     `yaml:"next_action,omitempty"`
}

type rawEntry struct {
	Label       string          `yaml:"label"`
	Description string          `yaml:"description"`
	Tone        domain.FlagTone `yaml:"tone"`
	Priority    int             `yaml:"priority"`
	NextAction  *struct {
		Action   string `yaml:"action"`
		Requires string `yaml:"requires"`
	} `yaml:"next_action"`
}

// Schema is the loaded flag table.
type Schema struct {
	entries map[string]Entry
}

// LoadSchema reads a yaml flag schema. Requirement expressions are parsed
// here, once; a malformed expression is a load error, never a runtime one.
func LoadSchema(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "flags: read schema %s", path)
	}

	var raw map[string]rawEntry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, eris.Wrap(err, "flags: parse schema")
	}

	s := &Schema{entries: make(map[string]Entry, len(raw))}
	for id, re := range raw {
		entry := Entry{
			ID:          id,
			Label:       re.Label,
			Description: re.Description,
			Tone:        re.Tone,
			Priority:    re.Priority,
		}
		if re.NextAction != nil {
			req, err := ParseRequirement(re.NextAction.Requires)
			if err != nil {
				return nil, eris.Wrapf(err, "flags: schema entry %s", id)
			}
			entry.NextAction = &NextAction{Action: re.NextAction.Action, Requires: req}
		}
		s.entries[id] = entry
	}
	return s, nil
}

// DefaultSchema returns the built-in flag table used when no schema file is
// configured.
func DefaultSchema() *Schema {
	s := &Schema{entries: make(map[string]Entry)}
	for _, e := range []Entry{
		{ID: "fall_risk", Label: "Fall risk", Tone: domain.ToneWarning, Priority: 10,
			Description: "Two or more falls in the last year.",
			NextAction:  &NextAction{Action: "Schedule a home safety evaluation"}},
		{ID: "mobility_limited", Label: "Limited mobility", Tone: domain.ToneInfo, Priority: 20,
			Description: "Uses a walker, wheelchair, or is bedbound."},
		{ID: "medication_management", Label: "Medication management", Tone: domain.ToneInfo, Priority: 30,
			Description: "Eight or more daily medications.",
			NextAction:  &NextAction{Action: "Request a medication review with the prescribing physician"}},
		{ID: "cognitive_risk", Label: "Cognitive decline", Tone: domain.ToneWarning, Priority: 15,
			Description: "Moderate or severe memory changes.",
			NextAction: &NextAction{
				Action:   "Request a neuropsychological evaluation referral",
				Requires: AnyFlag{IDs: []string{"cognitive_risk", "wandering_risk"}},
			}},
		{ID: "wandering_risk", Label: "Wandering / elopement risk", Tone: domain.ToneCritical, Priority: 5,
			Description: "Behavioral safety risk requiring a secured setting.",
			NextAction:  &NextAction{Action: "Tour secured memory care communities"}},
		{ID: "isolation_risk", Label: "Social isolation", Tone: domain.ToneInfo, Priority: 40,
			Description: "Lives alone without an available caregiver.",
			NextAction:  &NextAction{Action: "Connect with local senior companion programs"}},
	} {
		s.entries[e.ID] = e
	}
	return s
}

// Lookup returns the entry for a flag id.
func (s *Schema) Lookup(id string) (Entry, bool) {
	e, ok := s.entries[id]
	return e, ok
}

// Resolve maps active flag ids to domain flags. Ids missing from the schema
// still surface, with an info tone, since the schema does not gate the
// engine's safety decisions.
func (s *Schema) Resolve(ids []string) []domain.Flag {
	out := make([]domain.Flag, 0, len(ids))
	for _, id := range ids {
		if e, ok := s.entries[id]; ok {
			out = append(out, domain.Flag{
				ID:          e.ID,
				Label:       e.Label,
				Tone:        e.Tone,
				Description: e.Description,
			})
			continue
		}
		out = append(out, domain.Flag{ID: id, Label: id, Tone: domain.ToneInfo})
	}
	sort.Slice(out, func(i, j int) bool {
		return s.priorityOf(out[i].ID) < s.priorityOf(out[j].ID)
	})
	return out
}

// OrderIDs sorts flag ids by schema priority then id: the fixed,
// deterministic order the cost modifier chain applies adjustments in.
func (s *Schema) OrderIDs(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	sort.Slice(out, func(i, j int) bool {
		pi, pj := s.priorityOf(out[i]), s.priorityOf(out[j])
		if pi != pj {
			return pi < pj
		}
		return out[i] < out[j]
	})
	return out
}

// NextActions returns the suggested follow-ups for the active flag ids, in
// priority order, keeping only those whose requirement the active set
// satisfies.
func (s *Schema) NextActions(ids []string) []string {
	state := EvalState{ActiveFlags: make(map[string]bool, len(ids))}
	for _, id := range ids {
		state.ActiveFlags[id] = true
	}

	var out []string
	for _, id := range s.OrderIDs(ids) {
		e, ok := s.entries[id]
		if !ok || e.NextAction == nil {
			continue
		}
		if Satisfied(e.NextAction.Requires, state) {
			out = append(out, e.NextAction.Action)
		}
	}
	return out
}

func (s *Schema) priorityOf(id string) int {
	if e, ok := s.entries[id]; ok {
		return e.Priority
	}
	return 1 << 30
}
