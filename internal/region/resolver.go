// Package region resolves cost multipliers by geographic specificity
// precedence: exact zip, then zip3 prefix, then state, then the configured
// national default. First match wins; levels never blend.
package region

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/careplanhq/careplan/internal/domain"
)

// Entry is one row of a multiplier table.
type Entry struct {
	Multiplier decimal.Decimal `yaml:"multiplier"`
	Name       string          `yaml:"name"`
}

// Table is the externally loaded regional cost configuration.
type Table struct {
	Zip     map[string]Entry `yaml:"zip_multipliers"`
	Zip3    map[string]Entry `yaml:"zip3_multipliers"`
	State   map[string]Entry `yaml:"state_multipliers"`
	Default decimal.Decimal  `yaml:"default_multiplier"`
}

// LoadTable reads a yaml regional table. Callers degrade to DefaultTable on
// error; resolution itself never fails.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "region: read table %s", path)
	}
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, eris.Wrap(err, "region: parse table")
	}
	return &t, nil
}

// DefaultTable returns an empty table with a 1.0 national default.
func DefaultTable() *Table {
	return &Table{Default: decimal.NewFromInt(1)}
}

// Resolver answers multiplier queries against one table. Results are
// resolved fresh per query; a cache layer may wrap the resolver but is not
// part of its contract.
type Resolver struct {
	table *Table
}

// NewResolver builds a resolver. A nil table resolves everything to the
// national default of 1.0.
func NewResolver(table *Table) *Resolver {
	if table == nil {
		table = DefaultTable()
	}
	return &Resolver{table: table}
}

// Resolve returns the most specific multiplier for the given zip and state.
// Missing or malformed inputs skip their precedence level rather than
// erroring.
func (r *Resolver) Resolve(zip, state string) domain.RegionalMultiplier {
	if z := normalizeZip(zip); z != "" {
		if e, ok := r.table.Zip[z]; ok {
			return multiplier(e, domain.PrecisionZip)
		}
		if e, ok := r.table.Zip3[z[:3]]; ok {
			return multiplier(e, domain.PrecisionZip3)
		}
	}

	if s := normalizeState(state); s != "" {
		if e, ok := r.table.State[s]; ok {
			return multiplier(e, domain.PrecisionState)
		}
	}

	def := r.table.Default
	if def.IsZero() {
		def = decimal.NewFromInt(1)
	}
	zap.L().Debug("region: no regional match, using national default",
		zap.String("zip", zip),
		zap.String("state", state),
	)
	return domain.RegionalMultiplier{
		Multiplier: def,
		RegionName: "national",
		Precision:  domain.PrecisionNational,
	}
}

func multiplier(e Entry, p domain.RegionalPrecision) domain.RegionalMultiplier {
	return domain.RegionalMultiplier{
		Multiplier: e.Multiplier,
		RegionName: e.Name,
		Precision:  p,
	}
}

func normalizeZip(zip string) string {
	zip = strings.TrimSpace(zip)
	if len(zip) != 5 {
		return ""
	}
	for _, c := range zip {
		if c < '0' || c > '9' {
			return ""
		}
	}
	return zip
}

func normalizeState(state string) string {
	state = strings.ToUpper(strings.TrimSpace(state))
	if len(state) != 2 {
		return ""
	}
	for _, c := range state {
		if c < 'A' || c > 'Z' {
			return ""
		}
	}
	return state
}
