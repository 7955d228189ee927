package output

import (
	json "github.com/goccy/go-json"
	"github.com/rotisserie/eris"
)

// JSONFormatter emits the full report as indented JSON.
type JSONFormatter struct{}

// Name implements Formatter.
func (JSONFormatter) Name() string { return "json" }

// Format implements Formatter.
func (JSONFormatter) Format(r *Report) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, eris.Wrap(err, "output: marshal report")
	}
	return data, nil
}
