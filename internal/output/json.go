package output

import (
	"encoding/json"

	"github.com/rgehrsitz/evtax/internal/solver"
)

// JSONFormatter formats solve results as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

func (JSONFormatter) Name() string { return "json" }

// Format generates JSON output for a solve result
func (jf JSONFormatter) Format(res *solver.Result) ([]byte, error) {
	return marshal(res, jf.Pretty)
}

func marshal(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
