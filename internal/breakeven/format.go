package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/evtax/internal/domain"
	"github.com/rgehrsitz/evtax/internal/output"
)

// TableFormatter formats break-even results as console text
type TableFormatter struct{}

// Format generates a formatted report of the crossovers
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder
	req := result.Request
	cur := result.Currency

	sb.WriteString(fmt.Sprintf("BREAK-EVEN REVENUE, FISCAL YEAR %d\n", result.FiscalYear))
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Regimes:        %s vs %s\n", req.A.DisplayName(), req.B.DisplayName()))
	sb.WriteString(fmt.Sprintf("Revenue range:  %s to %s per month\n",
		output.FormatAmount(req.MinRevenue, cur), output.FormatAmount(req.MaxRevenue, cur)))
	sb.WriteString(fmt.Sprintf("Evaluations:    %d\n\n", result.Evaluations))

	if len(result.Crossovers) == 0 {
		sb.WriteString(fmt.Sprintf("No break-even point in range: %s leaves more net income throughout.\n",
			tf.regimeName(result.BetterAtMin)))
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("%-18s %16s %16s  %-22s %s\n", "Revenue/month", req.A.DisplayName(), req.B.DisplayName(), "Better above", "Status"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	for _, c := range result.Crossovers {
		sb.WriteString(fmt.Sprintf("%-18s %16s %16s  %-22s %s\n",
			output.FormatAmount(c.Revenue, ""),
			output.FormatAmount(c.NetA, ""),
			output.FormatAmount(c.NetB, ""),
			tf.regimeName(c.BetterAbove),
			tf.formatStatus(c)))
	}

	sb.WriteString(fmt.Sprintf("\nBelow %s per month %s leaves more net income.\n",
		output.FormatAmount(result.Crossovers[0].Revenue, cur), tf.regimeName(result.BetterAtMin)))
	return sb.String()
}

func (tf *TableFormatter) regimeName(r domain.Regime) string {
	if r == "" {
		return "neither"
	}
	return r.DisplayName()
}

func (tf *TableFormatter) formatStatus(c Crossover) string {
	switch {
	case c.Discontinuous:
		return "step"
	case c.Converged:
		return "converged"
	default:
		return "approximate"
	}
}

// JSONFormatter formats break-even results as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

// Format generates JSON output for break-even results
func (jf *JSONFormatter) Format(result *Result) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return string(data) + "\n", nil
}
