package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/evtax/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing regimes
func (tf *TableFormatter) Format(set *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("REGIME COMPARISON, FISCAL YEAR %d\n", set.FiscalYear))
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Target: %s of %s per month\n\n",
		set.Request.Mode.DisplayName(), output.FormatAmount(set.Request.Amount, set.Currency)))

	nameWidth := 12
	numWidth := 16

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Regime",
		numWidth, "Revenue",
		numWidth, "Total Tax",
		numWidth, "Net",
		numWidth, "Eff. Rate"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for _, r := range set.Results {
		name := r.Regime.DisplayName()
		if r.Regime == set.Recommended {
			name += " *"
		}
		if r.Result == nil {
			sb.WriteString(fmt.Sprintf("%-*s %s\n", nameWidth, name, r.Skipped))
			continue
		}
		res := r.Result
		sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
			nameWidth, name,
			numWidth, output.FormatAmount(res.Breakdown.Revenue, ""),
			numWidth, output.FormatAmount(res.TotalTax, ""),
			numWidth, output.FormatAmount(res.Net, ""),
			numWidth, output.FormatPercentage(res.EffectiveRate)))
	}
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if set.Recommended != "" {
		sb.WriteString("\nCOMPARISON TO RECOMMENDED\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, r := range set.Evaluated() {
			if r.Regime == set.Recommended {
				continue
			}
			sb.WriteString(fmt.Sprintf("%s:\n", r.Regime.DisplayName()))
			sb.WriteString(fmt.Sprintf("  Net income:  %s%s per month\n", tf.deltaSymbol(r.NetDiffFromBest), output.FormatAmount(r.NetDiffFromBest.Abs(), set.Currency)))
			sb.WriteString(fmt.Sprintf("  Revenue:     %s%s per month\n", tf.deltaSymbol(r.RevenueDiffFromBest), output.FormatAmount(r.RevenueDiffFromBest.Abs(), set.Currency)))
		}
	}

	if len(set.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for i, rec := range set.Recommendations {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, rec))
		}
	}

	return sb.String()
}

func (tf *TableFormatter) deltaSymbol(value decimal.Decimal) string {
	if value.IsNegative() {
		return "-"
	}
	return "+"
}
