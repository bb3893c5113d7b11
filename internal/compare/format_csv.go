package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(set *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Regime",
		"Recommended",
		"Eligible",
		"Revenue",
		"Profit",
		"Total Tax",
		"Local Tax",
		"Net",
		"Effective Rate",
		"Net Diff from Best",
		"Revenue Diff from Best",
		"Skipped",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for _, r := range set.Results {
		if err := writer.Write(cf.formatRow(r, set)); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a regime result as a CSV row
func (cf *CSVFormatter) formatRow(r RegimeResult, set *ComparisonSet) []string {
	row := []string{
		string(r.Regime),
		strconv.FormatBool(r.Regime == set.Recommended),
		strconv.FormatBool(r.Eligible),
	}
	if r.Result == nil {
		return append(row, "", "", "", "", "", "", "", "", r.Skipped)
	}
	res := r.Result
	return append(row,
		res.Breakdown.Revenue.StringFixed(2),
		res.Breakdown.Profit.StringFixed(2),
		res.TotalTax.StringFixed(2),
		res.LocalTax.Monthly.StringFixed(2),
		res.Net.StringFixed(2),
		res.EffectiveRate.StringFixed(4),
		r.NetDiffFromBest.StringFixed(2),
		r.RevenueDiffFromBest.StringFixed(2),
		"",
	)
}
