package output

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/evtax/internal/domain"
)

// RegimesSheet describes each regime in plain terms using the figures of a
// parameter table
type RegimesSheet struct {
	Table *domain.ParameterTable
}

// Format renders the regime overview as console text
func (rs RegimesSheet) Format() string {
	var sb strings.Builder
	t := rs.Table
	cur := t.Currency
	c := t.Standard.Contributions

	taxes := fmt.Sprintf("income tax %s + social %s + health %s",
		FormatPercentage(c.IncomeTaxRate), FormatPercentage(c.SocialContributionRate), FormatPercentage(c.HealthContributionRate))

	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("TAX REGIMES, FISCAL YEAR %d\n", t.FiscalYear))
	sb.WriteString(strings.Repeat("=", 80) + "\n\n")

	ft := t.FixedTax
	sb.WriteString(strings.ToUpper(domain.RegimeFixedTax.DisplayName()) + "\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("  Tax:                   %s per month, regardless of profit\n", FormatAmount(ft.MonthlyAmount, cur)))
	sb.WriteString(fmt.Sprintf("  Turnover limit:        %s per year\n", FormatAmount(ft.AnnualTurnoverLimit, cur)))
	sb.WriteString(fmt.Sprintf("  Above the limit:       %s of the excess\n", FormatPercentage(ft.SurchargeRate)))
	sb.WriteString("  No income tax or contributions, exempt from VAT\n")
	sb.WriteString("  Suited to private clients; a single corporate client is not allowed\n\n")

	fr := t.FlatRate
	ratios := make([]string, 0, len(fr.ExpenseRatioOptions))
	for _, r := range fr.ExpenseRatioOptions {
		ratios = append(ratios, r.String()+"%")
	}
	sb.WriteString(strings.ToUpper(domain.RegimeFlatRate.DisplayName()) + "\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("  Taxes:                 %s\n", taxes))
	sb.WriteString(fmt.Sprintf("  Expense ratio:         %s of revenue, no receipts needed\n", strings.Join(ratios, ", ")))
	sb.WriteString(fmt.Sprintf("  Income-tax exemption:  first %s per year\n", FormatAmount(fr.AnnualExemption, cur)))
	sb.WriteString(fmt.Sprintf("  Turnover limit:        %s per year, above it the standard regime applies\n\n",
		FormatAmount(fr.AnnualTurnoverLimit, cur)))

	sb.WriteString(strings.ToUpper(domain.RegimeStandard.DisplayName()) + "\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("  Taxes:                 %s\n", taxes))
	sb.WriteString("  Expenses:              actual, backed by documents\n")
	sb.WriteString("  No turnover limit and no income-tax exemption\n\n")

	sb.WriteString(fmt.Sprintf("All regimes also pay local business tax at %s.\n", FormatPercentage(t.LocalTax.Rate)))
	return sb.String()
}

// VATSheet lists VAT bands and the small-business exemption threshold
type VATSheet struct {
	Table *domain.ParameterTable
}

// Format renders the VAT reference as console text
func (vs VATSheet) Format() string {
	var sb strings.Builder
	t := vs.Table

	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("VAT, FISCAL YEAR %d\n", t.FiscalYear))
	sb.WriteString(strings.Repeat("=", 80) + "\n\n")

	if len(t.VATRates) > 0 {
		sb.WriteString("RATES\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, v := range t.VATRates {
			sb.WriteString(fmt.Sprintf("  %8s  %s\n", FormatPercentage(v.Rate), v.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Exemption threshold:     %s per year\n", FormatAmount(t.VATExemptionLimit, t.Currency)))
	sb.WriteString("At or below the threshold VAT may be left off invoices; above it registration is mandatory.\n")
	sb.WriteString(fmt.Sprintf("%s taxpayers are exempt from VAT.\n", domain.RegimeFixedTax.DisplayName()))
	return sb.String()
}
