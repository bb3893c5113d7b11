package output

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/evtax/internal/domain"
	"github.com/shopspring/decimal"
)

// RatesSheet summarises a parameter table for the user
type RatesSheet struct {
	Table *domain.ParameterTable
}

// Format renders the rates sheet as console text
func (rs RatesSheet) Format() string {
	var sb strings.Builder
	t := rs.Table
	cur := t.Currency
	c := t.Standard.Contributions

	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("TAX RATES AND LIMITS, FISCAL YEAR %d\n", t.FiscalYear))
	sb.WriteString(strings.Repeat("=", 80) + "\n\n")

	sb.WriteString("CONTRIBUTIONS (standard and flat-rate)\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("  Income tax:            %s\n", FormatPercentage(c.IncomeTaxRate)))
	sb.WriteString(fmt.Sprintf("  Social contribution:   %s\n", FormatPercentage(c.SocialContributionRate)))
	sb.WriteString(fmt.Sprintf("  Health contribution:   %s\n", FormatPercentage(c.HealthContributionRate)))
	sb.WriteString(fmt.Sprintf("  Social + health:       %s\n", FormatPercentage(c.ContributionRate())))
	sb.WriteString(fmt.Sprintf("  Combined marginal:     %s\n\n", FormatPercentage(c.TotalMarginalRate())))

	for _, choice := range []domain.WageFloorChoice{domain.WageFloorOrdinary, domain.WageFloorQualified} {
		floor := c.FloorBase(choice)
		social, health := c.MinimumContributions(floor)
		sb.WriteString(fmt.Sprintf("  %-10s floor %s: minimum social %s, health %s per month\n",
			choice, FormatAmount(floor, cur), FormatAmount(social, cur), FormatAmount(health, cur)))
	}
	sb.WriteString("\n")

	fr := t.FlatRate
	sb.WriteString("FLAT-RATE\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("  Income-tax exemption:  %s per year (%s per month)\n",
		FormatAmount(fr.AnnualExemption, cur), FormatAmount(fr.MonthlyExemption(), cur)))
	sb.WriteString(fmt.Sprintf("  Turnover limit:        %s per year\n", FormatAmount(fr.AnnualTurnoverLimit, cur)))
	ratios := make([]string, 0, len(fr.ExpenseRatioOptions))
	for _, r := range fr.ExpenseRatioOptions {
		ratios = append(ratios, r.String()+"%")
	}
	sb.WriteString(fmt.Sprintf("  Expense ratios:        %s\n\n", strings.Join(ratios, ", ")))

	ft := t.FixedTax
	sb.WriteString("FIXED TAX\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("  Monthly amount:        %s\n", FormatAmount(ft.MonthlyAmount, cur)))
	sb.WriteString(fmt.Sprintf("  Turnover limit:        %s per year\n", FormatAmount(ft.AnnualTurnoverLimit, cur)))
	sb.WriteString(fmt.Sprintf("  Surcharge above limit: %s\n\n", FormatPercentage(ft.SurchargeRate)))

	lt := t.LocalTax
	sb.WriteString("LOCAL BUSINESS TAX\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("  Rate:                  %s\n", FormatPercentage(lt.Rate)))
	lower := decimal.Zero
	for _, tier := range lt.Tiers {
		sb.WriteString(fmt.Sprintf("  Revenue %s to %s: base %s, tax %s per year\n",
			FormatAmount(lower, ""), FormatAmount(tier.AnnualRevenueCeiling, cur),
			FormatAmount(tier.FixedAnnualBase, cur), FormatAmount(tier.FixedAnnualBase.Mul(lt.Rate), cur)))
		lower = tier.AnnualRevenueCeiling
	}
	sb.WriteString(fmt.Sprintf("  Revenue above %s: base is annual profit\n\n", FormatAmount(lower, cur)))

	sb.WriteString(fmt.Sprintf("VAT exemption limit:     %s per year\n", FormatAmount(t.VATExemptionLimit, cur)))
	return sb.String()
}
