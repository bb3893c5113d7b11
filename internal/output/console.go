package output

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/evtax/internal/domain"
	"github.com/rgehrsitz/evtax/internal/solver"
	"github.com/shopspring/decimal"
)

// ConsoleFormatter prints a monthly and annual breakdown for a terminal
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(res *solver.Result) ([]byte, error) {
	var sb strings.Builder
	b := res.Breakdown
	req := res.Request
	cur := res.Currency

	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("TAX CALCULATION: %s regime, fiscal year %d\n", strings.ToUpper(b.Regime.DisplayName()), res.FiscalYear))
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Input:          %s of %s per month\n", req.Mode.DisplayName(), FormatAmount(req.Amount, cur)))
	if b.Regime != domain.RegimeFixedTax {
		sb.WriteString(fmt.Sprintf("Expense ratio:  %s%%\n", req.ExpenseRatioPercent.String()))
		sb.WriteString(fmt.Sprintf("Wage floor:     %s\n", req.EffectiveWageFloor()))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("%-30s %20s %20s\n", "", "Monthly", "Annual"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	row := func(label string, monthly, annual decimal.Decimal) {
		sb.WriteString(fmt.Sprintf("%-30s %20s %20s\n", label, FormatAmount(monthly, cur), FormatAmount(annual, cur)))
	}
	a := b.Annual()

	row("Revenue", b.Revenue, a.Revenue)
	if b.Regime != domain.RegimeFixedTax {
		row("Expenses", b.Expenses, a.Expenses)
		row("Profit", b.Profit, a.Profit)
		sb.WriteString("\n")
		row("Income tax", b.IncomeTax, a.IncomeTax)
		row("Social contribution", b.SocialContribution, a.SocialContribution)
		row("Health contribution", b.HealthContribution, a.HealthContribution)
	} else {
		sb.WriteString("\n")
		row("Fixed tax", b.FixedAmount, a.FixedAmount)
		row("Surcharge", b.Surcharge, a.Surcharge)
	}
	row("Local business tax", res.LocalTax.Monthly, res.LocalTax.Annual)
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	row("Total tax", res.TotalTax, res.AnnualTotalTax())
	row("Net income", res.Net, res.AnnualNet())
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	sb.WriteString(fmt.Sprintf("Effective tax rate: %s\n", FormatPercentage(res.EffectiveRate)))
	if res.LocalTax.Tiered {
		sb.WriteString(fmt.Sprintf("Local tax base:     %s (turnover tier)\n", FormatAmount(res.LocalTax.Base, cur)))
	} else {
		sb.WriteString(fmt.Sprintf("Local tax base:     %s (annual profit)\n", FormatAmount(res.LocalTax.Base, cur)))
	}
	if b.Regime == domain.RegimeFlatRate {
		sb.WriteString(fmt.Sprintf("Exemption used:     %s of %s per month\n",
			FormatAmount(b.ExemptionApplied, cur), FormatAmount(b.MonthlyExemption, cur)))
	}
	if req.Mode != domain.ModeRevenue {
		state := "converged"
		if !res.Converged {
			state = "not converged"
		}
		sb.WriteString(fmt.Sprintf("Solution:           %s branch, %d local tax passes, %s\n", res.Case, res.Iterations, state))
	}

	if len(res.Warnings) > 0 {
		sb.WriteString("\nWARNINGS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, w := range res.Warnings {
			sb.WriteString("  ! " + w.Message + "\n")
		}
	}

	return []byte(sb.String()), nil
}
