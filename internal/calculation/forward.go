package calculation

import (
	"github.com/rgehrsitz/evtax/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	one    = decimal.NewFromInt(1)
	twelve = decimal.NewFromInt(12)
)

// ComputeForward computes the monthly tax breakdown for a known profit.
//
// expenseRatio is a fraction in [0,1) and floorBase the monthly wage floor;
// both are ignored for the fixed-tax regime, where profit is taken to be
// revenue. The function is pure and never fails: a negative profit only
// clamps the income-tax base while contributions stay at their floors.
func ComputeForward(params domain.RegimeParameters, profit, expenseRatio, floorBase decimal.Decimal) domain.TaxBreakdown {
	switch p := params.(type) {
	case domain.StandardParams:
		return computeContributionRegime(domain.RegimeStandard, p.Contributions, decimal.Zero, decimal.Zero, profit, expenseRatio, floorBase)
	case domain.FlatRateParams:
		return computeContributionRegime(domain.RegimeFlatRate, p.Contributions, p.MonthlyExemption(), p.AnnualTurnoverLimit, profit, expenseRatio, floorBase)
	case domain.FixedTaxParams:
		return computeFixedTax(p, profit)
	}
	return domain.TaxBreakdown{}
}

func computeContributionRegime(
	regime domain.Regime,
	c domain.Contributions,
	exemption, annualLimit decimal.Decimal,
	profit, expenseRatio, floorBase decimal.Decimal,
) domain.TaxBreakdown {
	taxable := decimal.Max(profit.Sub(exemption), decimal.Zero)
	incomeTax := taxable.Mul(c.IncomeTaxRate)

	minSocial, minHealth := c.MinimumContributions(floorBase)
	social := decimal.Max(profit.Mul(c.SocialContributionRate), minSocial)
	health := decimal.Max(profit.Mul(c.HealthContributionRate), minHealth)

	total := incomeTax.Add(social).Add(health)

	revenue := RevenueFromProfit(profit, expenseRatio)

	applied := decimal.Min(decimal.Max(profit, decimal.Zero), exemption)

	b := domain.TaxBreakdown{
		Regime:             regime,
		Revenue:            revenue,
		Expenses:           revenue.Sub(profit),
		Profit:             profit,
		IncomeTax:          incomeTax,
		SocialContribution: social,
		HealthContribution: health,
		TotalTax:           total,
		Net:                profit.Sub(total),
		MonthlyExemption:   exemption,
		ExemptionApplied:   applied,
		FloorApplied:       profit.LessThan(floorBase),
	}
	if annualLimit.IsPositive() {
		b.LimitExceeded = revenue.Mul(twelve).GreaterThan(annualLimit)
	}
	return b
}

func computeFixedTax(p domain.FixedTaxParams, revenue decimal.Decimal) domain.TaxBreakdown {
	surcharge := FixedTaxSurcharge(p, revenue)
	total := p.MonthlyAmount.Add(surcharge)

	return domain.TaxBreakdown{
		Regime:        domain.RegimeFixedTax,
		Revenue:       revenue,
		Expenses:      decimal.Zero,
		Profit:        revenue,
		FixedAmount:   p.MonthlyAmount,
		Surcharge:     surcharge,
		TotalTax:      total,
		Net:           revenue.Sub(total),
		LimitExceeded: revenue.Mul(twelve).GreaterThan(p.AnnualTurnoverLimit),
	}
}

// FixedTaxSurcharge is the monthly share of the surcharge on annual revenue
// above the turnover limit
func FixedTaxSurcharge(p domain.FixedTaxParams, monthlyRevenue decimal.Decimal) decimal.Decimal {
	excess := monthlyRevenue.Mul(twelve).Sub(p.AnnualTurnoverLimit)
	if !excess.IsPositive() {
		return decimal.Zero
	}
	return excess.Mul(p.SurchargeRate).Div(twelve)
}

// RevenueFromProfit grosses profit up by the expense ratio. A ratio of one or
// more cannot be inverted and leaves revenue equal to profit.
func RevenueFromProfit(profit, expenseRatio decimal.Decimal) decimal.Decimal {
	if expenseRatio.GreaterThanOrEqual(one) {
		return profit
	}
	return profit.Div(one.Sub(expenseRatio))
}

// ProfitFromRevenue applies the expense ratio to a revenue figure
func ProfitFromRevenue(revenue, expenseRatio decimal.Decimal) decimal.Decimal {
	return revenue.Mul(one.Sub(expenseRatio))
}
