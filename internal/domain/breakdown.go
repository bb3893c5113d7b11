package domain

import "github.com/shopspring/decimal"

// TaxBreakdown is the monthly result of a forward computation. All amounts
// are monthly; callers multiply by 12 for an annual view.
type TaxBreakdown struct {
	Regime Regime `json:"regime"`

	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`

	IncomeTax          decimal.Decimal `json:"income_tax"`
	SocialContribution decimal.Decimal `json:"social_contribution"`
	HealthContribution decimal.Decimal `json:"health_contribution"`
	FixedAmount        decimal.Decimal `json:"fixed_amount"`
	Surcharge          decimal.Decimal `json:"surcharge"`
	TotalTax           decimal.Decimal `json:"total_tax"`
	Net                decimal.Decimal `json:"net"`

	MonthlyExemption decimal.Decimal `json:"monthly_exemption"`
	ExemptionApplied decimal.Decimal `json:"exemption_applied"`

	FloorApplied     bool `json:"floor_applied"`
	LimitExceeded    bool `json:"limit_exceeded"`
	BelowViableRange bool `json:"below_viable_range"`
}

// Annual scales every amount in the breakdown by twelve
func (b TaxBreakdown) Annual() TaxBreakdown {
	a := b
	a.Revenue = b.Revenue.Mul(twelve)
	a.Expenses = b.Expenses.Mul(twelve)
	a.Profit = b.Profit.Mul(twelve)
	a.IncomeTax = b.IncomeTax.Mul(twelve)
	a.SocialContribution = b.SocialContribution.Mul(twelve)
	a.HealthContribution = b.HealthContribution.Mul(twelve)
	a.FixedAmount = b.FixedAmount.Mul(twelve)
	a.Surcharge = b.Surcharge.Mul(twelve)
	a.TotalTax = b.TotalTax.Mul(twelve)
	a.Net = b.Net.Mul(twelve)
	a.MonthlyExemption = b.MonthlyExemption.Mul(twelve)
	a.ExemptionApplied = b.ExemptionApplied.Mul(twelve)
	return a
}
