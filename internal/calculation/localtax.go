package calculation

import (
	"github.com/rgehrsitz/evtax/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// LocalTaxAssessment is the local business tax due for one revenue level
type LocalTaxAssessment struct {
	Base    decimal.Decimal `json:"base"`
	Annual  decimal.Decimal `json:"annual"`
	Monthly decimal.Decimal `json:"monthly"`
	// Tiered is false when revenue is above every tier and profit is the base
	Tiered bool `json:"tiered"`
}

// LocalTaxCalculator looks up the turnover tier for a revenue level
type LocalTaxCalculator struct {
	Schedule domain.LocalTaxSchedule
}

// NewLocalTaxCalculator creates a calculator for the given schedule
func NewLocalTaxCalculator(schedule domain.LocalTaxSchedule) *LocalTaxCalculator {
	return &LocalTaxCalculator{Schedule: schedule}
}

// Assess computes local tax from annual revenue and annual profit. The first
// tier whose ceiling is not exceeded supplies a fixed base; the ceiling is
// inclusive.
func (lc *LocalTaxCalculator) Assess(annualRevenue, annualProfit decimal.Decimal) LocalTaxAssessment {
	tier, found := lo.Find(lc.Schedule.Tiers, func(t domain.LocalTaxTier) bool {
		return annualRevenue.LessThanOrEqual(t.AnnualRevenueCeiling)
	})

	base := decimal.Max(annualProfit, decimal.Zero)
	if found {
		base = tier.FixedAnnualBase
	}

	annual := base.Mul(lc.Schedule.Rate)
	return LocalTaxAssessment{
		Base:    base,
		Annual:  annual,
		Monthly: annual.Div(twelve),
		Tiered:  found,
	}
}

// AssessBreakdown annualises a monthly breakdown and assesses it
func (lc *LocalTaxCalculator) AssessBreakdown(b domain.TaxBreakdown) LocalTaxAssessment {
	return lc.Assess(b.Revenue.Mul(twelve), b.Profit.Mul(twelve))
}
