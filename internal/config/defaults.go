package config

import (
	"github.com/rgehrsitz/evtax/internal/domain"
	"github.com/shopspring/decimal"
)

// Statutory figures for 2026 the defaults are derived from
const (
	minimumWage2026    = 322800
	guaranteedWage2026 = 373200
)

// Default2026 returns the built-in parameter table for fiscal year 2026
func Default2026() *domain.ParameterTable {
	contributions := domain.Contributions{
		IncomeTaxRate:          decimal.NewFromFloat(0.15),
		SocialContributionRate: decimal.NewFromFloat(0.13),
		HealthContributionRate: decimal.NewFromFloat(0.185),
		WageFloors: domain.WageFloors{
			Ordinary:  decimal.NewFromInt(minimumWage2026),
			Qualified: decimal.NewFromInt(guaranteedWage2026),
		},
	}

	return &domain.ParameterTable{
		FiscalYear: 2026,
		Currency:   "HUF",
		Standard: domain.StandardParams{
			Contributions: contributions,
		},
		FlatRate: domain.FlatRateParams{
			Contributions: contributions,
			// half of the annual minimum wage is free of income tax
			AnnualExemption: decimal.NewFromInt(minimumWage2026 * 12 / 2),
			// ten times the annual minimum wage
			AnnualTurnoverLimit: decimal.NewFromInt(minimumWage2026 * 120),
			ExpenseRatioOptions: []decimal.Decimal{
				decimal.NewFromInt(45),
				decimal.NewFromInt(80),
				decimal.NewFromInt(90),
			},
		},
		FixedTax: domain.FixedTaxParams{
			MonthlyAmount:       decimal.NewFromInt(50000),
			AnnualTurnoverLimit: decimal.NewFromInt(18000000),
			SurchargeRate:       decimal.NewFromFloat(0.40),
		},
		LocalTax: domain.LocalTaxSchedule{
			Rate: decimal.NewFromFloat(0.02),
			Tiers: []domain.LocalTaxTier{
				{AnnualRevenueCeiling: decimal.NewFromInt(12000000), FixedAnnualBase: decimal.NewFromInt(2500000)},
				{AnnualRevenueCeiling: decimal.NewFromInt(18000000), FixedAnnualBase: decimal.NewFromInt(6000000)},
				{AnnualRevenueCeiling: decimal.NewFromInt(25000000), FixedAnnualBase: decimal.NewFromInt(8500000)},
			},
		},
		VATExemptionLimit: decimal.NewFromInt(20000000),
		VATRates: []domain.VATRate{
			{Rate: decimal.NewFromFloat(0.27), Description: "standard"},
			{Rate: decimal.NewFromFloat(0.18), Description: "food and catering"},
			{Rate: decimal.NewFromFloat(0.05), Description: "books, medicines and housing"},
		},
	}
}
