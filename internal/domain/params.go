package domain

import (
	"github.com/shopspring/decimal"
)

var twelve = decimal.NewFromInt(12)

// RegimeParameters is implemented by exactly one parameter set per regime.
// The unexported method keeps the set closed so a computation can never mix
// fields from two regimes.
type RegimeParameters interface {
	Regime() Regime
	isRegimeParameters()
}

// WageFloors holds the two alternative monthly minimum bases for contributions
type WageFloors struct {
	Ordinary  decimal.Decimal `yaml:"ordinary" toml:"ordinary" json:"ordinary"`
	Qualified decimal.Decimal `yaml:"qualified" toml:"qualified" json:"qualified"`
}

// Contributions is the rate schedule shared by the Standard and FlatRate regimes
type Contributions struct {
	IncomeTaxRate          decimal.Decimal `yaml:"income_tax_rate" toml:"income_tax_rate" json:"income_tax_rate"`
	SocialContributionRate decimal.Decimal `yaml:"social_contribution_rate" toml:"social_contribution_rate" json:"social_contribution_rate"`
	HealthContributionRate decimal.Decimal `yaml:"health_contribution_rate" toml:"health_contribution_rate" json:"health_contribution_rate"`
	WageFloors             WageFloors      `yaml:"wage_floors" toml:"wage_floors" json:"wage_floors"`
}

// TotalMarginalRate is the combined rate applied to profit above every floor
func (c Contributions) TotalMarginalRate() decimal.Decimal {
	return c.IncomeTaxRate.Add(c.SocialContributionRate).Add(c.HealthContributionRate)
}

// ContributionRate is the combined social and health rate
func (c Contributions) ContributionRate() decimal.Decimal {
	return c.SocialContributionRate.Add(c.HealthContributionRate)
}

// FloorBase returns the monthly wage floor for the given choice
func (c Contributions) FloorBase(choice WageFloorChoice) decimal.Decimal {
	if choice == WageFloorQualified {
		return c.WageFloors.Qualified
	}
	return c.WageFloors.Ordinary
}

// MinimumContributions returns the social and health amounts due at the floor
func (c Contributions) MinimumContributions(floorBase decimal.Decimal) (social, health decimal.Decimal) {
	return floorBase.Mul(c.SocialContributionRate), floorBase.Mul(c.HealthContributionRate)
}

// StandardParams taxes actual profit with no exemption and no turnover limit
type StandardParams struct {
	Contributions `yaml:",inline"`
}

func (StandardParams) Regime() Regime      { return RegimeStandard }
func (StandardParams) isRegimeParameters() {}

// FlatRateParams taxes revenue less a lump-sum expense ratio, with an annual
// income-tax exemption band and a turnover ceiling.
type FlatRateParams struct {
	Contributions       `yaml:",inline"`
	AnnualExemption     decimal.Decimal   `yaml:"annual_exemption" toml:"annual_exemption" json:"annual_exemption"`
	AnnualTurnoverLimit decimal.Decimal   `yaml:"annual_turnover_limit" toml:"annual_turnover_limit" json:"annual_turnover_limit"`
	ExpenseRatioOptions []decimal.Decimal `yaml:"expense_ratio_options" toml:"expense_ratio_options" json:"expense_ratio_options"`
}

func (FlatRateParams) Regime() Regime      { return RegimeFlatRate }
func (FlatRateParams) isRegimeParameters() {}

// MonthlyExemption converts the annual exemption band to a monthly amount
func (p FlatRateParams) MonthlyExemption() decimal.Decimal {
	return p.AnnualExemption.Div(twelve)
}

// FixedTaxParams is a flat monthly fee plus a marginal surcharge on annual
// revenue above the turnover limit. There is no expense ratio and no floor.
type FixedTaxParams struct {
	MonthlyAmount       decimal.Decimal `yaml:"monthly_amount" toml:"monthly_amount" json:"monthly_amount"`
	AnnualTurnoverLimit decimal.Decimal `yaml:"annual_turnover_limit" toml:"annual_turnover_limit" json:"annual_turnover_limit"`
	SurchargeRate       decimal.Decimal `yaml:"surcharge_rate" toml:"surcharge_rate" json:"surcharge_rate"`
}

func (FixedTaxParams) Regime() Regime      { return RegimeFixedTax }
func (FixedTaxParams) isRegimeParameters() {}

// LocalTaxTier maps an annual revenue ceiling to a fixed annual tax base
type LocalTaxTier struct {
	AnnualRevenueCeiling decimal.Decimal `yaml:"annual_revenue_ceiling" toml:"annual_revenue_ceiling" json:"annual_revenue_ceiling"`
	FixedAnnualBase      decimal.Decimal `yaml:"fixed_annual_base" toml:"fixed_annual_base" json:"fixed_annual_base"`
}

// LocalTaxSchedule is the revenue-tiered local business tax. Tiers are
// ordered by strictly increasing ceiling; above the last ceiling the base is
// annual profit.
type LocalTaxSchedule struct {
	Rate  decimal.Decimal `yaml:"rate" toml:"rate" json:"rate"`
	Tiers []LocalTaxTier  `yaml:"tiers" toml:"tiers" json:"tiers"`
}

// VATRate is one VAT band, shown for reference only
type VATRate struct {
	Rate        decimal.Decimal `yaml:"rate" toml:"rate" json:"rate"`
	Description string          `yaml:"description" toml:"description" json:"description"`
}

// ParameterTable holds every constant for one fiscal year
type ParameterTable struct {
	FiscalYear        int              `yaml:"fiscal_year" toml:"fiscal_year" json:"fiscal_year"`
	Currency          string           `yaml:"currency" toml:"currency" json:"currency"`
	Standard          StandardParams   `yaml:"standard" toml:"standard" json:"standard"`
	FlatRate          FlatRateParams   `yaml:"flat_rate" toml:"flat_rate" json:"flat_rate"`
	FixedTax          FixedTaxParams   `yaml:"fixed_tax" toml:"fixed_tax" json:"fixed_tax"`
	LocalTax          LocalTaxSchedule `yaml:"local_tax" toml:"local_tax" json:"local_tax"`
	VATExemptionLimit decimal.Decimal  `yaml:"vat_exemption_limit" toml:"vat_exemption_limit" json:"vat_exemption_limit"`
	VATRates          []VATRate        `yaml:"vat_rates,omitempty" toml:"vat_rates,omitempty" json:"vat_rates,omitempty"`
}

// Params returns the parameter variant for a regime, or nil for an unknown one
func (t *ParameterTable) Params(r Regime) RegimeParameters {
	switch r {
	case RegimeStandard:
		return t.Standard
	case RegimeFlatRate:
		return t.FlatRate
	case RegimeFixedTax:
		return t.FixedTax
	}
	return nil
}

// DefaultExpenseRatioPercent is the ratio assumed when a request leaves it
// unset: the first configured flat-rate option, zero for the other regimes
func (t *ParameterTable) DefaultExpenseRatioPercent(r Regime) decimal.Decimal {
	if r == RegimeFlatRate && len(t.FlatRate.ExpenseRatioOptions) > 0 {
		return t.FlatRate.ExpenseRatioOptions[0]
	}
	return decimal.Zero
}
