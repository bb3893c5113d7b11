package domain

import "github.com/shopspring/decimal"

// SolveRequest describes one computation. Amount is monthly and its meaning
// depends on Mode. ExpenseRatioPercent and WageFloor are ignored for the
// fixed-tax regime.
type SolveRequest struct {
	Regime              Regime          `json:"regime"`
	Mode                InputMode       `json:"mode"`
	Amount              decimal.Decimal `json:"amount"`
	ExpenseRatioPercent decimal.Decimal `json:"expense_ratio_percent"`
	WageFloor           WageFloorChoice `json:"wage_floor"`
}

// ExpenseRatio returns the expense ratio as a fraction
func (r SolveRequest) ExpenseRatio() decimal.Decimal {
	if r.Regime == RegimeFixedTax {
		return decimal.Zero
	}
	return r.ExpenseRatioPercent.Div(decimal.NewFromInt(100))
}

// EffectiveWageFloor returns the floor choice, defaulting to ordinary
func (r SolveRequest) EffectiveWageFloor() WageFloorChoice {
	if r.WageFloor == "" {
		return WageFloorOrdinary
	}
	return r.WageFloor
}

// WithDefaults fills an unset expense ratio from the parameter table
func (r SolveRequest) WithDefaults(t *ParameterTable) SolveRequest {
	if r.ExpenseRatioPercent.IsZero() {
		r.ExpenseRatioPercent = t.DefaultExpenseRatioPercent(r.Regime)
	}
	return r
}
