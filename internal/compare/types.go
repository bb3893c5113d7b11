package compare

import (
	"github.com/rgehrsitz/evtax/internal/domain"
	"github.com/rgehrsitz/evtax/internal/solver"
	"github.com/shopspring/decimal"
)

// Request is a single target evaluated under every regime
type Request struct {
	Mode   domain.InputMode `json:"mode"`
	Amount decimal.Decimal  `json:"amount"`
	// ExpenseRatioPercent applies to the standard regime
	ExpenseRatioPercent decimal.Decimal `json:"expense_ratio_percent"`
	// FlatRateRatioPercent applies to the flat-rate regime; zero selects the
	// first configured option
	FlatRateRatioPercent decimal.Decimal        `json:"flat_rate_ratio_percent"`
	WageFloor            domain.WageFloorChoice `json:"wage_floor"`
}

// ForRegime builds the solve request for one regime. The flat-rate ratio
// falls back to the first configured option when unset.
func (r Request) ForRegime(regime domain.Regime, table *domain.ParameterTable) domain.SolveRequest {
	sr := domain.SolveRequest{
		Regime:    regime,
		Mode:      r.Mode,
		Amount:    r.Amount,
		WageFloor: r.WageFloor,
	}
	switch regime {
	case domain.RegimeStandard:
		sr.ExpenseRatioPercent = r.ExpenseRatioPercent
	case domain.RegimeFlatRate:
		sr.ExpenseRatioPercent = r.FlatRateRatioPercent
	}
	return sr.WithDefaults(table)
}

// RegimeResult is the outcome for one regime
type RegimeResult struct {
	Regime domain.Regime  `json:"regime"`
	Result *solver.Result `json:"result,omitempty"`
	// Skipped explains why the regime was not evaluated
	Skipped string `json:"skipped,omitempty"`
	// Eligible is false when a turnover limit rules the regime out
	Eligible bool `json:"eligible"`

	NetDiffFromBest     decimal.Decimal `json:"net_diff_from_best"`
	RevenueDiffFromBest decimal.Decimal `json:"revenue_diff_from_best"`
}

// ComparisonSet holds every regime's result and the recommendation
type ComparisonSet struct {
	FiscalYear      int            `json:"fiscal_year"`
	Currency        string         `json:"currency"`
	Request         Request        `json:"request"`
	Results         []RegimeResult `json:"results"`
	Recommended     domain.Regime  `json:"recommended,omitempty"`
	Recommendations []string       `json:"recommendations"`
}

// Evaluated returns the results that carry a solve result
func (cs *ComparisonSet) Evaluated() []RegimeResult {
	out := make([]RegimeResult, 0, len(cs.Results))
	for _, r := range cs.Results {
		if r.Result != nil {
			out = append(out, r)
		}
	}
	return out
}

// Find returns the result for a regime
func (cs *ComparisonSet) Find(regime domain.Regime) (RegimeResult, bool) {
	for _, r := range cs.Results {
		if r.Regime == regime {
			return r, true
		}
	}
	return RegimeResult{}, false
}
