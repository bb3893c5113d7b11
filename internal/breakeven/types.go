package breakeven

import (
	"fmt"

	"github.com/rgehrsitz/evtax/internal/domain"
	"github.com/rgehrsitz/evtax/internal/solver"
	"github.com/shopspring/decimal"
)

// Request asks where two regimes leave the same net income within a monthly
// revenue range
type Request struct {
	A domain.Regime `json:"a"`
	B domain.Regime `json:"b"`

	MinRevenue decimal.Decimal `json:"min_revenue"`
	MaxRevenue decimal.Decimal `json:"max_revenue"`

	// ExpenseRatioPercent applies to the standard regime
	ExpenseRatioPercent decimal.Decimal `json:"expense_ratio_percent"`
	// FlatRateRatioPercent applies to the flat-rate regime; zero selects the
	// first configured option
	FlatRateRatioPercent decimal.Decimal        `json:"flat_rate_ratio_percent"`
	WageFloor            domain.WageFloorChoice `json:"wage_floor"`
}

// Validate checks the request
func (r Request) Validate() error {
	if !r.A.Valid() || !r.B.Valid() {
		return &BreakEvenError{Operation: "validate", Message: fmt.Sprintf("unknown regime pair %q/%q", r.A, r.B)}
	}
	if r.A == r.B {
		return &BreakEvenError{Operation: "validate", Message: "regimes must differ"}
	}
	if !r.MinRevenue.IsPositive() {
		return &BreakEvenError{Operation: "validate", Message: "minimum revenue must be positive"}
	}
	if !r.MaxRevenue.GreaterThan(r.MinRevenue) {
		return &BreakEvenError{Operation: "validate", Message: "maximum revenue must exceed the minimum"}
	}
	if r.MaxRevenue.GreaterThan(solver.MaxAmount) {
		return &BreakEvenError{Operation: "validate", Message: fmt.Sprintf("maximum revenue must not exceed %s", solver.MaxAmount)}
	}
	return nil
}

// SolverOptions configures the grid scan and bisection
type SolverOptions struct {
	GridResolution int             // Number of intervals in the initial scan
	MaxIterations  int             // Maximum bisection steps per crossover
	Tolerance      decimal.Decimal // Revenue bracket width that ends bisection
}

// DefaultSolverOptions returns sensible defaults
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		GridResolution: 60,
		MaxIterations:  60,
		Tolerance:      decimal.NewFromInt(1),
	}
}

// Crossover is a revenue at which the better regime changes
type Crossover struct {
	Revenue decimal.Decimal `json:"revenue"`
	NetA    decimal.Decimal `json:"net_a"`
	NetB    decimal.Decimal `json:"net_b"`

	// BetterBelow leaves more net income just below Revenue
	BetterBelow domain.Regime `json:"better_below"`
	BetterAbove domain.Regime `json:"better_above"`

	Iterations int  `json:"iterations"`
	Converged  bool `json:"converged"`
	// Discontinuous marks a step in the net difference, such as a local tax
	// tier boundary, rather than a true crossing
	Discontinuous bool `json:"discontinuous"`
}

// Result lists every crossover found in the range
type Result struct {
	FiscalYear  int         `json:"fiscal_year"`
	Currency    string      `json:"currency"`
	Request     Request     `json:"request"`
	Crossovers  []Crossover `json:"crossovers"`
	Evaluations int         `json:"evaluations"`

	// BetterAtMin leaves more net income at the bottom of the range
	BetterAtMin domain.Regime `json:"better_at_min"`
}

// BreakEvenError represents errors during break-even analysis
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("break-even %s: %s: %v", e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("break-even %s: %s", e.Operation, e.Message)
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
