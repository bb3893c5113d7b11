package solver

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/evtax/internal/calculation"
	"github.com/rgehrsitz/evtax/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// MaxAmount caps the monthly amount of a request
var MaxAmount = decimal.New(1, 12)

// Result is the full answer to a SolveRequest. Amounts are monthly.
type Result struct {
	FiscalYear int    `json:"fiscal_year"`
	Currency   string `json:"currency"`

	Request   domain.SolveRequest            `json:"request"`
	Breakdown domain.TaxBreakdown            `json:"breakdown"`
	LocalTax  calculation.LocalTaxAssessment `json:"local_tax"`

	// TotalTax and Net include local tax
	TotalTax      decimal.Decimal `json:"total_tax"`
	Net           decimal.Decimal `json:"net"`
	EffectiveRate decimal.Decimal `json:"effective_rate"`

	Case       string           `json:"case"`
	Iterations int              `json:"iterations"`
	Converged  bool             `json:"converged"`
	Warnings   []domain.Warning `json:"warnings"`
}

// AnnualTotalTax is TotalTax over twelve months
func (r *Result) AnnualTotalTax() decimal.Decimal { return r.TotalTax.Mul(twelve) }

// AnnualNet is Net over twelve months
func (r *Result) AnnualNet() decimal.Decimal { return r.Net.Mul(twelve) }

// HasWarning reports whether a warning with the given code is attached
func (r *Result) HasWarning(code domain.WarningCode) bool {
	for _, w := range r.Warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}

// Solver resolves requests against one parameter table. It holds no mutable
// state and is safe for concurrent use.
type Solver struct {
	Table   *domain.ParameterTable
	Options Options
	Logger  calculation.Logger
}

// NewSolver creates a new solver
func NewSolver(table *domain.ParameterTable, options Options) *Solver {
	return &Solver{
		Table:   table,
		Options: options,
		Logger:  calculation.NopLogger{},
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(table *domain.ParameterTable) *Solver {
	return NewSolver(table, DefaultOptions())
}

// SetLogger sets the logger; nil restores the no-op logger
func (s *Solver) SetLogger(l calculation.Logger) {
	if l == nil {
		s.Logger = calculation.NopLogger{}
		return
	}
	s.Logger = l
}

// Validate checks a request before any computation
func (s *Solver) Validate(req domain.SolveRequest) error {
	const op = "validate_request"

	if !req.Regime.Valid() {
		return invalidInput(op, fmt.Sprintf("unknown regime %q", req.Regime))
	}
	if !req.Mode.Valid() {
		return invalidInput(op, fmt.Sprintf("unknown input mode %q", req.Mode))
	}
	if !req.Amount.IsPositive() {
		return invalidInput(op, "amount must be positive")
	}
	if req.Amount.GreaterThan(MaxAmount) {
		return invalidInput(op, fmt.Sprintf("amount must not exceed %s", MaxAmount.String()))
	}
	if req.Regime == domain.RegimeFixedTax {
		if req.Mode == domain.ModeTotalTax {
			return &SolveError{
				Operation: op,
				Message:   "total tax mode is not available for the fixed-tax regime",
				Cause:     ErrUnsupportedMode,
			}
		}
		return nil
	}
	if req.ExpenseRatioPercent.IsNegative() || req.ExpenseRatioPercent.GreaterThanOrEqual(hundred) {
		return invalidInput(op, "expense ratio must be between 0 and 100 (exclusive)")
	}
	if !req.EffectiveWageFloor().Valid() {
		return invalidInput(op, fmt.Sprintf("unknown wage floor %q", req.WageFloor))
	}
	return nil
}

// Solve validates req, inverts the tax function for its target, folds in
// local tax and returns the final breakdown with warnings
func (s *Solver) Solve(ctx context.Context, req domain.SolveRequest) (*Result, error) {
	if err := s.Validate(req); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, &SolveError{Operation: "solve", Message: "cancelled", Cause: err}
	}

	params := s.Table.Params(req.Regime)
	ratio := req.ExpenseRatio()
	floor := s.floorBase(params, req.EffectiveWageFloor())

	s.Logger.Debugf("solve %s/%s amount=%s ratio=%s floor=%s", req.Regime, req.Mode, req.Amount.String(), ratio.String(), floor.String())

	adjuster := &LocalTaxAdjuster{
		LocalTax: calculation.NewLocalTaxCalculator(s.Table.LocalTax),
		Options:  s.Options,
		Logger:   s.Logger,
	}
	adj, err := adjuster.Adjust(ctx, params, req.Mode, req.Amount, ratio, floor)
	if err != nil {
		return nil, err
	}

	b := adj.Breakdown
	b.BelowViableRange = adj.Estimate.Clamped

	res := &Result{
		FiscalYear: s.Table.FiscalYear,
		Currency:   s.Table.Currency,
		Request:    req,
		Breakdown:  b,
		LocalTax:   adj.LocalTax,
		TotalTax:   b.TotalTax.Add(adj.LocalTax.Monthly),
		Net:        b.Net.Sub(adj.LocalTax.Monthly),
		Case:       adj.Estimate.Case,
		Iterations: adj.Iterations,
		Converged:  adj.Converged,
	}
	if b.Revenue.IsPositive() {
		res.EffectiveRate = res.TotalTax.Div(b.Revenue)
	}
	res.Warnings = s.warnings(res)

	s.Logger.Infof("solved %s/%s: revenue=%s total_tax=%s net=%s case=%s iterations=%d", req.Regime, req.Mode,
		b.Revenue.StringFixed(0), res.TotalTax.StringFixed(0), res.Net.StringFixed(0), res.Case, res.Iterations)
	return res, nil
}

func (s *Solver) floorBase(params domain.RegimeParameters, choice domain.WageFloorChoice) decimal.Decimal {
	switch p := params.(type) {
	case domain.StandardParams:
		return p.FloorBase(choice)
	case domain.FlatRateParams:
		return p.FloorBase(choice)
	}
	return decimal.Zero
}
