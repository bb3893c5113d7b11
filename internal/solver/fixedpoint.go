package solver

import (
	"context"

	"github.com/rgehrsitz/evtax/internal/calculation"
	"github.com/rgehrsitz/evtax/internal/domain"
	"github.com/shopspring/decimal"
)

// Options configures the local-tax refinement loop
type Options struct {
	Tolerance     decimal.Decimal // stop when annual revenue moves less than this
	MaxIterations int             // refinement passes after the initial solve
}

// DefaultOptions returns default solver configuration
func DefaultOptions() Options {
	return Options{
		Tolerance:     decimal.NewFromInt(1),
		MaxIterations: 10,
	}
}

// Adjustment is the outcome of a local-tax refinement
type Adjustment struct {
	Estimate   ProfitEstimate
	Breakdown  domain.TaxBreakdown
	LocalTax   calculation.LocalTaxAssessment
	Iterations int
	Converged  bool
}

// LocalTaxAdjuster folds the revenue-dependent local tax into a net or
// total-tax target. Local tax depends on the revenue being solved for, so the
// target is corrected and re-solved until revenue stops moving.
type LocalTaxAdjuster struct {
	LocalTax *calculation.LocalTaxCalculator
	Options  Options
	Logger   calculation.Logger
}

// NewLocalTaxAdjuster creates an adjuster for a local tax schedule
func NewLocalTaxAdjuster(schedule domain.LocalTaxSchedule, options Options) *LocalTaxAdjuster {
	return &LocalTaxAdjuster{
		LocalTax: calculation.NewLocalTaxCalculator(schedule),
		Options:  options,
		Logger:   calculation.NopLogger{},
	}
}

// Adjust solves for target and refines it against local tax. The last
// iterate is always returned, with Converged reporting whether the revenue
// change fell below the tolerance before the iteration cap.
func (a *LocalTaxAdjuster) Adjust(ctx context.Context, params domain.RegimeParameters, mode domain.InputMode, target, expenseRatio, floorBase decimal.Decimal) (*Adjustment, error) {
	est, err := ComputeProfitFromTarget(params, mode, target, expenseRatio, floorBase)
	if err != nil {
		return nil, err
	}
	a.checkViolation(est)
	b := calculation.ComputeForward(params, est.Profit, expenseRatio, floorBase)

	if mode == domain.ModeRevenue {
		return &Adjustment{
			Estimate:  est,
			Breakdown: b,
			LocalTax:  a.LocalTax.AssessBreakdown(b),
			Converged: true,
		}, nil
	}

	adj := &Adjustment{Estimate: est, Breakdown: b}
	for i := 1; i <= a.Options.MaxIterations; i++ {
		if err := ctx.Err(); err != nil {
			return nil, &SolveError{Operation: "adjust_local_tax", Message: "cancelled", Cause: err}
		}

		local := a.LocalTax.AssessBreakdown(adj.Breakdown)
		corrected := target.Add(local.Monthly)
		if mode == domain.ModeTotalTax {
			corrected = decimal.Max(target.Sub(local.Monthly), decimal.Zero)
		}

		next, err := ComputeProfitFromTarget(params, mode, corrected, expenseRatio, floorBase)
		if err != nil {
			return nil, err
		}
		a.checkViolation(next)
		nb := calculation.ComputeForward(params, next.Profit, expenseRatio, floorBase)

		delta := nb.Revenue.Sub(adj.Breakdown.Revenue).Abs().Mul(twelve)
		a.Logger.Debugf("local tax pass %d: target=%s revenue=%s delta=%s", i, corrected.StringFixed(2), nb.Revenue.StringFixed(2), delta.StringFixed(4))

		adj.Estimate = next
		adj.Breakdown = nb
		adj.Iterations = i
		if delta.LessThan(a.Options.Tolerance) {
			adj.Converged = true
			break
		}
	}

	if !adj.Converged {
		a.Logger.Warnf("local tax did not converge after %d iterations", adj.Iterations)
	}
	adj.LocalTax = a.LocalTax.AssessBreakdown(adj.Breakdown)
	return adj, nil
}

func (a *LocalTaxAdjuster) checkViolation(est ProfitEstimate) {
	if !est.Violation.IsZero() {
		a.Logger.Warnf("no branch matched exactly; using %s with region violation %s", est.Case, est.Violation.String())
	}
}
