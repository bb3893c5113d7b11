package breakeven

import (
	"context"

	"github.com/rgehrsitz/evtax/internal/compare"
	"github.com/rgehrsitz/evtax/internal/domain"
	"github.com/rgehrsitz/evtax/internal/solver"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// Solver finds the revenue levels at which two regimes break even
type Solver struct {
	Solver  *solver.Solver
	Options SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(s *solver.Solver, options SolverOptions) *Solver {
	return &Solver{
		Solver:  s,
		Options: options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(s *solver.Solver) *Solver {
	return NewSolver(s, DefaultSolverOptions())
}

// point is the net difference A minus B at one revenue
type point struct {
	revenue decimal.Decimal
	netA    decimal.Decimal
	netB    decimal.Decimal
}

func (p point) diff() decimal.Decimal { return p.netA.Sub(p.netB) }

// Find scans the revenue range on a grid and bisects every bracket in which
// the better regime changes
func (s *Solver) Find(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	opts := s.Options
	if opts.GridResolution <= 0 {
		opts.GridResolution = DefaultSolverOptions().GridResolution
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultSolverOptions().MaxIterations
	}
	if !opts.Tolerance.IsPositive() {
		opts.Tolerance = DefaultSolverOptions().Tolerance
	}

	table := s.Solver.Table
	result := &Result{
		FiscalYear: table.FiscalYear,
		Currency:   table.Currency,
		Request:    req,
	}

	step := req.MaxRevenue.Sub(req.MinRevenue).Div(decimal.NewFromInt(int64(opts.GridResolution)))
	var prev *point
	for i := 0; i <= opts.GridResolution; i++ {
		revenue := req.MinRevenue.Add(step.Mul(decimal.NewFromInt(int64(i))))
		if i == opts.GridResolution {
			revenue = req.MaxRevenue
		}

		cur, err := s.evaluate(ctx, req, revenue)
		if err != nil {
			return nil, err
		}
		result.Evaluations++

		if prev == nil {
			result.BetterAtMin = better(req, cur.diff())
		}

		switch {
		case cur.diff().IsZero():
			result.Crossovers = append(result.Crossovers, Crossover{
				Revenue:     cur.revenue,
				NetA:        cur.netA,
				NetB:        cur.netB,
				BetterBelow: betterOrNone(req, prev),
				Converged:   true,
			})
		case prev != nil && prev.diff().Sign()*cur.diff().Sign() < 0:
			c, evals, err := s.bisect(ctx, req, *prev, cur, opts)
			result.Evaluations += evals
			if err != nil {
				return nil, err
			}
			result.Crossovers = append(result.Crossovers, c)
		}

		p := cur
		prev = &p
	}

	// an exact zero on the grid learns its upper side from the next point
	for i := range result.Crossovers {
		c := &result.Crossovers[i]
		if c.BetterAbove == "" {
			c.BetterAbove = s.sideAbove(ctx, req, c.Revenue, opts.Tolerance)
		}
	}
	return result, nil
}

// bisect narrows a bracket with a sign change in the net difference
func (s *Solver) bisect(ctx context.Context, req Request, lo, hi point, opts SolverOptions) (Crossover, int, error) {
	evals := 0
	iterations := 0
	below, above := better(req, lo.diff()), better(req, hi.diff())

	for iterations < opts.MaxIterations && hi.revenue.Sub(lo.revenue).GreaterThanOrEqual(opts.Tolerance) {
		iterations++

		mid, err := s.evaluate(ctx, req, lo.revenue.Add(hi.revenue).Div(two))
		if err != nil {
			return Crossover{}, evals, err
		}
		evals++

		if mid.diff().IsZero() {
			lo, hi = mid, mid
			break
		}
		if mid.diff().Sign() == lo.diff().Sign() {
			lo = mid
		} else {
			hi = mid
		}
	}

	width := hi.revenue.Sub(lo.revenue)
	final := lo
	if hi.diff().Abs().LessThan(lo.diff().Abs()) {
		final = hi
	}

	// net income moves by at most one unit per unit of revenue in each
	// regime, so a larger jump across the bracket is a step
	jump := hi.diff().Sub(lo.diff()).Abs()

	return Crossover{
		Revenue:       final.revenue,
		NetA:          final.netA,
		NetB:          final.netB,
		BetterBelow:   below,
		BetterAbove:   above,
		Iterations:    iterations,
		Converged:     width.LessThan(opts.Tolerance),
		Discontinuous: jump.GreaterThan(width.Mul(two).Add(opts.Tolerance)),
	}, evals, nil
}

func (s *Solver) sideAbove(ctx context.Context, req Request, revenue, tol decimal.Decimal) domain.Regime {
	p, err := s.evaluate(ctx, req, revenue.Add(tol))
	if err != nil {
		return ""
	}
	return better(req, p.diff())
}

// evaluate solves both regimes at one monthly revenue
func (s *Solver) evaluate(ctx context.Context, req Request, revenue decimal.Decimal) (point, error) {
	cr := compare.Request{
		Mode:                 domain.ModeRevenue,
		Amount:               revenue,
		ExpenseRatioPercent:  req.ExpenseRatioPercent,
		FlatRateRatioPercent: req.FlatRateRatioPercent,
		WageFloor:            req.WageFloor,
	}

	a, err := s.Solver.Solve(ctx, cr.ForRegime(req.A, s.Solver.Table))
	if err != nil {
		return point{}, &BreakEvenError{Operation: "evaluate", Message: "failed to solve " + string(req.A), Cause: err}
	}
	b, err := s.Solver.Solve(ctx, cr.ForRegime(req.B, s.Solver.Table))
	if err != nil {
		return point{}, &BreakEvenError{Operation: "evaluate", Message: "failed to solve " + string(req.B), Cause: err}
	}
	return point{revenue: revenue, netA: a.Net, netB: b.Net}, nil
}

// better names the regime favoured by a net difference A minus B
func better(req Request, diff decimal.Decimal) domain.Regime {
	switch diff.Sign() {
	case 1:
		return req.A
	case -1:
		return req.B
	}
	return ""
}

func betterOrNone(req Request, p *point) domain.Regime {
	if p == nil {
		return ""
	}
	return better(req, p.diff())
}
