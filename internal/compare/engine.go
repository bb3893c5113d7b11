package compare

import (
	"context"
	"errors"
	"fmt"

	"github.com/rgehrsitz/evtax/internal/domain"
	"github.com/rgehrsitz/evtax/internal/output"
	"github.com/rgehrsitz/evtax/internal/solver"
	"github.com/samber/lo"
)

// CompareEngine evaluates one target under all regimes
type CompareEngine struct {
	Solver *solver.Solver
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(s *solver.Solver) *CompareEngine {
	return &CompareEngine{Solver: s}
}

// Compare solves the request under every regime that supports its mode and
// recommends one. Validation errors stop the comparison; an unsupported mode
// only skips that regime.
func (ce *CompareEngine) Compare(ctx context.Context, req Request) (*ComparisonSet, error) {
	table := ce.Solver.Table
	set := &ComparisonSet{
		FiscalYear: table.FiscalYear,
		Currency:   table.Currency,
		Request:    req,
	}

	for _, regime := range domain.AllRegimes {
		sr := req.ForRegime(regime, table)

		res, err := ce.Solver.Solve(ctx, sr)
		if errors.Is(err, solver.ErrUnsupportedMode) {
			set.Results = append(set.Results, RegimeResult{
				Regime:  regime,
				Skipped: fmt.Sprintf("%s mode is not available", req.Mode.DisplayName()),
			})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to solve %s: %w", regime, err)
		}
		set.Results = append(set.Results, RegimeResult{
			Regime:   regime,
			Result:   res,
			Eligible: !res.HasWarning(domain.WarnFlatRateLimit),
		})
	}

	ce.recommend(set)
	return set, nil
}

func (ce *CompareEngine) recommend(set *ComparisonSet) {
	candidates := lo.Filter(set.Results, func(r RegimeResult, _ int) bool {
		return r.Result != nil && r.Eligible
	})
	if len(candidates) == 0 {
		set.Recommendations = append(set.Recommendations, "No regime is available for this input.")
		return
	}

	var best RegimeResult
	if set.Request.Mode == domain.ModeNet {
		best = lo.MinBy(candidates, func(a, b RegimeResult) bool {
			return a.Result.Breakdown.Revenue.LessThan(b.Result.Breakdown.Revenue)
		})
	} else {
		best = lo.MaxBy(candidates, func(a, b RegimeResult) bool {
			return a.Result.Net.GreaterThan(b.Result.Net)
		})
	}
	set.Recommended = best.Regime

	for i := range set.Results {
		r := &set.Results[i]
		if r.Result == nil {
			continue
		}
		r.NetDiffFromBest = r.Result.Net.Sub(best.Result.Net)
		r.RevenueDiffFromBest = r.Result.Breakdown.Revenue.Sub(best.Result.Breakdown.Revenue)
	}

	cur := set.Currency
	switch set.Request.Mode {
	case domain.ModeNet:
		set.Recommendations = append(set.Recommendations, fmt.Sprintf(
			"%s needs the least revenue (%s per month) to reach the target net income.",
			best.Regime.DisplayName(), output.FormatAmount(best.Result.Breakdown.Revenue, cur)))
	default:
		set.Recommendations = append(set.Recommendations, fmt.Sprintf(
			"%s leaves the highest net income (%s per month).",
			best.Regime.DisplayName(), output.FormatAmount(best.Result.Net, cur)))
	}

	for _, r := range set.Results {
		if r.Result != nil && !r.Eligible {
			set.Recommendations = append(set.Recommendations, fmt.Sprintf(
				"%s is not available because annual revenue exceeds its turnover limit.", r.Regime.DisplayName()))
		}
	}
}
