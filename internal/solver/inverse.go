package solver

import (
	"fmt"

	"github.com/rgehrsitz/evtax/internal/calculation"
	"github.com/rgehrsitz/evtax/internal/domain"
	"github.com/shopspring/decimal"
)

var twelve = decimal.NewFromInt(12)

// ProfitEstimate is the profit recovered from a target
type ProfitEstimate struct {
	Profit decimal.Decimal
	// Case names the branch that produced the estimate
	Case string
	// Clamped is set when the branch produced a negative profit
	Clamped bool
	// Violation is how far the winning candidate lies outside its region;
	// non-zero only when no branch matched exactly
	Violation decimal.Decimal
}

// ComputeProfitFromTarget recovers the monthly profit that produces target
// under the given mode. For the fixed-tax regime profit equals revenue.
//
// Each branch of the piecewise tax function is solved in closed form and the
// candidate is checked against the branch's own region. The first branch
// whose candidate lies inside its region wins; if rounding leaves none inside,
// the candidate with the smallest violation is returned.
func ComputeProfitFromTarget(params domain.RegimeParameters, mode domain.InputMode, target, expenseRatio, floorBase decimal.Decimal) (ProfitEstimate, error) {
	const op = "compute_profit"

	if mode == domain.ModeRevenue {
		profit := target
		if params.Regime() != domain.RegimeFixedTax {
			profit = calculation.ProfitFromRevenue(target, expenseRatio)
		}
		return clampEstimate(ProfitEstimate{Profit: profit, Case: "revenue"}), nil
	}

	var (
		in    inversionInputs
		cases []inversionCase
	)
	switch p := params.(type) {
	case domain.StandardParams:
		in = contributionInputs(p.Contributions, decimal.Zero, floorBase)
		cases = casesForMode(mode)
	case domain.FlatRateParams:
		in = contributionInputs(p.Contributions, p.MonthlyExemption(), floorBase)
		cases = casesForMode(mode)
	case domain.FixedTaxParams:
		if mode != domain.ModeNet {
			return ProfitEstimate{}, &SolveError{
				Operation: op,
				Message:   fmt.Sprintf("%s mode is not available for %s", mode, p.Regime().DisplayName()),
				Cause:     ErrUnsupportedMode,
			}
		}
		in = inversionInputs{
			FixedAmount:   p.MonthlyAmount,
			MonthlyLimit:  p.AnnualTurnoverLimit.Div(twelve),
			SurchargeRate: p.SurchargeRate,
		}
		cases = fixedTaxNetCases
	default:
		return ProfitEstimate{}, invalidInput(op, "unknown regime parameters")
	}
	if cases == nil {
		return ProfitEstimate{}, invalidInput(op, fmt.Sprintf("unknown input mode %q", mode))
	}

	in.Target = target
	est, ok := selectCase(cases, in)
	if !ok {
		return ProfitEstimate{}, &SolveError{
			Operation: op,
			Message:   "no branch could be solved for the configured rates",
			Cause:     ErrInvalidInput,
		}
	}
	return clampEstimate(est), nil
}

func contributionInputs(c domain.Contributions, exemption, floorBase decimal.Decimal) inversionInputs {
	return inversionInputs{
		IncomeTaxRate: c.IncomeTaxRate,
		SocialRate:    c.SocialContributionRate,
		HealthRate:    c.HealthContributionRate,
		Floor:         floorBase,
		Exemption:     exemption,
	}
}

func casesForMode(mode domain.InputMode) []inversionCase {
	switch mode {
	case domain.ModeNet:
		return netCases
	case domain.ModeTotalTax:
		return totalTaxCases
	}
	return nil
}

func selectCase(cases []inversionCase, in inversionInputs) (ProfitEstimate, bool) {
	b := in.boundaries()
	var (
		best  ProfitEstimate
		found bool
	)
	for _, c := range cases {
		if c.RequiresExemption && !in.Exemption.IsPositive() {
			continue
		}
		p, ok := c.Solve(in)
		if !ok {
			continue
		}
		v := c.Region.Violation(p, b)
		if v.IsZero() {
			return ProfitEstimate{Profit: p, Case: c.Name}, true
		}
		if !found || v.LessThan(best.Violation) {
			best = ProfitEstimate{Profit: p, Case: c.Name, Violation: v}
			found = true
		}
	}
	return best, found
}

func clampEstimate(est ProfitEstimate) ProfitEstimate {
	if est.Profit.IsNegative() {
		est.Profit = decimal.Zero
		est.Clamped = true
	}
	return est
}
