package solver

import (
	"github.com/shopspring/decimal"
)

// regionTolerance absorbs rounding when a candidate lands on a boundary
var regionTolerance = decimal.New(1, -6)

type side int

const (
	anySide side = iota
	atOrAbove
	atOrBelow
)

// Region constrains a candidate relative to the wage floor, the exemption
// band and (for fixed tax) the monthly turnover limit. Bounds are inclusive.
type Region struct {
	Floor     side
	Exemption side
	Limit     side
}

type boundaries struct {
	Floor     decimal.Decimal
	Exemption decimal.Decimal
	Limit     decimal.Decimal
}

// Violation is the total distance of p outside the region, zero when inside
func (r Region) Violation(p decimal.Decimal, b boundaries) decimal.Decimal {
	return sideViolation(r.Floor, p, b.Floor).
		Add(sideViolation(r.Exemption, p, b.Exemption)).
		Add(sideViolation(r.Limit, p, b.Limit))
}

func sideViolation(s side, p, bound decimal.Decimal) decimal.Decimal {
	switch s {
	case atOrAbove:
		if p.LessThan(bound.Sub(regionTolerance)) {
			return bound.Sub(p)
		}
	case atOrBelow:
		if p.GreaterThan(bound.Add(regionTolerance)) {
			return p.Sub(bound)
		}
	}
	return decimal.Zero
}

// inversionInputs carries the target and the regime constants a case needs.
// All amounts are monthly.
type inversionInputs struct {
	Target decimal.Decimal

	IncomeTaxRate decimal.Decimal
	SocialRate    decimal.Decimal
	HealthRate    decimal.Decimal
	Floor         decimal.Decimal
	Exemption     decimal.Decimal

	FixedAmount   decimal.Decimal
	MonthlyLimit  decimal.Decimal
	SurchargeRate decimal.Decimal
}

func (in inversionInputs) totalRate() decimal.Decimal {
	return in.IncomeTaxRate.Add(in.SocialRate).Add(in.HealthRate)
}

func (in inversionInputs) contributionRate() decimal.Decimal {
	return in.SocialRate.Add(in.HealthRate)
}

// floorContributions is the social and health amount due at the floor
func (in inversionInputs) floorContributions() decimal.Decimal {
	return in.Floor.Mul(in.contributionRate())
}

func (in inversionInputs) boundaries() boundaries {
	return boundaries{Floor: in.Floor, Exemption: in.Exemption, Limit: in.MonthlyLimit}
}

// inversionCase is one closed-form branch of the piecewise tax function.
// Solve reports false when the branch degenerates for the given rates.
type inversionCase struct {
	Name              string
	Region            Region
	RequiresExemption bool
	Solve             func(in inversionInputs) (decimal.Decimal, bool)
}

var one = decimal.NewFromInt(1)

func div(num, den decimal.Decimal) (decimal.Decimal, bool) {
	if den.IsZero() {
		return decimal.Zero, false
	}
	return num.Div(den), true
}

// netCases invert net = profit - tax, tried in order
var netCases = []inversionCase{
	{
		Name:   "unconstrained",
		Region: Region{Floor: atOrAbove, Exemption: atOrAbove},
		Solve: func(in inversionInputs) (decimal.Decimal, bool) {
			num := in.Target.Sub(in.Exemption.Mul(in.IncomeTaxRate))
			return div(num, one.Sub(in.totalRate()))
		},
	},
	{
		Name:              "exempt",
		Region:            Region{Floor: atOrAbove, Exemption: atOrBelow},
		RequiresExemption: true,
		Solve: func(in inversionInputs) (decimal.Decimal, bool) {
			return div(in.Target, one.Sub(in.contributionRate()))
		},
	},
	{
		Name:              "exempt-floor",
		Region:            Region{Floor: atOrBelow, Exemption: atOrBelow},
		RequiresExemption: true,
		Solve: func(in inversionInputs) (decimal.Decimal, bool) {
			return in.Target.Add(in.floorContributions()), true
		},
	},
	{
		Name:   "floor",
		Region: Region{Floor: atOrBelow, Exemption: atOrAbove},
		Solve: func(in inversionInputs) (decimal.Decimal, bool) {
			num := in.Target.Sub(in.Exemption.Mul(in.IncomeTaxRate)).Add(in.floorContributions())
			return div(num, one.Sub(in.IncomeTaxRate))
		},
	},
}

// totalTaxCases invert the tax total, tried in order
var totalTaxCases = []inversionCase{
	{
		Name:   "unconstrained",
		Region: Region{Floor: atOrAbove, Exemption: atOrAbove},
		Solve: func(in inversionInputs) (decimal.Decimal, bool) {
			return div(in.Target.Add(in.Exemption.Mul(in.IncomeTaxRate)), in.totalRate())
		},
	},
	{
		Name:              "exempt",
		Region:            Region{Floor: atOrAbove, Exemption: atOrBelow},
		RequiresExemption: true,
		Solve: func(in inversionInputs) (decimal.Decimal, bool) {
			return div(in.Target, in.contributionRate())
		},
	},
	{
		Name:   "floor",
		Region: Region{Floor: atOrBelow, Exemption: atOrAbove},
		Solve: func(in inversionInputs) (decimal.Decimal, bool) {
			p, ok := div(in.Target.Sub(in.floorContributions()), in.IncomeTaxRate)
			return in.Exemption.Add(p), ok
		},
	},
	{
		// tax is constant here, so only a target below the floor
		// contributions lands in this branch
		Name:   "floor-only",
		Region: Region{Floor: atOrBelow, Exemption: atOrBelow},
		Solve: func(in inversionInputs) (decimal.Decimal, bool) {
			return in.Target.Sub(in.floorContributions()), true
		},
	},
}

// fixedTaxNetCases invert net = revenue - fixed - surcharge
var fixedTaxNetCases = []inversionCase{
	{
		Name:   "below-limit",
		Region: Region{Limit: atOrBelow},
		Solve: func(in inversionInputs) (decimal.Decimal, bool) {
			return in.Target.Add(in.FixedAmount), true
		},
	},
	{
		Name:   "above-limit",
		Region: Region{Limit: atOrAbove},
		Solve: func(in inversionInputs) (decimal.Decimal, bool) {
			num := in.Target.Add(in.FixedAmount).Sub(in.MonthlyLimit.Mul(in.SurchargeRate))
			return div(num, one.Sub(in.SurchargeRate))
		},
	},
}
