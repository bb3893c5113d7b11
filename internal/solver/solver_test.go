package solver

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rgehrsitz/evtax/internal/calculation"
	"github.com/rgehrsitz/evtax/internal/config"
	"github.com/rgehrsitz/evtax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSolver() *Solver {
	return NewDefaultSolver(config.Default2026())
}

func TestNewSolver(t *testing.T) {
	table := config.Default2026()
	opts := Options{Tolerance: decimal.NewFromInt(5), MaxIterations: 3}

	s := NewSolver(table, opts)

	require.NotNil(t, s)
	assert.Same(t, table, s.Table)
	assert.Equal(t, 3, s.Options.MaxIterations)
	assert.IsType(t, calculation.NopLogger{}, s.Logger)
}

func TestSolver_SetLogger(t *testing.T) {
	s := newTestSolver()

	custom := &TestLogger{}
	s.SetLogger(custom)
	assert.Equal(t, custom, s.Logger)

	s.SetLogger(nil)
	assert.IsType(t, calculation.NopLogger{}, s.Logger)
}

func TestSolve_ScenarioStandardNet(t *testing.T) {
	s := newTestSolver()
	logger := &TestLogger{}
	s.SetLogger(logger)

	res, err := s.Solve(context.Background(), domain.SolveRequest{
		Regime:    domain.RegimeStandard,
		Mode:      domain.ModeNet,
		Amount:    d(500000),
		WageFloor: domain.WageFloorOrdinary,
	})
	require.NoError(t, err)

	assert.True(t, res.Converged)
	assert.Equal(t, "unconstrained", res.Case)
	assertClose(t, d(500000), res.Net, cent)
	assertClose(t, decimal.NewFromFloat(4166.67), res.LocalTax.Monthly, cent)
	assertClose(t, decimal.NewFromFloat(942367.60), res.Breakdown.Revenue, cent)
	assertClose(t, res.Breakdown.Revenue.Sub(res.Net), res.TotalTax, cent)
	assert.False(t, res.Breakdown.FloorApplied)
	assert.True(t, res.HasWarning(domain.WarnVATExempt))
	assert.False(t, res.HasWarning(domain.WarnNotConverged))
	assert.NotZero(t, logger.count("INFO"))
}

func TestSolve_ScenarioFixedTaxRevenue(t *testing.T) {
	s := newTestSolver()

	res, err := s.Solve(context.Background(), domain.SolveRequest{
		Regime: domain.RegimeFixedTax,
		Mode:   domain.ModeRevenue,
		Amount: d(2000000),
	})
	require.NoError(t, err)

	assertClose(t, d(50000), res.Breakdown.FixedAmount, cent)
	assertClose(t, d(200000), res.Breakdown.Surcharge, cent)
	assertClose(t, d(250000), res.Breakdown.TotalTax, cent)
	assertClose(t, decimal.NewFromFloat(14166.67), res.LocalTax.Monthly, cent)
	assertClose(t, decimal.NewFromFloat(264166.67), res.TotalTax, cent)
	assertClose(t, decimal.NewFromFloat(1735833.33), res.Net, cent)
	assert.True(t, res.Breakdown.LimitExceeded)
	assert.True(t, res.HasWarning(domain.WarnFixedTaxLimit))
	assert.False(t, res.HasWarning(domain.WarnVATRegistration))
	assert.Equal(t, 0, res.Iterations)
}

func TestSolve_TotalTaxBelowFloorContributions(t *testing.T) {
	s := newTestSolver()

	res, err := s.Solve(context.Background(), domain.SolveRequest{
		Regime: domain.RegimeStandard,
		Mode:   domain.ModeTotalTax,
		Amount: d(50000),
	})
	require.NoError(t, err)

	assert.True(t, res.Breakdown.BelowViableRange)
	assert.True(t, res.Breakdown.Profit.IsZero())
	assert.True(t, res.HasWarning(domain.WarnBelowViableRange))
	assert.True(t, res.HasWarning(domain.WarnNegativeNet))
}

func TestSolve_Warnings(t *testing.T) {
	s := newTestSolver()

	tests := []struct {
		name string
		req  domain.SolveRequest
		want []domain.WarningCode
		not  []domain.WarningCode
	}{
		{
			name: "minimum contributions",
			req:  domain.SolveRequest{Regime: domain.RegimeStandard, Mode: domain.ModeNet, Amount: d(100000)},
			want: []domain.WarningCode{domain.WarnMinimumContribution, domain.WarnVATExempt},
			not:  []domain.WarningCode{domain.WarnNegativeNet},
		},
		{
			name: "negative net",
			req:  domain.SolveRequest{Regime: domain.RegimeStandard, Mode: domain.ModeRevenue, Amount: d(100000)},
			want: []domain.WarningCode{domain.WarnNegativeNet, domain.WarnMinimumContribution},
		},
		{
			name: "flat rate over limit",
			req: domain.SolveRequest{
				Regime: domain.RegimeFlatRate, Mode: domain.ModeRevenue,
				Amount: d(3500000), ExpenseRatioPercent: d(80),
			},
			want: []domain.WarningCode{domain.WarnFlatRateLimit, domain.WarnVATRegistration},
			not:  []domain.WarningCode{domain.WarnVATExempt},
		},
		{
			name: "fixed tax within limit",
			req:  domain.SolveRequest{Regime: domain.RegimeFixedTax, Mode: domain.ModeNet, Amount: d(1000000)},
			not:  []domain.WarningCode{domain.WarnFixedTaxLimit, domain.WarnMinimumContribution, domain.WarnVATExempt},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.Solve(context.Background(), tt.req)
			require.NoError(t, err)
			for _, code := range tt.want {
				assert.True(t, res.HasWarning(code), "expected warning %s", code)
			}
			for _, code := range tt.not {
				assert.False(t, res.HasWarning(code), "unexpected warning %s", code)
			}
		})
	}
}

func TestSolve_InvalidInput(t *testing.T) {
	s := newTestSolver()

	tests := []struct {
		name    string
		req     domain.SolveRequest
		wantErr error
	}{
		{"zero amount", domain.SolveRequest{Regime: domain.RegimeStandard, Mode: domain.ModeNet}, ErrInvalidInput},
		{"negative amount", domain.SolveRequest{Regime: domain.RegimeStandard, Mode: domain.ModeNet, Amount: d(-5)}, ErrInvalidInput},
		{"unknown regime", domain.SolveRequest{Regime: "payroll", Mode: domain.ModeNet, Amount: d(5)}, ErrInvalidInput},
		{"unknown mode", domain.SolveRequest{Regime: domain.RegimeStandard, Mode: "gross", Amount: d(5)}, ErrInvalidInput},
		{"ratio of 100", domain.SolveRequest{Regime: domain.RegimeFlatRate, Mode: domain.ModeNet, Amount: d(5), ExpenseRatioPercent: d(100)}, ErrInvalidInput},
		{"negative ratio", domain.SolveRequest{Regime: domain.RegimeStandard, Mode: domain.ModeNet, Amount: d(5), ExpenseRatioPercent: d(-1)}, ErrInvalidInput},
		{"unknown floor", domain.SolveRequest{Regime: domain.RegimeStandard, Mode: domain.ModeNet, Amount: d(5), WageFloor: "double"}, ErrInvalidInput},
		{"fixed tax total tax", domain.SolveRequest{Regime: domain.RegimeFixedTax, Mode: domain.ModeTotalTax, Amount: d(5)}, ErrUnsupportedMode},
		{"amount above maximum", domain.SolveRequest{Regime: domain.RegimeStandard, Mode: domain.ModeNet, Amount: MaxAmount.Add(d(1))}, ErrInvalidInput},
		{"huge exponent", domain.SolveRequest{Regime: domain.RegimeFixedTax, Mode: domain.ModeRevenue, Amount: decimal.RequireFromString("1e100000")}, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.Solve(context.Background(), tt.req)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.wantErr)

			var se *SolveError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, "validate_request", se.Operation)
		})
	}
}

func TestSolve_AmountAtMaximum(t *testing.T) {
	res, err := newTestSolver().Solve(context.Background(), domain.SolveRequest{
		Regime: domain.RegimeStandard, Mode: domain.ModeRevenue, Amount: MaxAmount,
	})
	require.NoError(t, err)
	assert.True(t, res.Breakdown.Revenue.Sub(MaxAmount).Abs().LessThan(decimal.NewFromFloat(0.01)))
}

func TestSolve_FixedTaxIgnoresRatioAndFloor(t *testing.T) {
	s := newTestSolver()

	res, err := s.Solve(context.Background(), domain.SolveRequest{
		Regime:              domain.RegimeFixedTax,
		Mode:                domain.ModeNet,
		Amount:              d(1000000),
		ExpenseRatioPercent: d(250),
		WageFloor:           "anything",
	})
	require.NoError(t, err)
	assertClose(t, d(1000000), res.Net, cent)
}

func TestSolve_NetRoundTrip(t *testing.T) {
	s := newTestSolver()

	for _, regime := range domain.AllRegimes {
		for _, target := range []int64{50000, 250000, 500000, 1000000, 2500000, 6000000} {
			req := domain.SolveRequest{Regime: regime, Mode: domain.ModeNet, Amount: d(target), ExpenseRatioPercent: d(40)}
			if regime == domain.RegimeFlatRate {
				req.ExpenseRatioPercent = d(80)
			}
			res, err := s.Solve(context.Background(), req)
			require.NoError(t, err)
			require.True(t, res.Converged, "%s %d", regime, target)
			assertClose(t, d(target), res.Net, cent, string(regime))

			// feeding the solved revenue back reproduces the same net
			back, err := s.Solve(context.Background(), domain.SolveRequest{
				Regime: regime, Mode: domain.ModeRevenue, Amount: res.Breakdown.Revenue,
				ExpenseRatioPercent: req.ExpenseRatioPercent,
			})
			require.NoError(t, err)
			assertClose(t, res.Net, back.Net, cent, string(regime), "revenue round trip")
		}
	}
}

func TestSolve_Idempotent(t *testing.T) {
	s := newTestSolver()
	req := domain.SolveRequest{Regime: domain.RegimeFlatRate, Mode: domain.ModeTotalTax, Amount: d(180000), ExpenseRatioPercent: d(45)}

	first, err := s.Solve(context.Background(), req)
	require.NoError(t, err)
	second, err := s.Solve(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, first.Breakdown.Revenue.Equal(second.Breakdown.Revenue))
	assert.True(t, first.Net.Equal(second.Net))
	assert.Equal(t, first.Iterations, second.Iterations)
	assert.Equal(t, first.Warnings, second.Warnings)
}

func TestSolve_Concurrent(t *testing.T) {
	s := newTestSolver()
	req := domain.SolveRequest{Regime: domain.RegimeStandard, Mode: domain.ModeNet, Amount: d(750000)}

	want, err := s.Solve(context.Background(), req)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*Result, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = s.Solve(context.Background(), req)
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		require.NotNil(t, r)
		assert.True(t, want.Net.Equal(r.Net))
	}
}

func TestSolve_Cancelled(t *testing.T) {
	s := newTestSolver()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Solve(ctx, domain.SolveRequest{Regime: domain.RegimeStandard, Mode: domain.ModeNet, Amount: d(1)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSolveError(t *testing.T) {
	err := &SolveError{Operation: "op", Message: "msg"}
	assert.Equal(t, "op: msg", err.Error())
	assert.Nil(t, err.Unwrap())

	wrapped := &SolveError{Operation: "op", Message: "msg", Cause: ErrInvalidInput}
	assert.Equal(t, "op: msg: invalid input", wrapped.Error())
	assert.ErrorIs(t, wrapped, ErrInvalidInput)
}
