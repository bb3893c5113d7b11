package compare

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rgehrsitz/evtax/internal/config"
	"github.com/rgehrsitz/evtax/internal/domain"
	"github.com/rgehrsitz/evtax/internal/solver"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *CompareEngine {
	return NewCompareEngine(solver.NewDefaultSolver(config.Default2026()))
}

func TestCompare_RevenueMode(t *testing.T) {
	set, err := newTestEngine().Compare(context.Background(), Request{
		Mode:                domain.ModeRevenue,
		Amount:              decimal.NewFromInt(1000000),
		ExpenseRatioPercent: decimal.NewFromInt(20),
	})
	require.NoError(t, err)

	require.Len(t, set.Results, 3)
	assert.Equal(t, domain.RegimeFixedTax, set.Recommended)
	assert.Equal(t, 2026, set.FiscalYear)

	flat, ok := set.Find(domain.RegimeFlatRate)
	require.True(t, ok)
	require.NotNil(t, flat.Result)
	assert.True(t, flat.Result.Request.ExpenseRatioPercent.Equal(decimal.NewFromInt(45)), "defaults to the first flat-rate option")
	assert.True(t, flat.NetDiffFromBest.IsNegative())

	fixed, _ := set.Find(domain.RegimeFixedTax)
	assert.True(t, fixed.NetDiffFromBest.IsZero())
	assert.True(t, fixed.Result.Net.Sub(decimal.NewFromFloat(945833.33)).Abs().LessThan(decimal.NewFromFloat(0.01)))

	require.NotEmpty(t, set.Recommendations)
	assert.Contains(t, set.Recommendations[0], "Fixed tax leaves the highest net income")
}

func TestCompare_NetMode(t *testing.T) {
	set, err := newTestEngine().Compare(context.Background(), Request{
		Mode:   domain.ModeNet,
		Amount: decimal.NewFromInt(300000),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.RegimeFixedTax, set.Recommended)
	for _, r := range set.Evaluated() {
		assert.True(t, r.RevenueDiffFromBest.GreaterThanOrEqual(decimal.Zero), r.Regime)
		assert.True(t, r.Result.Net.Sub(decimal.NewFromInt(300000)).Abs().LessThan(decimal.NewFromFloat(0.01)), r.Regime)
	}
	assert.Contains(t, set.Recommendations[0], "needs the least revenue")
}

func TestCompare_TotalTaxSkipsFixedTax(t *testing.T) {
	set, err := newTestEngine().Compare(context.Background(), Request{
		Mode:   domain.ModeTotalTax,
		Amount: decimal.NewFromInt(200000),
	})
	require.NoError(t, err)

	fixed, ok := set.Find(domain.RegimeFixedTax)
	require.True(t, ok)
	assert.Nil(t, fixed.Result)
	assert.Contains(t, fixed.Skipped, "total tax mode is not available")
	assert.NotEqual(t, domain.RegimeFixedTax, set.Recommended)
	assert.Len(t, set.Evaluated(), 2)
}

func TestCompare_IneligibleFlatRate(t *testing.T) {
	set, err := newTestEngine().Compare(context.Background(), Request{
		Mode:                 domain.ModeRevenue,
		Amount:               decimal.NewFromInt(3500000),
		FlatRateRatioPercent: decimal.NewFromInt(80),
	})
	require.NoError(t, err)

	flat, _ := set.Find(domain.RegimeFlatRate)
	assert.False(t, flat.Eligible)
	assert.NotEqual(t, domain.RegimeFlatRate, set.Recommended)

	found := false
	for _, rec := range set.Recommendations {
		if strings.Contains(rec, "Flat-rate is not available") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCompare_InvalidInput(t *testing.T) {
	_, err := newTestEngine().Compare(context.Background(), Request{Mode: domain.ModeNet})
	require.Error(t, err)
	assert.ErrorIs(t, err, solver.ErrInvalidInput)
}

func TestFormatters(t *testing.T) {
	set, err := newTestEngine().Compare(context.Background(), Request{
		Mode:   domain.ModeTotalTax,
		Amount: decimal.NewFromInt(250000),
	})
	require.NoError(t, err)

	t.Run("table", func(t *testing.T) {
		out := (&TableFormatter{}).Format(set)
		assert.Contains(t, out, "REGIME COMPARISON, FISCAL YEAR 2026")
		assert.Contains(t, out, set.Recommended.DisplayName()+" *")
		assert.Contains(t, out, "RECOMMENDATIONS")
		assert.Contains(t, out, "COMPARISON TO RECOMMENDED")
	})

	t.Run("json", func(t *testing.T) {
		out, err := (&JSONFormatter{Pretty: true}).Format(set)
		require.NoError(t, err)
		var decoded map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		assert.Equal(t, string(set.Recommended), decoded["recommended"])
		assert.Len(t, decoded["results"], 3)
	})

	t.Run("csv", func(t *testing.T) {
		out, err := (&CSVFormatter{}).Format(set)
		require.NoError(t, err)
		records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 4)
		assert.Equal(t, "Regime", records[0][0])
		for _, rec := range records[1:] {
			assert.Len(t, rec, len(records[0]))
		}
	})
}
