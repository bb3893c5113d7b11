package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRegime(t *testing.T) {
	tests := []struct {
		input string
		want  Regime
	}{
		{"standard", RegimeStandard},
		{" EV ", RegimeStandard},
		{"flat-rate", RegimeFlatRate},
		{"atalany", RegimeFlatRate},
		{"fixed_tax", RegimeFixedTax},
		{"KATA", RegimeFixedTax},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRegime(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}

	_, err := ParseRegime("payroll")
	assert.Error(t, err)
	assert.False(t, Regime("payroll").Valid())
}

func TestParseInputMode(t *testing.T) {
	for input, want := range map[string]InputMode{
		"revenue":   ModeRevenue,
		"turnover":  ModeRevenue,
		"net":       ModeNet,
		"tax":       ModeTotalTax,
		"total-tax": ModeTotalTax,
	} {
		got, err := ParseInputMode(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseInputMode("gross")
	assert.Error(t, err)
}

func TestParseWageFloorChoice(t *testing.T) {
	got, err := ParseWageFloorChoice("")
	require.NoError(t, err)
	assert.Equal(t, WageFloorOrdinary, got)

	got, err = ParseWageFloorChoice("guaranteed")
	require.NoError(t, err)
	assert.Equal(t, WageFloorQualified, got)

	_, err = ParseWageFloorChoice("double")
	assert.Error(t, err)
}

func TestContributions(t *testing.T) {
	c := Contributions{
		IncomeTaxRate:          decimal.NewFromFloat(0.15),
		SocialContributionRate: decimal.NewFromFloat(0.13),
		HealthContributionRate: decimal.NewFromFloat(0.185),
		WageFloors: WageFloors{
			Ordinary:  decimal.NewFromInt(322800),
			Qualified: decimal.NewFromInt(373200),
		},
	}

	assert.True(t, c.TotalMarginalRate().Equal(decimal.NewFromFloat(0.465)))
	assert.True(t, c.ContributionRate().Equal(decimal.NewFromFloat(0.315)))
	assert.True(t, c.FloorBase(WageFloorQualified).Equal(decimal.NewFromInt(373200)))
	assert.True(t, c.FloorBase("").Equal(decimal.NewFromInt(322800)))

	social, health := c.MinimumContributions(decimal.NewFromInt(322800))
	assert.True(t, social.Equal(decimal.NewFromInt(41964)))
	assert.True(t, health.Equal(decimal.NewFromInt(59718)))
}

func TestParameterTable_Params(t *testing.T) {
	table := &ParameterTable{}

	for _, r := range AllRegimes {
		p := table.Params(r)
		require.NotNil(t, p)
		assert.Equal(t, r, p.Regime())
	}
	assert.Nil(t, table.Params("payroll"))
}

func TestSolveRequest_Helpers(t *testing.T) {
	req := SolveRequest{Regime: RegimeFlatRate, ExpenseRatioPercent: decimal.NewFromInt(80)}
	assert.True(t, req.ExpenseRatio().Equal(decimal.NewFromFloat(0.8)))
	assert.Equal(t, WageFloorOrdinary, req.EffectiveWageFloor())

	req.Regime = RegimeFixedTax
	assert.True(t, req.ExpenseRatio().IsZero())
}

func TestSolveRequest_WithDefaults(t *testing.T) {
	table := &ParameterTable{FlatRate: FlatRateParams{
		ExpenseRatioOptions: []decimal.Decimal{decimal.NewFromInt(45), decimal.NewFromInt(80)},
	}}

	req := SolveRequest{Regime: RegimeFlatRate}.WithDefaults(table)
	assert.True(t, req.ExpenseRatioPercent.Equal(decimal.NewFromInt(45)))

	req = SolveRequest{Regime: RegimeFlatRate, ExpenseRatioPercent: decimal.NewFromInt(80)}.WithDefaults(table)
	assert.True(t, req.ExpenseRatioPercent.Equal(decimal.NewFromInt(80)))

	req = SolveRequest{Regime: RegimeStandard}.WithDefaults(table)
	assert.True(t, req.ExpenseRatioPercent.IsZero())

	assert.True(t, (&ParameterTable{}).DefaultExpenseRatioPercent(RegimeFlatRate).IsZero())
}
