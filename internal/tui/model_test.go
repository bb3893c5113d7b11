package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/evtax/internal/config"
	"github.com/rgehrsitz/evtax/internal/domain"
	"github.com/rgehrsitz/evtax/internal/solver"
	"github.com/rgehrsitz/evtax/internal/stats"
)

type memRecorder struct {
	events []*stats.Event
	err    error
}

func (r *memRecorder) Record(_ context.Context, e *stats.Event) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, e)
	return nil
}

func (r *memRecorder) Summary(context.Context) (*stats.Summary, error) { return &stats.Summary{}, nil }
func (r *memRecorder) Close() error                                     { return nil }

func newTestModel() (Model, *memRecorder) {
	rec := &memRecorder{}
	return NewModel(solver.NewDefaultSolver(config.Default2026()), rec, "tester"), rec
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send feeds msgs through Update and returns the final model and command
func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m, cmd
}

// runSolve executes the solve command and feeds its message back
func runSolve(t *testing.T, m Model, cmd tea.Cmd) (Model, tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	solved, ok := msg.(SolvedMsg)
	require.True(t, ok, "expected SolvedMsg, got %T", msg)
	return send(t, m, solved)
}

func TestInit_RecordsStart(t *testing.T) {
	m, rec := newTestModel()

	cmd := m.Init()
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())

	require.Len(t, rec.events, 1)
	assert.Equal(t, stats.EventStart, rec.events[0].Type)
	assert.Equal(t, "tester", rec.events[0].UserID)
}

func TestWizard_FlatRateFlow(t *testing.T) {
	m, rec := newTestModel()
	assert.Equal(t, StepRegime, m.Step())

	// regimes are listed fixed tax, flat-rate, standard
	m, _ = send(t, m, down, enter)
	assert.Equal(t, StepExpenseRatio, m.Step())
	assert.Equal(t, domain.RegimeFlatRate, m.Request().Regime)
	assert.False(t, m.isTextStep())

	m, _ = send(t, m, runes("2"))
	assert.Equal(t, StepWageFloor, m.Step())
	assert.True(t, m.Request().ExpenseRatioPercent.Equal(decimal.NewFromInt(80)))

	m, _ = send(t, m, enter)
	assert.Equal(t, StepMode, m.Step())
	assert.Equal(t, domain.WageFloorQualified, m.Request().WageFloor)
	assert.Len(t, m.options(), 3)

	m, _ = send(t, m, runes("1"))
	assert.Equal(t, StepAmount, m.Step())
	assert.Equal(t, domain.ModeRevenue, m.Request().Mode)

	m, cmd := send(t, m, runes("1 000 000 Ft"), enter)
	assert.Empty(t, m.InputError())
	assert.True(t, m.solving)

	m, cmd = runSolve(t, m, cmd)
	assert.Equal(t, StepResult, m.Step())
	require.NotNil(t, m.Result())
	assert.InDelta(t, 1000000, m.Result().Breakdown.Revenue.InexactFloat64(), 0.01)
	assert.Contains(t, m.View(), "FLAT-RATE")

	require.NotNil(t, cmd)
	assert.Nil(t, cmd())
	require.Len(t, rec.events, 1)
	assert.Equal(t, stats.EventCalc, rec.events[0].Type)
	assert.Equal(t, "flat_rate", rec.events[0].Regime)

	m, _ = send(t, m, runes("n"))
	assert.Equal(t, StepRegime, m.Step())
	assert.Nil(t, m.Result())
	assert.Equal(t, domain.SolveRequest{}, m.Request())
}

func TestWizard_StandardExpenseInput(t *testing.T) {
	m, _ := newTestModel()

	m, _ = send(t, m, runes("3"))
	require.Equal(t, StepExpenseRatio, m.Step())
	assert.True(t, m.isTextStep())

	m, _ = send(t, m, runes("abc"), enter)
	assert.Equal(t, StepExpenseRatio, m.Step())
	assert.Equal(t, "enter a number (for example: 30)", m.InputError())
	assert.Contains(t, m.View(), "for example: 30")

	m, _ = send(t, m, esc, runes("3"), runes("100"), enter)
	assert.Equal(t, StepExpenseRatio, m.Step())
	assert.Equal(t, "enter a number from 0 to 99", m.InputError())

	m, _ = send(t, m, esc, runes("3"), runes("30%"), enter)
	assert.Equal(t, StepWageFloor, m.Step())
	assert.True(t, m.Request().ExpenseRatioPercent.Equal(decimal.NewFromInt(30)))
	assert.Empty(t, m.InputError())
}

func TestWizard_FixedTaxSkipsRatioAndFloor(t *testing.T) {
	m, _ := newTestModel()

	m, _ = send(t, m, enter)
	assert.Equal(t, StepMode, m.Step())
	assert.Equal(t, domain.RegimeFixedTax, m.Request().Regime)

	opts := m.options()
	require.Len(t, opts, 2)
	assert.Equal(t, string(domain.ModeRevenue), opts[0].Value)
	assert.Equal(t, string(domain.ModeNet), opts[1].Value)

	m, cmd := send(t, m, runes("2"), runes("300000"), enter)
	assert.True(t, m.solving)
	assert.Contains(t, m.View(), "Calculating")

	m, _ = runSolve(t, m, cmd)
	require.Equal(t, StepResult, m.Step())
	assert.Equal(t, domain.RegimeFixedTax, m.Result().Breakdown.Regime)
	assert.InDelta(t, 300000, m.Result().Net.InexactFloat64(), 0.01)
}

func TestWizard_AmountValidation(t *testing.T) {
	m, _ := newTestModel()
	m, _ = send(t, m, enter, runes("1"))
	require.Equal(t, StepAmount, m.Step())

	m, cmd := send(t, m, runes("-5"), enter)
	assert.Nil(t, cmd)
	assert.Equal(t, "enter a positive number", m.InputError())
	assert.Equal(t, StepAmount, m.Step())
}

func TestWizard_BackNavigation(t *testing.T) {
	m, _ := newTestModel()

	m, _ = send(t, m, runes("2"), runes("1"))
	require.Equal(t, StepWageFloor, m.Step())

	m, _ = send(t, m, esc)
	assert.Equal(t, StepExpenseRatio, m.Step())
	assert.Equal(t, domain.RegimeFlatRate, m.Request().Regime)

	m, _ = send(t, m, esc)
	assert.Equal(t, StepRegime, m.Step())
	assert.Equal(t, domain.Regime(""), m.Request().Regime)

	_, cmd := send(t, m, esc)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestWizard_SolveErrorsAndRecordFailure(t *testing.T) {
	m, rec := newTestModel()
	rec.err = errors.New("disk full")

	m, _ = send(t, m, SolvedMsg{Err: errors.New("boom")})
	assert.Contains(t, m.View(), "boom")

	m, _ = send(t, m, esc)
	assert.Nil(t, m.err)

	m, _ = send(t, m, SolvedMsg{Err: &solver.SolveError{Operation: "validate_request", Message: "amount must be positive", Cause: solver.ErrInvalidInput}})
	assert.Nil(t, m.err)
	assert.Contains(t, m.InputError(), "amount must be positive")

	msg := m.recordCmd(stats.StartEvent("x", ""))()
	rm, ok := msg.(RecordedMsg)
	require.True(t, ok)
	m, _ = send(t, m, rm)
	assert.Contains(t, m.View(), "disk full")
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		err  error
	}{
		{"1000000", 1000000, nil},
		{"1 000 000", 1000000, nil},
		{"1,000,000 HUF", 1000000, nil},
		{"250000ft", 250000, nil},
		{"0", 0, errAmountPositive},
		{"-3", 0, errAmountPositive},
		{"lots", 0, errAmountFormat},
		{"", 0, errAmountFormat},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.NewFromInt(tt.want)), "got %s", got)
		})
	}
}

func TestParsePercent(t *testing.T) {
	got, err := ParsePercent("12,5 %")
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromFloat(12.5)))

	_, err = ParsePercent("99.99")
	assert.NoError(t, err)

	_, err = ParsePercent("100")
	assert.ErrorIs(t, err, errPercentRange)

	_, err = ParsePercent("x")
	assert.ErrorIs(t, err, errPercentFormat)
}
