package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/evtax/internal/domain"
	"github.com/rgehrsitz/evtax/internal/output"
	"github.com/rgehrsitz/evtax/internal/solver"
	"github.com/rgehrsitz/evtax/internal/stats"
)

var (
	errPercentRange   = errors.New("enter a number from 0 to 99")
	errPercentFormat  = errors.New("enter a number (for example: 30)")
	errAmountPositive = errors.New("enter a positive number")
	errAmountFormat   = errors.New("enter a number (for example: 1000000)")
)

var hundred = decimal.NewFromInt(100)

// option is one selectable line in a choice step
type option struct {
	Label string
	Value string
}

// Model represents the entire wizard state
type Model struct {
	solver   *solver.Solver
	recorder stats.Recorder
	userID   string

	step    Step
	history []Step
	cursor  int
	input   textinput.Model

	req      domain.SolveRequest
	result   *solver.Result
	inputErr string
	err      error
	solving  bool

	width  int
	height int
}

// NewModel creates a new wizard. A nil recorder disables statistics.
func NewModel(s *solver.Solver, recorder stats.Recorder, userID string) Model {
	if recorder == nil {
		recorder = stats.NopRecorder{}
	}

	ti := textinput.New()
	ti.CharLimit = 20
	ti.Width = 24

	return Model{
		solver:   s,
		recorder: recorder,
		userID:   userID,
		step:     StepRegime,
		input:    ti,
		width:    80,
		height:   24,
	}
}

// Init records the session start (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return m.recordCmd(stats.StartEvent(m.userID, ""))
}

// Step returns the current wizard step
func (m Model) Step() Step { return m.step }

// Request returns the request assembled so far
func (m Model) Request() domain.SolveRequest { return m.req }

// Result returns the last computed result, if any
func (m Model) Result() *solver.Result { return m.result }

// InputError returns the validation message shown under the input, if any
func (m Model) InputError() string { return m.inputErr }

// options lists the choices for the current step
func (m Model) options() []option {
	table := m.solver.Table
	cur := table.Currency

	switch m.step {
	case StepRegime:
		opts := make([]option, 0, len(domain.AllRegimes))
		for _, r := range domain.AllRegimes {
			opts = append(opts, option{Label: r.DisplayName(), Value: string(r)})
		}
		return opts

	case StepExpenseRatio:
		if m.req.Regime != domain.RegimeFlatRate {
			return nil
		}
		opts := make([]option, 0, len(table.FlatRate.ExpenseRatioOptions))
		for _, pct := range table.FlatRate.ExpenseRatioOptions {
			opts = append(opts, option{Label: pct.String() + "%", Value: pct.String()})
		}
		return opts

	case StepWageFloor:
		floors := table.FlatRate.WageFloors
		if m.req.Regime == domain.RegimeStandard {
			floors = table.Standard.WageFloors
		}
		return []option{
			{Label: "Qualified work: floor " + output.FormatAmount(floors.Qualified, cur), Value: string(domain.WageFloorQualified)},
			{Label: "Ordinary work: floor " + output.FormatAmount(floors.Ordinary, cur), Value: string(domain.WageFloorOrdinary)},
		}

	case StepMode:
		opts := []option{
			{Label: "I know my revenue", Value: string(domain.ModeRevenue)},
			{Label: "I know my net income", Value: string(domain.ModeNet)},
		}
		if m.req.Regime != domain.RegimeFixedTax {
			opts = append(opts, option{Label: "I know my total tax", Value: string(domain.ModeTotalTax)})
		}
		return opts
	}
	return nil
}

// isTextStep reports whether the current step reads free text
func (m Model) isTextStep() bool {
	switch m.step {
	case StepAmount:
		return true
	case StepExpenseRatio:
		return m.req.Regime == domain.RegimeStandard
	}
	return false
}

// prompt returns the question shown for the current step
func (m Model) prompt() string {
	switch m.step {
	case StepRegime:
		return "Choose a tax regime:"
	case StepExpenseRatio:
		if m.req.Regime == domain.RegimeFlatRate {
			return "Choose the flat-rate expense ratio:"
		}
		return "Enter expenses as a percentage of revenue (0 if none):"
	case StepWageFloor:
		return "Does the activity require qualifications?"
	case StepMode:
		return "What do you know?"
	case StepAmount:
		switch m.req.Mode {
		case domain.ModeNet:
			return "Enter the desired monthly net income:"
		case domain.ModeTotalTax:
			return "Enter the monthly tax amount:"
		default:
			return "Enter the monthly revenue:"
		}
	}
	return ""
}

// ParsePercent reads an expense percentage typed by the user. A trailing
// percent sign and a decimal comma are accepted.
func ParsePercent(text string) (decimal.Decimal, error) {
	s := strings.TrimSpace(text)
	s = strings.ReplaceAll(s, "%", "")
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.ReplaceAll(s, " ", "")

	pct, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errPercentFormat
	}
	if pct.IsNegative() || pct.GreaterThanOrEqual(hundred) {
		return decimal.Zero, errPercentRange
	}
	return pct, nil
}

// ParseAmount reads a monetary amount typed by the user. Currency suffixes,
// spaces and thousands commas are ignored.
func ParseAmount(text string) (decimal.Decimal, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	for _, junk := range []string{"ft", "huf", " ", "\u00a0", ","} {
		s = strings.ReplaceAll(s, junk, "")
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errAmountFormat
	}
	if !amount.IsPositive() {
		return decimal.Zero, errAmountPositive
	}
	return amount, nil
}

// solveCmd returns a command that runs the solver for the assembled request
func (m Model) solveCmd() tea.Cmd {
	s := m.solver
	req := m.req
	return func() tea.Msg {
		res, err := s.Solve(context.Background(), req)
		return SolvedMsg{Result: res, Err: err}
	}
}

// recordCmd returns a command that stores a usage event
func (m Model) recordCmd(e *stats.Event) tea.Cmd {
	rec := m.recorder
	return func() tea.Msg {
		if err := rec.Record(context.Background(), e); err != nil {
			return RecordedMsg{Err: fmt.Errorf("failed to record usage: %w", err)}
		}
		return nil
	}
}
