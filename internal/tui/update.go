package tui

import (
	"errors"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/evtax/internal/domain"
	"github.com/rgehrsitz/evtax/internal/solver"
	"github.com/rgehrsitz/evtax/internal/stats"
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	New    key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	New:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new calculation")),
	Quit:   key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
}

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case SolvedMsg:
		m.solving = false
		if msg.Err != nil {
			if errors.Is(msg.Err, solver.ErrInvalidInput) {
				m.inputErr = msg.Err.Error()
				return m, nil
			}
			m.err = msg.Err
			return m, nil
		}
		m.result = msg.Result
		m.history = append(m.history, m.step)
		m.step = StepResult
		m.input.Blur()
		return m, m.recordCmd(stats.CalcEvent(m.userID, "", m.req))

	case RecordedMsg:
		m.err = msg.Err
		return m, nil
	}

	if m.isTextStep() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.solving {
		return m, nil
	}

	if key.Matches(msg, keys.Back) {
		if m.err != nil {
			m.err = nil
			return m, nil
		}
		if len(m.history) == 0 {
			return m, tea.Quit
		}
		return m, m.back()
	}

	if m.err != nil {
		if key.Matches(msg, keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case m.step == StepResult:
		return m.updateResult(msg)
	case m.isTextStep():
		return m.updateText(msg)
	default:
		return m.updateChoice(msg)
	}
}

func (m Model) updateChoice(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	opts := m.options()

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.cursor < len(opts)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, keys.Select):
		if m.cursor < len(opts) {
			return m, m.choose(opts[m.cursor])
		}
		return m, nil
	}

	// number keys pick an option directly
	if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= len(opts) {
		m.cursor = n - 1
		return m, m.choose(opts[n-1])
	}
	return m, nil
}

func (m Model) updateText(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type != tea.KeyEnter {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch m.step {
	case StepExpenseRatio:
		pct, err := ParsePercent(m.input.Value())
		if err != nil {
			m.inputErr = err.Error()
			return m, nil
		}
		m.req.ExpenseRatioPercent = pct
		return m, m.advance(StepWageFloor)

	case StepAmount:
		amount, err := ParseAmount(m.input.Value())
		if err != nil {
			m.inputErr = err.Error()
			return m, nil
		}
		m.req.Amount = amount
		m.inputErr = ""
		m.solving = true
		return m, m.solveCmd()
	}
	return m, nil
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.New), key.Matches(msg, keys.Select):
		m.reset()
	}
	return m, nil
}

// choose applies the selected option and moves to the next step
func (m *Model) choose(opt option) tea.Cmd {
	switch m.step {
	case StepRegime:
		regime := domain.Regime(opt.Value)
		m.req = domain.SolveRequest{Regime: regime}
		if regime == domain.RegimeFixedTax {
			return m.advance(StepMode)
		}
		return m.advance(StepExpenseRatio)

	case StepExpenseRatio:
		m.req.ExpenseRatioPercent = decimal.RequireFromString(opt.Value)
		return m.advance(StepWageFloor)

	case StepWageFloor:
		m.req.WageFloor = domain.WageFloorChoice(opt.Value)
		return m.advance(StepMode)

	case StepMode:
		m.req.Mode = domain.InputMode(opt.Value)
		return m.advance(StepAmount)
	}
	return nil
}

// advance records the current step in the history and shows the next one
func (m *Model) advance(next Step) tea.Cmd {
	m.history = append(m.history, m.step)
	return m.show(next)
}

// back returns to the previous step
func (m *Model) back() tea.Cmd {
	prev := m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	if prev == StepRegime {
		m.req = domain.SolveRequest{}
	}
	m.result = nil
	return m.show(prev)
}

func (m *Model) show(step Step) tea.Cmd {
	m.step = step
	m.cursor = 0
	m.inputErr = ""
	if !m.isTextStep() {
		m.input.Blur()
		return nil
	}

	m.input.SetValue("")
	if step == StepAmount {
		m.input.Placeholder = "e.g. 1000000"
	} else {
		m.input.Placeholder = "e.g. 30"
	}
	m.input.Focus()
	return textinput.Blink
}

// reset starts a new calculation
func (m *Model) reset() {
	m.req = domain.SolveRequest{}
	m.result = nil
	m.history = nil
	m.show(StepRegime)
}
