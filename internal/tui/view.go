package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/evtax/internal/domain"
	"github.com/rgehrsitz/evtax/internal/output"
)

// View renders the current state of the wizard
func (m Model) View() string {
	var content string
	switch {
	case m.err != nil:
		content = m.renderError()
	case m.solving:
		content = SubtitleStyle.Render("Calculating...")
	case m.step == StepResult:
		content = m.renderResult()
	case m.isTextStep():
		content = m.renderText()
	default:
		content = m.renderChoice()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		content,
		"",
		m.renderHelp(),
	)
}

// renderTitleBar renders the application title and the choices made so far
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render(fmt.Sprintf("EVTAX - Sole-trader tax calculator %d", m.solver.Table.FiscalYear))

	crumbs := []string{m.step.String()}
	if m.req.Regime != "" {
		crumbs = append(crumbs, m.req.Regime.DisplayName())
	}
	if m.req.Regime != domain.RegimeFixedTax && m.step > StepExpenseRatio {
		crumbs = append(crumbs, "expenses "+m.req.ExpenseRatioPercent.String()+"%")
	}
	if m.req.WageFloor != "" {
		crumbs = append(crumbs, string(m.req.WageFloor)+" floor")
	}
	if m.req.Mode != "" {
		crumbs = append(crumbs, "known "+m.req.Mode.DisplayName())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		SubtitleStyle.Render(strings.Join(crumbs, " / ")),
	)
}

func (m Model) renderChoice() string {
	var sb strings.Builder
	sb.WriteString(PromptStyle.Render(m.prompt()))
	sb.WriteString("\n")

	for i, opt := range m.options() {
		line := fmt.Sprintf("%d. %s", i+1, opt.Label)
		if i == m.cursor {
			sb.WriteString(SelectedItemStyle.Render("> " + line))
		} else {
			sb.WriteString(UnselectedItemStyle.Render("  " + line))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m Model) renderText() string {
	var sb strings.Builder
	sb.WriteString(PromptStyle.Render(m.prompt()))
	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	if m.step == StepAmount && m.solver.Table.Currency != "" {
		sb.WriteString(" " + m.solver.Table.Currency)
	}
	sb.WriteString("\n")
	if m.inputErr != "" {
		sb.WriteString(ErrorStyle.Render(m.inputErr))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m Model) renderResult() string {
	text, err := output.ConsoleFormatter{}.Format(m.result)
	if err != nil {
		return ErrorStyle.Render(err.Error())
	}
	return ResultStyle.Render(strings.TrimRight(string(text), "\n"))
}

func (m Model) renderError() string {
	return ErrorStyle.Render("Error: "+m.err.Error()) + "\n" +
		SubtitleStyle.Render("press esc to continue")
}

// renderHelp renders the keyboard shortcuts for the current step
func (m Model) renderHelp() string {
	var bindings []key.Binding
	switch {
	case m.step == StepResult:
		bindings = []key.Binding{keys.New, keys.Back, keys.Quit}
	case m.isTextStep():
		bindings = []key.Binding{keys.Select, keys.Back}
	default:
		bindings = []key.Binding{keys.Up, keys.Down, keys.Select, keys.Back, keys.Quit}
	}

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, HelpKeyStyle.Render(h.Key)+" "+HelpDescStyle.Render(h.Desc))
	}
	return strings.Join(parts, " • ")
}
