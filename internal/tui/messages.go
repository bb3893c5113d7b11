package tui

import (
	"github.com/rgehrsitz/evtax/internal/solver"
)

// Step is one screen of the calculation wizard
type Step int

const (
	StepRegime Step = iota
	StepExpenseRatio
	StepWageFloor
	StepMode
	StepAmount
	StepResult
)

// String returns a human-readable name for a step
func (s Step) String() string {
	switch s {
	case StepRegime:
		return "Regime"
	case StepExpenseRatio:
		return "Expense ratio"
	case StepWageFloor:
		return "Wage floor"
	case StepMode:
		return "Known amount"
	case StepAmount:
		return "Amount"
	case StepResult:
		return "Result"
	default:
		return "Unknown"
	}
}

// Message types for the Bubble Tea update cycle

// SolvedMsg carries the outcome of a solve started from the amount step
type SolvedMsg struct {
	Result *solver.Result
	Err    error
}

// RecordedMsg reports a usage event that could not be stored
type RecordedMsg struct {
	Err error
}
