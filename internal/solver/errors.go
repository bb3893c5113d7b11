package solver

import "errors"

// Error kinds; compare with errors.Is
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnsupportedMode = errors.New("unsupported mode for regime")
)

// SolveError represents errors from the solver
type SolveError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *SolveError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *SolveError) Unwrap() error {
	return e.Cause
}

func invalidInput(op, msg string) error {
	return &SolveError{Operation: op, Message: msg, Cause: ErrInvalidInput}
}
