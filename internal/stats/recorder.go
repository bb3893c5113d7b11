package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/rgehrsitz/evtax/internal/domain"
)

// EventType distinguishes session starts from completed calculations
type EventType string

const (
	EventStart EventType = "start"
	EventCalc  EventType = "calc"
)

// Event is one usage record
type Event struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	Type      EventType `json:"type"`
	Regime    string    `json:"regime,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// RegimeCount is the number of calculations for one regime
type RegimeCount struct {
	Regime string `json:"regime"`
	Count  int    `json:"count"`
}

// Summary aggregates usage overall and for the trailing week
type Summary struct {
	TotalUsers int           `json:"total_users"`
	TotalCalcs int           `json:"total_calcs"`
	WeekUsers  int           `json:"week_users"`
	WeekCalcs  int           `json:"week_calcs"`
	TopRegimes []RegimeCount `json:"top_regimes"`
}

// Recorder persists usage events
type Recorder interface {
	Record(ctx context.Context, e *Event) error
	Summary(ctx context.Context) (*Summary, error)
	Close() error
}

// NopRecorder discards events; used when no database is configured
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, *Event) error      { return nil }
func (NopRecorder) Summary(context.Context) (*Summary, error) { return &Summary{}, nil }
func (NopRecorder) Close() error                              { return nil }

// StartEvent builds a session start event
func StartEvent(userID, username string) *Event {
	return &Event{UserID: userID, Username: username, Type: EventStart}
}

// CalcEvent builds a calculation event for a solve request
func CalcEvent(userID, username string, req domain.SolveRequest) *Event {
	return &Event{
		UserID:   userID,
		Username: username,
		Type:     EventCalc,
		Regime:   string(req.Regime),
		Detail:   fmt.Sprintf("%s/%s/%s", req.Regime, req.Mode, req.Amount.StringFixed(0)),
	}
}

// Open returns a SQLite store for path, or a NopRecorder when path is empty
func Open(path string, excludedUsers []string) (Recorder, error) {
	if path == "" {
		return NopRecorder{}, nil
	}
	return NewSQLiteStore(SQLiteConfig{Path: path, ExcludedUsers: excludedUsers})
}
