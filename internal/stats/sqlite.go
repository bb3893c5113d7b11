package stats

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const summaryWindow = 7 * 24 * time.Hour

// SQLiteConfig holds configuration for the SQLite store
type SQLiteConfig struct {
	Path string
	// ExcludedUsers are never recorded, typically the operators
	ExcludedUsers []string
	// Now overrides the clock; nil uses time.Now
	Now func() time.Time
}

// SQLiteStore implements Recorder using SQLite
type SQLiteStore struct {
	db       *sql.DB
	mu       sync.RWMutex
	excluded map[string]bool
	now      func() time.Time
}

// NewSQLiteStore creates a new SQLite-based usage store
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{
		db:       db,
		excluded: make(map[string]bool, len(cfg.ExcludedUsers)),
		now:      cfg.Now,
	}
	if store.now == nil {
		store.now = time.Now
	}
	for _, u := range cfg.ExcludedUsers {
		store.excluded[u] = true
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS stats_events (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		username TEXT,
		event TEXT NOT NULL,
		regime TEXT,
		detail TEXT,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_stats_events_event ON stats_events(event, created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record stores an event unless its user is excluded
func (s *SQLiteStore) Record(ctx context.Context, e *Event) error {
	if s.excluded[e.UserID] {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO stats_events (id, user_id, username, event, regime, detail, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.Username, string(e.Type), e.Regime, e.Detail, e.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to record event: %w", err)
	}
	return nil
}

// Summary counts users and calculations overall and within the last week.
// A user is anyone with at least one event of any type.
func (s *SQLiteStore) Summary(ctx context.Context) (*Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	since := s.now().Add(-summaryWindow).UnixMilli()
	sum := &Summary{}

	calc := string(EventCalc)
	counts := []struct {
		dst   *int
		query string
		args  []any
	}{
		{&sum.TotalUsers, `SELECT COUNT(DISTINCT user_id) FROM stats_events`, nil},
		{&sum.TotalCalcs, `SELECT COUNT(*) FROM stats_events WHERE event = ?`, []any{calc}},
		{&sum.WeekUsers, `SELECT COUNT(DISTINCT user_id) FROM stats_events WHERE created_at > ?`, []any{since}},
		{&sum.WeekCalcs, `SELECT COUNT(*) FROM stats_events WHERE event = ? AND created_at > ?`, []any{calc, since}},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("failed to query summary: %w", err)
		}
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT regime, COUNT(*) FROM stats_events
		 WHERE event = ? GROUP BY regime ORDER BY COUNT(*) DESC, regime LIMIT 5`, calc)
	if err != nil {
		return nil, fmt.Errorf("failed to query top regimes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rc RegimeCount
		var regime sql.NullString
		if err := rows.Scan(&regime, &rc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan top regimes: %w", err)
		}
		rc.Regime = regime.String
		sum.TopRegimes = append(sum.TopRegimes, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sum, nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
