package history

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Entry is a single recorded probe outcome.
type Entry struct {
	ID         int64
	Timestamp  time.Time
	Provider   string
	MaskedKey  string
	Outcome    string // "ok", "failed", "quota", "error"
	StatusCode int
	ModelCount int
}

// Store persists probe outcomes in a SQLite database.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the default history database location,
// ~/.local/state/keyprobe/history.db.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "state", "keyprobe", "history.db"), nil
}

// Open opens (and if needed creates) the history database at path.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS probes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp INTEGER NOT NULL,
		provider TEXT NOT NULL,
		masked_key TEXT NOT NULL,
		outcome TEXT NOT NULL,
		status_code INTEGER NOT NULL,
		model_count INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_probes_timestamp ON probes(timestamp);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record appends a probe outcome.
func (s *Store) Record(e Entry) error {
	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT INTO probes (timestamp, provider, masked_key, outcome, status_code, model_count)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		ts.Unix(), e.Provider, e.MaskedKey, e.Outcome, e.StatusCode, e.ModelCount,
	)
	if err != nil {
		return fmt.Errorf("failed to record probe: %w", err)
	}
	return nil
}

// Recent returns the most recent n entries, newest first.
func (s *Store) Recent(n int) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT id, timestamp, provider, masked_key, outcome, status_code, model_count
		 FROM probes ORDER BY timestamp DESC, id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts int64
		if err := rows.Scan(&e.ID, &ts, &e.Provider, &e.MaskedKey,
			&e.Outcome, &e.StatusCode, &e.ModelCount); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		e.Timestamp = time.Unix(ts, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Print writes the most recent n entries to w in a fixed-width layout.
func (s *Store) Print(w io.Writer, n int) error {
	entries, err := s.Recent(n)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, "No probes recorded yet")
		return nil
	}

	for _, e := range entries {
		fmt.Fprintf(w, "%s  %-7s %-12s %-7s status=%d models=%d\n",
			e.Timestamp.Format("2006-01-02 15:04:05"),
			e.Provider, e.MaskedKey, e.Outcome, e.StatusCode, e.ModelCount)
	}
	return nil
}
