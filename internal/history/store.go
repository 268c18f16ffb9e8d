package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"kiln/internal/config"
)

// Invocation is one recorded command dispatch.
type Invocation struct {
	ID            string
	Command       string
	Arguments     []string
	Directory     string
	ExitCode      int
	ClientFailure bool
	Duration      time.Duration
	CreatedAt     time.Time
}

// Store persists invocation history backed by SQLite.
type Store struct {
	db         *sql.DB
	path       string
	maxEntries int
}

// Open initializes or connects to the history database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.HistoryDBPath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, maxEntries: cfg.History.MaxEntries}
	if err := store.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) migrate(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS invocations (
    id TEXT PRIMARY KEY,
    command TEXT NOT NULL,
    arguments TEXT NOT NULL,
    directory TEXT NOT NULL,
    exit_code INTEGER NOT NULL,
    client_failure INTEGER NOT NULL DEFAULT 0,
    duration_ms INTEGER NOT NULL,
    created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_invocations_created_at ON invocations(created_at);
`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Record inserts one invocation and prunes entries beyond the configured
// maximum, oldest first.
func (s *Store) Record(ctx context.Context, inv Invocation) error {
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = time.Now().UTC()
	}
	argsJSON, err := json.Marshal(inv.Arguments)
	if err != nil {
		return fmt.Errorf("encode arguments: %w", err)
	}

	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO invocations (
            id, command, arguments, directory, exit_code,
            client_failure, duration_ms, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID,
		inv.Command,
		string(argsJSON),
		inv.Directory,
		inv.ExitCode,
		boolToInt(inv.ClientFailure),
		inv.Duration.Milliseconds(),
		inv.CreatedAt.UTC().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert invocation: %w", err)
	}

	return s.prune(ctx)
}

func (s *Store) prune(ctx context.Context) error {
	if s.maxEntries < 1 {
		return nil
	}
	_, err := s.db.ExecContext(
		ctx,
		`DELETE FROM invocations WHERE id NOT IN (
            SELECT id FROM invocations ORDER BY created_at DESC, id DESC LIMIT ?
        )`,
		s.maxEntries,
	)
	if err != nil {
		return fmt.Errorf("prune invocations: %w", err)
	}
	return nil
}

// Recent returns up to limit invocations, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Invocation, error) {
	if limit < 1 {
		limit = s.maxEntries
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, command, arguments, directory, exit_code,
            client_failure, duration_ms, created_at
        FROM invocations ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query invocations: %w", err)
	}
	defer rows.Close()

	var out []Invocation
	for rows.Next() {
		var (
			inv        Invocation
			argsJSON   string
			failure    int
			durationMS int64
			createdAt  int64
		)
		if err := rows.Scan(&inv.ID, &inv.Command, &argsJSON, &inv.Directory,
			&inv.ExitCode, &failure, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("scan invocation: %w", err)
		}
		if err := json.Unmarshal([]byte(argsJSON), &inv.Arguments); err != nil {
			return nil, fmt.Errorf("decode arguments for %s: %w", inv.ID, err)
		}
		inv.ClientFailure = failure != 0
		inv.Duration = time.Duration(durationMS) * time.Millisecond
		inv.CreatedAt = time.Unix(0, createdAt).UTC()
		out = append(out, inv)
	}
	return out, rows.Err()
}

// Count returns the number of stored invocations.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM invocations`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count invocations: %w", err)
	}
	return count, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
