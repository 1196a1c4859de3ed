// Package history keeps a local SQLite log of tool invocations: which
// tool ran, with what arguments, and whether it succeeded. It is local
// observability only — never consulted for remote state.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"
)

// Invocation is one recorded tool call.
type Invocation struct {
	ID        string `json:"id"`
	Tool      string `json:"tool"`
	Args      string `json:"args"`
	OK        bool   `json:"ok"`
	Summary   string `json:"summary,omitempty"`
	CreatedAt string `json:"created_at"`
}

// Store wraps the invocation database.
type Store struct {
	db *sql.DB
}

// Open creates or opens the database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS invocations (
			id         TEXT PRIMARY KEY,
			tool       TEXT NOT NULL,
			args       TEXT NOT NULL DEFAULT '{}',
			ok         INTEGER NOT NULL,
			summary    TEXT,
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_invocations_tool ON invocations(tool);
		CREATE INDEX IF NOT EXISTS idx_invocations_created ON invocations(created_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("migrating history schema: %w", err)
	}
	return nil
}

// Record stores one invocation and returns its generated ID.
func (s *Store) Record(tool, args string, ok bool, summary string) (string, error) {
	id := ulid.Make().String()
	if args == "" {
		args = "{}"
	}
	_, err := s.db.Exec(
		`INSERT INTO invocations (id, tool, args, ok, summary, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, tool, args, boolToInt(ok), summary, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("recording invocation: %w", err)
	}
	return id, nil
}

// Recent returns the latest invocations, newest first.
func (s *Store) Recent(limit int) ([]Invocation, error) {
	return s.query(
		`SELECT id, tool, args, ok, COALESCE(summary, ''), created_at
		 FROM invocations ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
}

// RecentByTool returns the latest invocations of one tool, newest first.
func (s *Store) RecentByTool(tool string, limit int) ([]Invocation, error) {
	return s.query(
		`SELECT id, tool, args, ok, COALESCE(summary, ''), created_at
		 FROM invocations WHERE tool = ? ORDER BY created_at DESC, id DESC LIMIT ?`, tool, limit)
}

func (s *Store) query(q string, args ...any) ([]Invocation, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying invocations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Invocation
	for rows.Next() {
		var inv Invocation
		var ok int
		if err := rows.Scan(&inv.ID, &inv.Tool, &inv.Args, &ok, &inv.Summary, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning invocation: %w", err)
		}
		inv.OK = ok != 0
		out = append(out, inv)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
