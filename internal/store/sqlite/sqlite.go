/*
Package sqlite provides a SQLite-backed implementation of store.Store.

Runs are stored as one row per run with the configuration and projection
table serialized to JSON. Rows are never updated; saving the same ID twice
is an error.

SQLite is opened in WAL mode so readers do not block the single writer.
Use ":memory:" for an in-memory database (tests and ephemeral servers).
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rgehrsitz/retireright/internal/domain"
	"github.com/rgehrsitz/retireright/internal/store"
)

// timeLayout keeps created_at lexically sortable.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store implements store.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ store.Store = (*Store)(nil)

// New creates a new SQLite store with the given database path.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// each connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS projection_runs (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		rules_version TEXT NOT NULL,
		years INTEGER NOT NULL,
		config_json TEXT NOT NULL,
		table_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_projection_runs_created_at
		ON projection_runs(created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveRun inserts a run.
func (s *Store) SaveRun(ctx context.Context, run *store.SavedRun) error {
	if err := store.Prepare(run); err != nil {
		return err
	}
	configJSON, err := json.Marshal(run.Config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	tableJSON, err := json.Marshal(run.Table)
	if err != nil {
		return fmt.Errorf("failed to marshal table: %w", err)
	}

	sum := store.Summarize(run)

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO projection_runs
		(id, name, rules_version, years, config_json, table_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID.String(),
		run.Name,
		sum.RulesVersion,
		sum.Years,
		string(configJSON),
		string(tableJSON),
		run.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("run %s already exists", run.ID)
		}
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// GetRun loads a run by ID.
func (s *Store) GetRun(ctx context.Context, id uuid.UUID) (*store.SavedRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var name, configJSON, tableJSON, createdAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT name, config_json, table_json, created_at
		FROM projection_runs WHERE id = ?
	`, id.String()).Scan(&name, &configJSON, &tableJSON, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	run := &store.SavedRun{ID: id, Name: name}
	if run.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("invalid created_at for run %s: %w", id, err)
	}
	run.Config = &domain.Configuration{}
	if err := json.Unmarshal([]byte(configJSON), run.Config); err != nil {
		return nil, fmt.Errorf("failed to decode config for run %s: %w", id, err)
	}
	run.Table = &domain.ProjectionTable{}
	if err := json.Unmarshal([]byte(tableJSON), run.Table); err != nil {
		return nil, fmt.Errorf("failed to decode table for run %s: %w", id, err)
	}
	return run, nil
}

// ListRuns returns run summaries, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]store.RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, name, rules_version, years, created_at
		FROM projection_runs ORDER BY created_at DESC, id
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	summaries := []store.RunSummary{}
	for rows.Next() {
		var (
			sum           store.RunSummary
			id, createdAt string
		)
		if err := rows.Scan(&id, &sum.Name, &sum.RulesVersion, &sum.Years, &createdAt); err != nil {
			return nil, err
		}
		if sum.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("invalid run id %q: %w", id, err)
		}
		if sum.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
			return nil, fmt.Errorf("invalid created_at for run %s: %w", id, err)
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}
