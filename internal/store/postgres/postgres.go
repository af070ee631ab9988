// Package postgres implements store.Store on a pgx connection pool.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rgehrsitz/retireright/internal/domain"
	"github.com/rgehrsitz/retireright/internal/store"
)

// Store persists runs in a projection_runs table with JSONB payloads.
type Store struct {
	pool *pgxpool.Pool
}

var _ store.Store = (*Store)(nil)

// New connects to databaseURL and migrates the schema.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL not set")
	}
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close releases the pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS projection_runs (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			rules_version TEXT NOT NULL,
			years INTEGER NOT NULL,
			config JSONB NOT NULL,
			projection JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_projection_runs_created_at
			ON projection_runs(created_at DESC);
	`)
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
	_, err = s.pool.Exec(ctx, `
		INSERT INTO projection_runs (id, name, rules_version, years, config, projection, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, run.ID, run.Name, sum.RulesVersion, sum.Years, configJSON, tableJSON, run.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("run %s already exists", run.ID)
		}
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// GetRun loads a run by ID.
func (s *Store) GetRun(ctx context.Context, id uuid.UUID) (*store.SavedRun, error) {
	run := &store.SavedRun{ID: id}
	var configJSON, tableJSON []byte
	err := s.pool.QueryRow(ctx, `
		SELECT name, config, projection, created_at FROM projection_runs WHERE id = $1
	`, id).Scan(&run.Name, &configJSON, &tableJSON, &run.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	run.Config = &domain.Configuration{}
	if err := json.Unmarshal(configJSON, run.Config); err != nil {
		return nil, fmt.Errorf("failed to decode config for run %s: %w", id, err)
	}
	run.Table = &domain.ProjectionTable{}
	if err := json.Unmarshal(tableJSON, run.Table); err != nil {
		return nil, fmt.Errorf("failed to decode table for run %s: %w", id, err)
	}
	return run, nil
}

// ListRuns returns run summaries, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]store.RunSummary, error) {
	query := `SELECT id, name, rules_version, years, created_at FROM projection_runs ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	summaries := []store.RunSummary{}
	for rows.Next() {
		var sum store.RunSummary
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.RulesVersion, &sum.Years, &sum.CreatedAt); err != nil {
			return nil, err
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}
