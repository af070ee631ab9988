// Package store persists projection runs so they can be listed and
// reloaded later. Implementations live in the sqlite and postgres
// subpackages and share the Store interface defined here.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/retireright/internal/domain"
)

// ErrNotFound is returned when a run ID does not exist.
var ErrNotFound = errors.New("run not found")

// SavedRun is a configuration together with the table it produced.
type SavedRun struct {
	ID        uuid.UUID               `json:"id"`
	Name      string                  `json:"name"`
	CreatedAt time.Time               `json:"created_at"`
	Config    *domain.Configuration   `json:"config"`
	Table     *domain.ProjectionTable `json:"table"`
}

// RunSummary is the listing view of a saved run.
type RunSummary struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	RulesVersion string    `json:"rules_version"`
	Years        int       `json:"years"`
}

// Store persists projection runs.
type Store interface {
	// SaveRun assigns an ID and creation time when they are unset.
	SaveRun(ctx context.Context, run *SavedRun) error
	GetRun(ctx context.Context, id uuid.UUID) (*SavedRun, error)
	// ListRuns returns summaries newest first; limit <= 0 means all.
	ListRuns(ctx context.Context, limit int) ([]RunSummary, error)
	Close() error
}

// Prepare fills in the ID and timestamp of a run about to be saved.
func Prepare(run *SavedRun) error {
	if run == nil || run.Config == nil || run.Table == nil {
		return errors.New("run requires a configuration and a table")
	}
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	}
	return nil
}

// Summarize builds the listing view of a run.
func Summarize(run *SavedRun) RunSummary {
	return RunSummary{
		ID:           run.ID,
		Name:         run.Name,
		CreatedAt:    run.CreatedAt,
		RulesVersion: run.Table.RulesVersion,
		Years:        len(run.Table.Rows),
	}
}
