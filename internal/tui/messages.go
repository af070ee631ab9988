package tui

import (
	"github.com/rgehrsitz/retireright/internal/compare"
	"github.com/rgehrsitz/retireright/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneProjection Scene = iota
	SceneCompare
)

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneProjection:
		return "Projection"
	case SceneCompare:
		return "Compare"
	default:
		return "Unknown"
	}
}

// Message types for the Bubble Tea update cycle

// ConfigLoadedMsg signals configuration has been loaded
type ConfigLoadedMsg struct {
	Config *domain.Configuration
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ProjectionCompleteMsg carries a finished projection run
type ProjectionCompleteMsg struct {
	Table *domain.ProjectionTable
	Err   error
}

// ComparisonCompleteMsg carries a finished comparison
type ComparisonCompleteMsg struct {
	Set *compare.ComparisonSet
	Err error
}
