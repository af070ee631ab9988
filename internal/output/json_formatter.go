package output

import (
	"encoding/json"

	"github.com/rgehrsitz/retireright/internal/domain"
)

// JSONFormatter emits the full projection table as indented JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(t *domain.ProjectionTable) ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}
