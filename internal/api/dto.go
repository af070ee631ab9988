package api

import (
	"github.com/google/uuid"
	"github.com/rgehrsitz/retireright/internal/domain"
)

// ProjectionResponse is returned by POST /api/projections and GET /api/projections/{id}.
type ProjectionResponse struct {
	ID     *uuid.UUID              `json:"id,omitempty"`
	Name   string                  `json:"name,omitempty"`
	Config *domain.Configuration   `json:"config,omitempty"`
	Table  *domain.ProjectionTable `json:"table"`
}

// CompareRequest is the body of POST /api/compare.
type CompareRequest struct {
	Config       *domain.Configuration `json:"config"`
	Alternatives []string              `json:"alternatives"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
}
