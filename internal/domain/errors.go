package domain

import "fmt"

// ValidationError identifies the configuration field that failed validation
// and the constraint it broke, so an input layer can highlight the control.
type ValidationError struct {
	Field      string `json:"field"`
	Constraint string `json:"constraint"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Constraint)
}

// NewValidationError builds a ValidationError with a formatted constraint
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Constraint: fmt.Sprintf(format, args...)}
}
