// Package validation checks engine inputs before any scoring or indexing.
package validation

import (
	"fmt"
	"strings"
)

// FieldError is a single validation failure at a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError carries every field failure found in one input record.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:")
	for _, fe := range e.Errors {
		sb.WriteString(fmt.Sprintf("\n  - %s: %s", fe.Field, fe.Message))
	}
	return sb.String()
}

// NewFieldError builds a ValidationError for a single field.
func NewFieldError(field, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message}}}
}
