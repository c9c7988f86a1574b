package domain

import (
	"fmt"
	"strings"
)

// FieldError represents a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates field-level failures for one request.
type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Error())
	}
	return strings.Join(msgs, "; ")
}

// NewMissingFieldError reports a required field that was absent or blank.
func NewMissingFieldError(field string) FieldError {
	return FieldError{Field: field, Message: "is required"}
}

// NewInvalidFormatError reports a field whose value has the wrong shape.
func NewInvalidFormatError(field string, value interface{}) FieldError {
	return FieldError{Field: field, Message: fmt.Sprintf("has invalid format: %v", value)}
}

// NewOutOfRangeError reports a numeric field outside its allowed range.
func NewOutOfRangeError(field string, value, min, max int) FieldError {
	return FieldError{Field: field, Message: fmt.Sprintf("must be between %d and %d, got %d", min, max, value)}
}
