package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal   ErrorCode = "INTERNAL_ERROR"
	CodeValidation ErrorCode = "VALIDATION_ERROR"
	CodeNotFound   ErrorCode = "NOT_FOUND"
	CodeConflict   ErrorCode = "CONFLICT"
	CodeAuth       ErrorCode = "AUTH_ERROR"
	CodeDependency ErrorCode = "DEPENDENCY_ERROR"

	// Auth specific errors
	CodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
	CodeTokenInvalid       ErrorCode = "TOKEN_INVALID"
	CodeTokenRevoked       ErrorCode = "TOKEN_REVOKED"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeUnverifiedAccount  ErrorCode = "UNVERIFIED_ACCOUNT"
	CodeNoValidSession     ErrorCode = "NO_VALID_SESSION"

	// Workflow specific errors
	CodeEmailTaken             ErrorCode = "EMAIL_TAKEN"
	CodeDuplicateStudent       ErrorCode = "DUPLICATE_STUDENT"
	CodeAlreadyPredicted       ErrorCode = "ALREADY_PREDICTED"
	CodeDatasetNotFound        ErrorCode = "DATASET_NOT_FOUND"
	CodeClassificationNotFound ErrorCode = "CLASSIFICATION_NOT_FOUND"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is/errors.As.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper constructors for common errors

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewValidationError(message string) *DomainError {
	return NewError(CodeValidation, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewAuthError(code ErrorCode, message string) *DomainError {
	return NewError(code, message, nil)
}

func NewDependencyError(message string, cause error) *DomainError {
	return NewError(CodeDependency, message, cause)
}

func NewEmailTakenError() *DomainError {
	return NewError(CodeEmailTaken, "This email is already taken", nil)
}

// NewInvalidCredentialsError collapses "no such email" and "wrong password"
// into a single message so the two cannot be distinguished by a caller.
func NewInvalidCredentialsError() *DomainError {
	return NewError(CodeInvalidCredentials, "Your password is incorrect or email doesn't exist", nil)
}

func NewUnverifiedAccountError() *DomainError {
	return NewError(CodeUnverifiedAccount, "Please check your email and confirm to log into your account", nil)
}

func NewDuplicateStudentError(studentID int) *DomainError {
	return NewError(CodeDuplicateStudent, fmt.Sprintf("Student %d already exists in the dataset", studentID), nil)
}

func NewAlreadyPredictedError(dataID int64) *DomainError {
	return NewError(CodeAlreadyPredicted, fmt.Sprintf("Dataset %d already predicted", dataID), nil)
}

func NewDatasetNotFoundError(dataID int64) *DomainError {
	return NewError(CodeDatasetNotFound, fmt.Sprintf("Dataset not found with ID: %d", dataID), nil)
}

func NewClassificationNotFoundError(classID int) *DomainError {
	return NewError(CodeClassificationNotFound, fmt.Sprintf("Classification not found for the predicted value: %d", classID), nil)
}
