// Package services provides the business layer between web handlers and storage.
package services

import (
	"errors"
	"fmt"
)

// Business logic errors indicating client mistakes (4xx responses).
var (
	// Validation errors (400 Bad Request).
	ErrInvalidRequest       = errors.New("invalid request")
	ErrInvalidStatus        = errors.New("invalid execution status")
	ErrInvalidSourceType    = errors.New("invalid source type")
	ErrInvalidGrantType     = errors.New("invalid grant type")
	ErrNameRequired         = errors.New("name is required")
	ErrMissingDefaultLocale = errors.New("localized text requires an 'en' entry")
	ErrInvalidSkillPackage  = errors.New("invalid skill package")
	ErrInvalidBackupArchive = errors.New("invalid backup archive")

	// Business logic conflicts (409 Conflict).
	ErrClientInactive     = errors.New("oauth client is inactive")
	ErrExecutionFinished  = errors.New("execution already finished")
	ErrSkillAlreadyExists = errors.New("skill already installed")
)

// ServiceError wraps service-level errors with additional context.
type ServiceError struct {
	Op      string // Operation name
	Code    string // Error code for API responses
	Message string // Human-readable message
	Err     error  // Underlying error
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func (e *ServiceError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// IsValidationError checks if an error should map to HTTP 400.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrInvalidSourceType) ||
		errors.Is(err, ErrInvalidGrantType) ||
		errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrMissingDefaultLocale) ||
		errors.Is(err, ErrInvalidSkillPackage) ||
		errors.Is(err, ErrInvalidBackupArchive)
}

// IsConflictError checks if an error should map to HTTP 409.
func IsConflictError(err error) bool {
	return errors.Is(err, ErrClientInactive) ||
		errors.Is(err, ErrExecutionFinished) ||
		errors.Is(err, ErrSkillAlreadyExists)
}

// NewValidationError creates a validation error with context.
func NewValidationError(op, code, message string, err error) *ServiceError {
	return &ServiceError{
		Op:      op,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
