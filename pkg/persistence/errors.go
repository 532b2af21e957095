// Package persistence provides standardized error types for storage operations.
package persistence

import (
	"errors"
	"fmt"
)

// Sentinel errors every implementation returns for missing entities.
var (
	ErrConfigNotFound      = errors.New("platform config not found")
	ErrProviderNotFound    = errors.New("auth provider not found")
	ErrOAuthClientNotFound = errors.New("oauth client not found")
	ErrSourceNotFound      = errors.New("source not found")
	ErrWorkflowNotFound    = errors.New("workflow not found")
	ErrExecutionNotFound   = errors.New("workflow execution not found")
	ErrSkillNotFound       = errors.New("skill not found")
	ErrShortLinkNotFound   = errors.New("short link not found")

	// ErrAlreadyExists indicates an entity with the same identifier exists.
	ErrAlreadyExists = errors.New("entity already exists")
)

// StoreError wraps storage errors with the operation and entity context.
type StoreError struct {
	Op       string // Operation being performed ("GetByID", "Save", "Delete")
	Entity   string // Entity kind ("provider", "source", ...)
	EntityID string
	Err      error
}

func (e *StoreError) Error() string {
	if e.EntityID != "" {
		return fmt.Sprintf("%s operation failed for %s %s: %v", e.Op, e.Entity, e.EntityID, e.Err)
	}

	return fmt.Sprintf("%s operation failed for %s: %v", e.Op, e.Entity, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewStoreError creates a storage error with context.
func NewStoreError(op, entity, entityID string, err error) *StoreError {
	return &StoreError{
		Op:       op,
		Entity:   entity,
		EntityID: entityID,
		Err:      err,
	}
}

func IsProviderNotFound(err error) bool {
	return errors.Is(err, ErrProviderNotFound)
}

func IsOAuthClientNotFound(err error) bool {
	return errors.Is(err, ErrOAuthClientNotFound)
}

func IsSourceNotFound(err error) bool {
	return errors.Is(err, ErrSourceNotFound)
}

func IsWorkflowNotFound(err error) bool {
	return errors.Is(err, ErrWorkflowNotFound)
}

func IsExecutionNotFound(err error) bool {
	return errors.Is(err, ErrExecutionNotFound)
}

func IsSkillNotFound(err error) bool {
	return errors.Is(err, ErrSkillNotFound)
}

func IsShortLinkNotFound(err error) bool {
	return errors.Is(err, ErrShortLinkNotFound)
}

func IsNotFound(err error) bool {
	for _, target := range []error{
		ErrConfigNotFound,
		ErrProviderNotFound,
		ErrOAuthClientNotFound,
		ErrSourceNotFound,
		ErrWorkflowNotFound,
		ErrExecutionNotFound,
		ErrSkillNotFound,
		ErrShortLinkNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
