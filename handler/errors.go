package handler

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a referenced parent entity is absent.
	ErrNotFound = errors.New("entity not found")
	// ErrUnauthorized is returned on access evaluator denial.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrConflict is returned on unique key violation for create/rename.
	ErrConflict = errors.New("entity already exists")
)

// ValidationError reports a bad or missing required field.
// Record is the 1-based position in the batch, 0 for single operations.
type ValidationError struct {
	Record int
	Field  string
}

func (e *ValidationError) Error() string {
	if e.Record > 0 {
		return fmt.Sprintf("record %v: field %v must not be empty", e.Record, e.Field)
	}
	return fmt.Sprintf("field %v must not be empty", e.Field)
}

// InvalidScopeError reports a reorder id outside the stated sibling set.
type InvalidScopeError struct {
	Scope string
	ID    uuid.UUID
}

func (e *InvalidScopeError) Error() string {
	return fmt.Sprintf("id %v does not belong to %v", e.ID, e.Scope)
}
