// Package tracker holds the error taxonomy shared by the user and exercise
// subpackages. The route layer maps these to HTTP status codes.
package tracker

import (
	"fmt"
)

// ValidationError represents errors in request validation
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("validation error for field '%s' (value: %v): %s (caused by: %v)", e.Field, e.Value, e.Message, e.Cause)
	}
	return fmt.Sprintf("validation error for field '%s' (value: %v): %s", e.Field, e.Value, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// NewValidationErrorWithCause creates a new validation error with a cause
func NewValidationErrorWithCause(field string, value interface{}, message string, cause error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
		Cause:   cause,
	}
}

// NotFoundError represents a lookup for a record that does not exist
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %s not found", e.Resource, e.ID)
}

// NewNotFoundError creates an error for a missing record
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// StorageError represents errors related to storage operations
type StorageError struct {
	Operation string
	Resource  string
	Cause     error
}

func (e *StorageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("storage error during %s on %s (caused by: %v)", e.Operation, e.Resource, e.Cause)
	}
	return fmt.Sprintf("storage error during %s on %s", e.Operation, e.Resource)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError creates an error for storage failures
func NewStorageError(operation, resource string, cause error) *StorageError {
	return &StorageError{
		Operation: operation,
		Resource:  resource,
		Cause:     cause,
	}
}
