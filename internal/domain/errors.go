package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")
	ErrInvalidState  = errors.New("invalid state")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// ClaimConflictError is returned when a budget is already claimed by another
// actor. It names the holder so callers can decide to wait or escalate.
type ClaimConflictError struct {
	BudgetID   uuid.UUID
	HolderID   uuid.UUID
	HolderName string
}

func (e *ClaimConflictError) Error() string {
	if e.HolderName != "" {
		return fmt.Sprintf("budget %s is being reviewed by %s", e.BudgetID, e.HolderName)
	}
	return fmt.Sprintf("budget %s is being reviewed by %s", e.BudgetID, e.HolderID)
}

func (e *ClaimConflictError) Unwrap() error { return ErrConflict }
