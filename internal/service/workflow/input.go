package workflow

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/netroncoso/presupuestador/internal/domain"
)

// ClaimInput identifies the budget an actor wants to take.
type ClaimInput struct {
	BudgetID uuid.UUID
	ActorID  uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i ClaimInput) Validate() error {
	return validateIDs(i.BudgetID, i.ActorID)
}

// ClaimResult reports the outcome of a successful claim.
type ClaimResult struct {
	// AlreadyOwnedByCaller is true when the caller held the claim before the
	// call; nothing was changed.
	AlreadyOwnedByCaller bool
	Budget               domain.Budget
}

// ReleaseInput identifies a claim its holder gives back.
type ReleaseInput struct {
	BudgetID uuid.UUID
	ActorID  uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i ReleaseInput) Validate() error {
	return validateIDs(i.BudgetID, i.ActorID)
}

// DecisionInput carries the common parameters of every stage decision.
type DecisionInput struct {
	BudgetID uuid.UUID
	ActorID  uuid.UUID
	Comment  *string
}

// Validate checks all fields and collects all errors.
func (i DecisionInput) Validate() error {
	return validateIDs(i.BudgetID, i.ActorID)
}

// ReturnInput sends a budget back to an earlier stage.
type ReturnInput struct {
	DecisionInput
	Destination domain.ReturnDestination
}

// MarkLoadedInput closes a budget once it is entered in the external system.
type MarkLoadedInput struct {
	DecisionInput
	ExternalReference string
}

func validateIDs(budgetID, actorID uuid.UUID) error {
	var errs []domain.FieldError
	if budgetID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "budget_id", Message: "required"})
	}
	if actorID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "actor_id", Message: "required"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// normalizeComment trims whitespace. Returns nil if the result is empty.
func normalizeComment(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// checkComment enforces the minimum comment length, counted in runes.
func checkComment(comment *string, minLen int) error {
	if comment == nil {
		return domain.NewValidationError("comment", "required")
	}
	if utf8.RuneCountInString(*comment) < minLen {
		return domain.NewValidationError("comment", fmt.Sprintf("min %d characters", minLen))
	}
	return nil
}
