package notification

import (
	"github.com/google/uuid"

	"github.com/netroncoso/presupuestador/internal/domain"
)

// ListInput holds the parameters for listing the caller's notifications.
type ListInput struct {
	Unread   *bool
	BudgetID *uuid.UUID
	Limit    int
	Offset   int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}
	if i.Limit > MaxLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "max 100"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// MarkReadInput holds the parameters for marking one notification read.
type MarkReadInput struct {
	NotificationID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i MarkReadInput) Validate() error {
	if i.NotificationID == uuid.Nil {
		return domain.NewValidationError("notification_id", "required")
	}
	return nil
}
