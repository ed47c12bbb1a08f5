package versioning

import (
	"github.com/google/uuid"

	"github.com/netroncoso/presupuestador/internal/domain"
)

// CreateVersionInput asks for a new version of the case SourceID belongs to.
// Confirmed must be set to fork a budget that is not a draft.
type CreateVersionInput struct {
	SourceID  uuid.UUID
	ActorID   uuid.UUID
	Confirmed bool
}

// Validate checks all fields and collects all errors.
func (i CreateVersionInput) Validate() error {
	var errs []domain.FieldError
	if i.SourceID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "source_id", Message: "required"})
	}
	if i.ActorID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "actor_id", Message: "required"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// VersionResult reports what CreateNewVersion did.
//
// When Created is false and RequiresConfirmation is false the source is
// still a draft and BudgetID/Version point at it. When RequiresConfirmation
// is true nothing was written; CurrentStatus and CurrentVersion describe the
// source the caller has to confirm superseding.
type VersionResult struct {
	Created              bool
	RequiresConfirmation bool
	BudgetID             uuid.UUID
	Version              int
	CurrentStatus        domain.Status
	CurrentVersion       int
}
