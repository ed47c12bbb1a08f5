package workflow

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/netroncoso/presupuestador/internal/domain"
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500
)

// ListPendingForRole returns the queue a role works, oldest first. Branch
// narrows the queue when non-empty.
func (s *Service) ListPendingForRole(ctx context.Context, role domain.UserRole, branch string) ([]domain.Budget, error) {
	status, ok := domain.QueueStatus(role)
	if !ok {
		return nil, domain.NewValidationError("role", "role has no review queue")
	}

	budgets, err := s.budgets.ListCurrent(ctx, domain.BudgetFilter{
		Statuses: []domain.Status{status},
		Branch:   branch,
	})
	if err != nil {
		return nil, fmt.Errorf("list pending for %s: %w", role, err)
	}
	return budgets, nil
}

// ListInProgress returns the budgets the actor currently holds.
func (s *Service) ListInProgress(ctx context.Context, actorID uuid.UUID) ([]domain.Budget, error) {
	if actorID == uuid.Nil {
		return nil, domain.NewValidationError("actor_id", "required")
	}

	budgets, err := s.budgets.ListCurrent(ctx, domain.BudgetFilter{AssigneeID: &actorID})
	if err != nil {
		return nil, fmt.Errorf("list in progress: %w", err)
	}
	return budgets, nil
}

// History is every version of one case with its full audit trail.
type History struct {
	Versions []domain.Budget
	Entries  []domain.AuditEntry
}

// LineageHistory returns all versions of the lineage budgetID belongs to,
// oldest first, and their audit entries in commit order.
func (s *Service) LineageHistory(ctx context.Context, budgetID uuid.UUID) (History, error) {
	b, err := s.budgets.GetByID(ctx, budgetID)
	if err != nil {
		return History{}, fmt.Errorf("lineage history: %w", err)
	}

	versions, err := s.budgets.ListLineage(ctx, b.LineageID)
	if err != nil {
		return History{}, fmt.Errorf("lineage history: %w", err)
	}

	entries, err := s.audit.ListByLineage(ctx, b.LineageID)
	if err != nil {
		return History{}, fmt.Errorf("lineage history: %w", err)
	}

	return History{Versions: versions, Entries: entries}, nil
}

// ActorHistory returns the latest audit entries authored by actorID.
func (s *Service) ActorHistory(ctx context.Context, actorID uuid.UUID, limit int) ([]domain.AuditEntry, error) {
	if actorID == uuid.Nil {
		return nil, domain.NewValidationError("actor_id", "required")
	}
	switch {
	case limit < 0:
		return nil, domain.NewValidationError("limit", "must be non-negative")
	case limit == 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}

	entries, err := s.audit.ListByActor(ctx, actorID, limit)
	if err != nil {
		return nil, fmt.Errorf("actor history: %w", err)
	}
	return entries, nil
}
