package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/netroncoso/presupuestador/internal/domain"
)

// ClaimCase gives the actor exclusive ownership of a pending budget and moves
// it into review. Concurrent claimants of the same budget queue on the row
// lock; the first one wins and the rest see a ClaimConflictError naming the
// holder. Claiming a budget the caller already holds succeeds without change.
func (s *Service) ClaimCase(ctx context.Context, input ClaimInput) (ClaimResult, error) {
	if err := input.Validate(); err != nil {
		return ClaimResult{}, err
	}

	var (
		result ClaimResult
		before domain.Budget
	)
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		b, err := s.budgets.GetCurrentForUpdate(txCtx, input.BudgetID)
		if err != nil {
			return err
		}
		if err := b.CheckIntegrity(); err != nil {
			return fmt.Errorf("budget %s: %w", b.ID, err)
		}

		if b.IsClaimed() {
			if b.IsHeldBy(input.ActorID) {
				result = ClaimResult{AlreadyOwnedByCaller: true, Budget: b}
				return nil
			}
			return &domain.ClaimConflictError{
				BudgetID:   b.ID,
				HolderID:   *b.AssigneeID,
				HolderName: b.AssigneeName,
			}
		}

		to, ok := domain.Next(b.Status, domain.ActionClaim)
		if !ok {
			return fmt.Errorf("budget %s in %s cannot be claimed: %w", b.ID, b.Status, domain.ErrInvalidState)
		}

		now := s.now()
		after, err := s.budgets.UpdateState(txCtx, b.ID, domain.StateUpdate{
			Status:     to,
			AssigneeID: &input.ActorID,
			ClaimedAt:  &now,
		})
		if err != nil {
			return fmt.Errorf("update budget: %w", err)
		}

		if _, err := s.audit.Append(txCtx, domain.AuditEntry{
			BudgetID:     b.ID,
			Version:      b.Version,
			ActorID:      &input.ActorID,
			StatusBefore: b.Status,
			StatusAfter:  to,
		}); err != nil {
			return fmt.Errorf("audit claim: %w", err)
		}

		before = b
		result.Budget = after
		return nil
	})
	if err != nil {
		return ClaimResult{}, fmt.Errorf("claim case: %w", err)
	}

	if result.AlreadyOwnedByCaller {
		s.log.DebugContext(ctx, "budget already claimed by caller",
			slog.String("budget_id", input.BudgetID.String()),
			slog.String("actor_id", input.ActorID.String()),
		)
		return result, nil
	}

	s.log.InfoContext(ctx, "budget claimed",
		slog.String("budget_id", result.Budget.ID.String()),
		slog.String("actor_id", input.ActorID.String()),
		slog.String("status", string(result.Budget.Status)),
	)
	s.afterCommit(ctx, domain.ActionClaim, before, result.Budget, &input.ActorID)
	return result, nil
}

// ReleaseCase gives a claim back. The budget returns to the pending queue it
// was claimed from. Only the holder may release.
func (s *Service) ReleaseCase(ctx context.Context, input ReleaseInput) (domain.Budget, error) {
	return s.decide(ctx, decision{
		action: domain.ActionRelease,
		input:  DecisionInput{BudgetID: input.BudgetID, ActorID: input.ActorID},
	})
}
