package versioning

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/netroncoso/presupuestador/internal/domain"
)

// CreateNewVersion forks the current version of a case into a new draft.
//
// A draft source is returned as is unless the caller confirmed. Every other
// source, observed included, needs confirmation first. The fork locks the
// whole lineage, so concurrent creators get consecutive versions and exactly
// one row stays current.
func (s *Service) CreateNewVersion(ctx context.Context, input CreateVersionInput) (VersionResult, error) {
	if err := input.Validate(); err != nil {
		return VersionResult{}, err
	}

	var (
		result VersionResult
		source domain.Budget
	)
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		src, err := s.budgets.GetForUpdate(txCtx, input.SourceID)
		if err != nil {
			return err
		}
		if err := src.CheckIntegrity(); err != nil {
			return fmt.Errorf("budget %s: %w", src.ID, err)
		}
		if !src.IsCurrentVersion {
			return fmt.Errorf("budget %s is superseded: %w", src.ID, domain.ErrInvalidState)
		}

		if !input.Confirmed {
			if src.Status == domain.StatusDraft {
				result = VersionResult{BudgetID: src.ID, Version: src.Version}
				return nil
			}
			result = VersionResult{
				RequiresConfirmation: true,
				CurrentStatus:        src.Status,
				CurrentVersion:       src.Version,
			}
			return nil
		}

		lineage := src.LineageID
		if err := s.budgets.LockLineage(txCtx, lineage); err != nil {
			return fmt.Errorf("lock lineage: %w", err)
		}

		maxVersion, err := s.budgets.MaxVersion(txCtx, lineage)
		if err != nil {
			return fmt.Errorf("max version: %w", err)
		}

		if err := s.budgets.ClearCurrent(txCtx, lineage); err != nil {
			return fmt.Errorf("clear current: %w", err)
		}

		created, err := s.budgets.InsertVersion(txCtx, forkOf(src, maxVersion+1))
		if err != nil {
			return fmt.Errorf("insert version: %w", err)
		}

		if err := s.budgets.CopyLineItems(txCtx, src.ID, created.ID); err != nil {
			return fmt.Errorf("copy line items: %w", err)
		}

		actorID := input.ActorID
		if _, err := s.audit.Append(txCtx, domain.AuditEntry{
			BudgetID:     created.ID,
			Version:      created.Version,
			ActorID:      &actorID,
			StatusBefore: src.Status,
			StatusAfter:  created.Status,
		}); err != nil {
			return fmt.Errorf("audit new version: %w", err)
		}

		source = src
		result = VersionResult{Created: true, BudgetID: created.ID, Version: created.Version}
		return nil
	})
	if err != nil {
		return VersionResult{}, fmt.Errorf("create new version: %w", err)
	}
	if !result.Created {
		return result, nil
	}

	s.log.InfoContext(ctx, "budget version created",
		slog.String("budget_id", result.BudgetID.String()),
		slog.String("lineage_id", source.LineageID.String()),
		slog.Int("version", result.Version),
		slog.String("source_status", string(source.Status)),
	)
	s.events.Publish(context.WithoutCancel(ctx), domain.StateChange{
		BudgetID:  result.BudgetID,
		LineageID: source.LineageID,
		Version:   result.Version,
		Action:    domain.ActionNewVersion,
		From:      source.Status,
		To:        domain.StatusDraft,
		ActorID:   &input.ActorID,
		Count:     1,
		At:        s.now(),
	})
	return result, nil
}

// forkOf builds the new draft row. The claim and the audit outcome are not
// carried over.
func forkOf(src domain.Budget, version int) domain.Budget {
	parent := src.LineageID
	return domain.Budget{
		ID:               uuid.New(),
		ParentID:         &parent,
		LineageID:        src.LineageID,
		Version:          version,
		IsCurrentVersion: true,
		Status:           domain.StatusDraft,
		OwnerID:          src.OwnerID,
		PatientName:      src.PatientName,
		Branch:           src.Branch,
		TotalToInvoice:   src.TotalToInvoice,
		CostTotal:        src.CostTotal,
		Profitability:    src.Profitability,
	}
}
