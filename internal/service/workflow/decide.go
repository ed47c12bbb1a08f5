package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/netroncoso/presupuestador/internal/domain"
)

// decision describes one transition request. Every exported decision
// operation is a thin wrapper that fills it in.
type decision struct {
	action domain.Action
	input  DecisionInput

	requireComment bool
	destination    *domain.ReturnDestination
	allowed        []domain.ReturnDestination // nil accepts every valid destination
	externalRef    *string
	// from restricts the source status beyond what the table allows.
	from func(domain.Status) bool
}

// Approve accepts the budget and routes it to the loading queue.
func (s *Service) Approve(ctx context.Context, input DecisionInput) (domain.Budget, error) {
	return s.decide(ctx, decision{action: domain.ActionApprove, input: input})
}

// ApproveConditional accepts the budget with reservations. A comment is required.
func (s *Service) ApproveConditional(ctx context.Context, input DecisionInput) (domain.Budget, error) {
	return s.decide(ctx, decision{action: domain.ActionApproveConditional, input: input, requireComment: true})
}

// Reject closes the budget as rejected. A comment is required.
func (s *Service) Reject(ctx context.Context, input DecisionInput) (domain.Budget, error) {
	return s.decide(ctx, decision{action: domain.ActionReject, input: input, requireComment: true})
}

// Derive hands an administrative review over to provisioning.
func (s *Service) Derive(ctx context.Context, input DecisionInput) (domain.Budget, error) {
	return s.decide(ctx, decision{action: domain.ActionDerive, input: input})
}

// Escalate hands a provisioning review over to general management.
func (s *Service) Escalate(ctx context.Context, input DecisionInput) (domain.Budget, error) {
	return s.decide(ctx, decision{action: domain.ActionEscalate, input: input})
}

// Observe sends the budget back to its owner for corrections.
func (s *Service) Observe(ctx context.Context, input DecisionInput) (domain.Budget, error) {
	return s.decide(ctx, decision{action: domain.ActionObserve, input: input})
}

// reviewReturns are the tiers a general review can send a budget back to.
var reviewReturns = []domain.ReturnDestination{domain.DestinationAdministrative, domain.DestinationProvisioning}

// ReturnTo sends a budget under general review back to the administrative or
// provisioning tier.
func (s *Service) ReturnTo(ctx context.Context, input ReturnInput) (domain.Budget, error) {
	dest := input.Destination
	return s.decide(ctx, decision{
		action:      dest.Action(),
		input:       input.DecisionInput,
		destination: &dest,
		allowed:     reviewReturns,
		from:        domain.Status.IsInReview,
	})
}

// ReturnFromLoading sends a budget in loading back to its owner or to a
// review tier. A comment is required.
func (s *Service) ReturnFromLoading(ctx context.Context, input ReturnInput) (domain.Budget, error) {
	dest := input.Destination
	return s.decide(ctx, decision{
		action:         dest.Action(),
		input:          input.DecisionInput,
		requireComment: true,
		destination:    &dest,
		from:           func(st domain.Status) bool { return st == domain.StatusInLoading },
	})
}

// MarkLoaded closes a budget in loading, recording the reference it got in
// the external system. References are unique across budgets.
func (s *Service) MarkLoaded(ctx context.Context, input MarkLoadedInput) (domain.Budget, error) {
	ref := strings.TrimSpace(input.ExternalReference)
	return s.decide(ctx, decision{
		action:      domain.ActionMarkLoaded,
		input:       input.DecisionInput,
		externalRef: &ref,
	})
}

// Submit sends a draft or observed budget to administrative review. Only its
// owner may submit, and no claim is involved.
func (s *Service) Submit(ctx context.Context, input DecisionInput) (domain.Budget, error) {
	return s.decide(ctx, decision{action: domain.ActionSubmit, input: input})
}

// decide runs the shared transition procedure inside one transaction:
// lock, integrity, authorization, input rules, table lookup, update, audit.
func (s *Service) decide(ctx context.Context, d decision) (domain.Budget, error) {
	if err := d.input.Validate(); err != nil {
		return domain.Budget{}, err
	}

	actorID := d.input.ActorID
	comment := normalizeComment(d.input.Comment)

	var before, after domain.Budget
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		b, err := s.budgets.GetCurrentForUpdate(txCtx, d.input.BudgetID)
		if err != nil {
			return err
		}
		if err := b.CheckIntegrity(); err != nil {
			return fmt.Errorf("budget %s: %w", b.ID, err)
		}

		// Actions that need no claim are the owner's.
		if !d.action.RequiresClaim() {
			if b.OwnerID != actorID {
				return fmt.Errorf("budget %s is owned by another user: %w", b.ID, domain.ErrForbidden)
			}
		} else if !b.IsHeldBy(actorID) {
			return fmt.Errorf("budget %s is not claimed by caller: %w", b.ID, domain.ErrForbidden)
		}

		if err := s.checkInputs(txCtx, d, b, comment); err != nil {
			return err
		}

		to, ok := domain.Next(b.Status, d.action)
		if ok && d.from != nil {
			ok = d.from(b.Status)
		}
		if !ok {
			return fmt.Errorf("budget %s in %s: %w", b.ID, b.Status, domain.ErrInvalidState)
		}

		update := domain.StateUpdate{Status: to, ExternalReference: d.externalRef}
		if outcome, ok := domain.OutcomeFor(d.action); ok {
			update.AuditOutcome = &outcome
		}
		if d.action == domain.ActionSubmit {
			update.ClearOutcome = true
		}

		after, err = s.budgets.UpdateState(txCtx, b.ID, update)
		if err != nil {
			return fmt.Errorf("update budget: %w", err)
		}

		if _, err := s.audit.Append(txCtx, domain.AuditEntry{
			BudgetID:     b.ID,
			Version:      b.Version,
			ActorID:      &actorID,
			StatusBefore: b.Status,
			StatusAfter:  to,
			Comment:      comment,
		}); err != nil {
			return fmt.Errorf("audit %s: %w", d.action, err)
		}

		before = b
		return nil
	})
	if err != nil {
		return domain.Budget{}, fmt.Errorf("%s: %w", d.label(), err)
	}

	s.log.InfoContext(ctx, "budget transitioned",
		slog.String("budget_id", after.ID.String()),
		slog.String("action", string(d.action)),
		slog.String("from", string(before.Status)),
		slog.String("to", string(after.Status)),
		slog.String("actor_id", actorID.String()),
	)
	s.afterCommit(ctx, d.action, before, after, &actorID)
	return after, nil
}

func (s *Service) checkInputs(ctx context.Context, d decision, b domain.Budget, comment *string) error {
	if d.requireComment {
		if err := checkComment(comment, s.cfg.MinCommentLength); err != nil {
			return err
		}
	}

	if d.destination != nil {
		if !d.destination.IsValid() {
			return domain.NewValidationError("destination", "unknown destination")
		}
		if d.allowed != nil && !slices.Contains(d.allowed, *d.destination) {
			return domain.NewValidationError("destination", fmt.Sprintf("%s not allowed here", *d.destination))
		}
	}

	if d.externalRef != nil {
		if len([]rune(*d.externalRef)) < s.cfg.MinReferenceLength {
			return domain.NewValidationError("external_reference", fmt.Sprintf("min %d characters", s.cfg.MinReferenceLength))
		}
		exists, err := s.budgets.ExternalReferenceExists(ctx, *d.externalRef, b.ID)
		if err != nil {
			return fmt.Errorf("check external reference: %w", err)
		}
		if exists {
			return fmt.Errorf("external reference %q: %w", *d.externalRef, domain.ErrAlreadyExists)
		}
	}
	return nil
}

// label names the operation in error messages.
func (d decision) label() string {
	if d.destination != nil {
		return "return to " + string(*d.destination)
	}
	return strings.ReplaceAll(string(d.action), "_", " ")
}
