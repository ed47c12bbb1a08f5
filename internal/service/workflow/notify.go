package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/netroncoso/presupuestador/internal/domain"
)

// afterCommit runs the side effects of a committed change. They are
// advisory: a failure here is logged and never reaches the caller.
func (s *Service) afterCommit(ctx context.Context, action domain.Action, before, after domain.Budget, actorID *uuid.UUID) {
	// The caller's context may be cancelled right after commit.
	ctx = context.WithoutCancel(ctx)

	if targets := buildTargets(action, after); len(targets) > 0 {
		if err := s.notifier.Notify(ctx, targets); err != nil {
			s.log.WarnContext(ctx, "notification fan-out failed",
				slog.String("budget_id", after.ID.String()),
				slog.String("action", string(action)),
				slog.String("error", err.Error()),
			)
		}
	}

	s.events.Publish(ctx, domain.StateChange{
		BudgetID:  after.ID,
		LineageID: after.LineageID,
		Version:   after.Version,
		Action:    action,
		From:      before.Status,
		To:        after.Status,
		ActorID:   actorID,
		Count:     1,
		At:        s.now(),
	})
}

// buildTargets resolves the audience of a transition into addressed
// notifications.
func buildTargets(action domain.Action, b domain.Budget) []domain.NotificationTarget {
	audience := domain.AudienceFor(action, b.Status)
	if len(audience) == 0 {
		return nil
	}

	msg := message(action, b)
	targets := make([]domain.NotificationTarget, 0, len(audience))
	for _, r := range audience {
		t := domain.NotificationTarget{
			BudgetID: b.ID,
			Version:  b.Version,
			Category: r.Category,
			Message:  msg,
		}
		if r.Owner {
			owner := b.OwnerID
			t.UserID = &owner
		} else {
			t.Role = r.Role
		}
		targets = append(targets, t)
	}
	return targets
}

var actionVerbs = map[domain.Action]string{
	domain.ActionSubmit:                 "was submitted for review",
	domain.ActionApprove:                "was approved",
	domain.ActionApproveConditional:     "was approved with conditions",
	domain.ActionReject:                 "was rejected",
	domain.ActionObserve:                "has observations to address",
	domain.ActionDerive:                 "was derived to provisioning",
	domain.ActionEscalate:               "was escalated to general management",
	domain.ActionReturnToOwner:          "was returned to its owner",
	domain.ActionReturnToAdministrative: "was returned to administrative review",
	domain.ActionReturnToProvisioning:   "was returned to provisioning review",
	domain.ActionReturnToGeneral:        "was returned to general review",
	domain.ActionMarkLoaded:             "was loaded",
}

func message(action domain.Action, b domain.Budget) string {
	verb, ok := actionVerbs[action]
	if !ok {
		verb = "moved to " + string(b.Status)
	}
	if b.PatientName == "" {
		return fmt.Sprintf("Budget v%d %s", b.Version, verb)
	}
	return fmt.Sprintf("Budget for %s (v%d) %s", b.PatientName, b.Version, verb)
}
