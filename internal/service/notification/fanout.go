package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/netroncoso/presupuestador/internal/domain"
)

// Notify writes every target of one transition, each in its own short
// transaction. A role target reaches all active members of the role. A failed
// target does not stop the rest; the failures are joined into the returned
// error.
func (s *Service) Notify(ctx context.Context, targets []domain.NotificationTarget) error {
	if len(targets) == 0 {
		return nil
	}

	for i, t := range targets {
		if err := validateTarget(t); err != nil {
			return fmt.Errorf("notification target %d: %w", i, err)
		}
	}

	var (
		written int64
		errs    []error
	)
	for i, t := range targets {
		err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
			n, err := s.notifications.Insert(txCtx, t)
			if err != nil {
				return err
			}
			written += n
			return nil
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("target %d: %w", i, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("notify: %w", errors.Join(errs...))
	}

	s.log.DebugContext(ctx, "notifications written",
		slog.String("budget_id", targets[0].BudgetID.String()),
		slog.Int("targets", len(targets)),
		slog.Int64("rows", written),
	)
	return nil
}

func validateTarget(t domain.NotificationTarget) error {
	switch {
	case t.UserID != nil && t.Role != "":
		return domain.NewValidationError("target", "user and role are mutually exclusive")
	case t.UserID == nil && t.Role == "":
		return domain.NewValidationError("target", "user or role required")
	case t.Role != "" && !t.Role.IsValid():
		return domain.NewValidationError("role", "unknown role")
	case t.Message == "":
		return domain.NewValidationError("message", "required")
	}
	return nil
}
