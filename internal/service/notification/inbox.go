package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/netroncoso/presupuestador/internal/domain"
	"github.com/netroncoso/presupuestador/pkg/ctxutil"
)

// List returns the caller's notifications, newest first.
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.Notification, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = DefaultLimit
	}

	items, err := s.notifications.List(ctx, userID, domain.NotificationFilter{
		Unread:   input.Unread,
		BudgetID: input.BudgetID,
		Limit:    limit,
		Offset:   input.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return items, nil
}

// CountUnread returns the number of unread notifications of the caller.
func (s *Service) CountUnread(ctx context.Context) (int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return 0, domain.ErrUnauthorized
	}

	n, err := s.notifications.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	return n, nil
}

// MarkRead marks one of the caller's notifications as read.
func (s *Service) MarkRead(ctx context.Context, input MarkReadInput) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return err
	}

	if err := s.notifications.MarkRead(ctx, userID, input.NotificationID); err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	return nil
}

// MarkAllRead marks every unread notification of the caller as read.
func (s *Service) MarkAllRead(ctx context.Context) (int64, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return 0, domain.ErrUnauthorized
	}

	n, err := s.notifications.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("mark all read: %w", err)
	}

	s.log.InfoContext(ctx, "notifications marked read",
		slog.String("user_id", userID.String()),
		slog.Int64("count", n),
	)
	return n, nil
}
