// Package notification writes workflow notifications and serves the
// per-user inbox built from them.
package notification

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/netroncoso/presupuestador/internal/domain"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

type notificationRepo interface {
	Insert(ctx context.Context, t domain.NotificationTarget) (int64, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.NotificationFilter) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service fans notifications out to users and roles and exposes the inbox.
type Service struct {
	notifications notificationRepo
	tx            txManager
	log           *slog.Logger
}

// NewService creates a new notification service.
func NewService(
	log *slog.Logger,
	notifications notificationRepo,
	tx txManager,
) *Service {
	return &Service{
		notifications: notifications,
		tx:            tx,
		log:           log.With("service", "notification"),
	}
}
