// Package workflow implements case claiming and the stage transitions of the
// budget approval pipeline.
package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/netroncoso/presupuestador/internal/config"
	"github.com/netroncoso/presupuestador/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type budgetRepo interface {
	GetCurrentForUpdate(ctx context.Context, id uuid.UUID) (domain.Budget, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Budget, error)
	UpdateState(ctx context.Context, id uuid.UUID, u domain.StateUpdate) (domain.Budget, error)
	ReleaseStale(ctx context.Context, cutoff time.Time) (int64, error)
	ExternalReferenceExists(ctx context.Context, ref string, exceptID uuid.UUID) (bool, error)
	ListCurrent(ctx context.Context, filter domain.BudgetFilter) ([]domain.Budget, error)
	ListLineage(ctx context.Context, lineageID uuid.UUID) ([]domain.Budget, error)
}

type auditRepo interface {
	Append(ctx context.Context, e domain.AuditEntry) (domain.AuditEntry, error)
	ListByLineage(ctx context.Context, lineageID uuid.UUID) ([]domain.AuditEntry, error)
	ListByActor(ctx context.Context, actorID uuid.UUID, limit int) ([]domain.AuditEntry, error)
}

type notifier interface {
	Notify(ctx context.Context, targets []domain.NotificationTarget) error
}

type publisher interface {
	Publish(ctx context.Context, change domain.StateChange)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service applies claims and decisions to budgets. Every operation runs in
// one transaction holding the budget row lock; notifications and state
// change events follow the commit.
type Service struct {
	budgets  budgetRepo
	audit    auditRepo
	notifier notifier
	events   publisher
	tx       txManager
	log      *slog.Logger
	cfg      config.WorkflowConfig
	now      func() time.Time
}

// NewService creates a new workflow service. It fails when the transition
// table is inconsistent.
func NewService(
	log *slog.Logger,
	budgets budgetRepo,
	audit auditRepo,
	notifier notifier,
	events publisher,
	tx txManager,
	cfg config.WorkflowConfig,
) (*Service, error) {
	if err := domain.ValidateTransitions(); err != nil {
		return nil, fmt.Errorf("invalid transition table: %w", err)
	}

	return &Service{
		budgets:  budgets,
		audit:    audit,
		notifier: notifier,
		events:   events,
		tx:       tx,
		log:      log.With("service", "workflow"),
		cfg:      cfg,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}
