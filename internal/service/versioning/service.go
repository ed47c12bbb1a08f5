// Package versioning creates new versions of a budget case.
package versioning

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/netroncoso/presupuestador/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type budgetRepo interface {
	GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Budget, error)
	LockLineage(ctx context.Context, lineageID uuid.UUID) error
	MaxVersion(ctx context.Context, lineageID uuid.UUID) (int, error)
	ClearCurrent(ctx context.Context, lineageID uuid.UUID) error
	InsertVersion(ctx context.Context, b domain.Budget) (domain.Budget, error)
	CopyLineItems(ctx context.Context, fromID, toID uuid.UUID) error
}

type auditRepo interface {
	Append(ctx context.Context, e domain.AuditEntry) (domain.AuditEntry, error)
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

// Service forks budgets into new draft versions of the same lineage.
type Service struct {
	budgets budgetRepo
	audit   auditRepo
	events  publisher
	tx      txManager
	log     *slog.Logger
	now     func() time.Time
}

// NewService creates a new versioning service.
func NewService(
	log *slog.Logger,
	budgets budgetRepo,
	audit auditRepo,
	events publisher,
	tx txManager,
) *Service {
	return &Service{
		budgets: budgets,
		audit:   audit,
		events:  events,
		tx:      tx,
		log:     log.With("service", "versioning"),
		now:     func() time.Time { return time.Now().UTC() },
	}
}
