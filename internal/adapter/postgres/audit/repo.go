// Package audit implements the audit trail repository using PostgreSQL.
// Entries are append-only; the table rejects UPDATE and DELETE.
package audit

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/netroncoso/presupuestador/internal/adapter/postgres"
	"github.com/netroncoso/presupuestador/internal/domain"
)

// Repo provides audit persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new audit repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const entryColumns = `id, budget_id, version, actor_id, status_before, status_after, comment, created_at`

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

const appendSQL = `INSERT INTO audit_entries (budget_id, version, actor_id, status_before, status_after, comment)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + entryColumns

// Append records one transition and returns it with its id and timestamp.
func (r *Repo) Append(ctx context.Context, e domain.AuditEntry) (domain.AuditEntry, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	got, err := scanEntry(q.QueryRow(ctx, appendSQL,
		e.BudgetID, e.Version, e.ActorID, string(e.StatusBefore), string(e.StatusAfter), e.Comment,
	))
	if err != nil {
		return domain.AuditEntry{}, postgres.MapError(err, "audit_entry", e.BudgetID)
	}
	return got, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

const listByBudgetSQL = `SELECT ` + entryColumns + `
FROM audit_entries
WHERE budget_id = $1
ORDER BY id`

// ListByBudget returns the entries of one budget version in commit order.
func (r *Repo) ListByBudget(ctx context.Context, budgetID uuid.UUID) ([]domain.AuditEntry, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, listByBudgetSQL, budgetID)
	if err != nil {
		return nil, fmt.Errorf("list audit entries by budget: %w", err)
	}
	return collectEntries(rows)
}

const listByLineageSQL = `SELECT a.id, a.budget_id, a.version, a.actor_id, a.status_before, a.status_after, a.comment, a.created_at
FROM audit_entries a
JOIN budgets b ON b.id = a.budget_id
WHERE b.lineage_id = $1
ORDER BY a.id`

// ListByLineage returns the entries of every version of a lineage in commit order.
func (r *Repo) ListByLineage(ctx context.Context, lineageID uuid.UUID) ([]domain.AuditEntry, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, listByLineageSQL, lineageID)
	if err != nil {
		return nil, fmt.Errorf("list audit entries by lineage: %w", err)
	}
	return collectEntries(rows)
}

const listByActorSQL = `SELECT ` + entryColumns + `
FROM audit_entries
WHERE actor_id = $1
ORDER BY id DESC
LIMIT $2`

// ListByActor returns the most recent entries written by one actor, newest first.
func (r *Repo) ListByActor(ctx context.Context, actorID uuid.UUID, limit int) ([]domain.AuditEntry, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, listByActorSQL, actorID, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit entries by actor: %w", err)
	}
	return collectEntries(rows)
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanEntry(row pgx.Row) (domain.AuditEntry, error) {
	var (
		e             domain.AuditEntry
		before, after string
	)
	if err := row.Scan(&e.ID, &e.BudgetID, &e.Version, &e.ActorID, &before, &after, &e.Comment, &e.CreatedAt); err != nil {
		return domain.AuditEntry{}, err
	}
	e.StatusBefore = domain.Status(before)
	e.StatusAfter = domain.Status(after)
	return e, nil
}

func collectEntries(rows pgx.Rows) ([]domain.AuditEntry, error) {
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.AuditEntry, error) {
		return scanEntry(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan audit entries: %w", err)
	}
	return entries, nil
}
