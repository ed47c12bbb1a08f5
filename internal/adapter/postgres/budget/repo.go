// Package budget implements the budget record store using PostgreSQL.
// Every version of a budget is its own row; lineage_id groups them.
package budget

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/netroncoso/presupuestador/internal/adapter/postgres"
	"github.com/netroncoso/presupuestador/internal/domain"
)

// psql is the squirrel builder configured for PostgreSQL placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides budget persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new budget repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const budgetColumns = `b.id, b.parent_id, b.lineage_id, b.version, b.is_current_version, b.status,
	b.assignee_id, COALESCE((SELECT u.username FROM users u WHERE u.id = b.assignee_id), ''),
	b.assignee_claimed_at, b.owner_id, b.patient_name, b.branch, b.audit_outcome,
	b.external_reference, b.total_to_invoice, b.cost_total, b.profitability,
	b.created_at, b.updated_at`

// ---------------------------------------------------------------------------
// Locked reads
// ---------------------------------------------------------------------------

const getCurrentForUpdateSQL = `SELECT ` + budgetColumns + `
FROM budgets b
WHERE b.id = $1 AND b.is_current_version
FOR UPDATE OF b`

// GetCurrentForUpdate reads a current-version budget and locks its row until
// the surrounding transaction ends. Concurrent callers on the same row block.
func (r *Repo) GetCurrentForUpdate(ctx context.Context, id uuid.UUID) (domain.Budget, error) {
	tx, err := postgres.TxFromCtx(ctx)
	if err != nil {
		return domain.Budget{}, fmt.Errorf("budget %s: %w", id, err)
	}

	b, err := scanBudget(tx.QueryRow(ctx, getCurrentForUpdateSQL, id))
	if err != nil {
		return domain.Budget{}, postgres.MapError(err, "budget", id)
	}
	return b, nil
}

const getForUpdateSQL = `SELECT ` + budgetColumns + `
FROM budgets b
WHERE b.id = $1
FOR UPDATE OF b`

// GetForUpdate reads any version of a budget and locks its row.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Budget, error) {
	tx, err := postgres.TxFromCtx(ctx)
	if err != nil {
		return domain.Budget{}, fmt.Errorf("budget %s: %w", id, err)
	}

	b, err := scanBudget(tx.QueryRow(ctx, getForUpdateSQL, id))
	if err != nil {
		return domain.Budget{}, postgres.MapError(err, "budget", id)
	}
	return b, nil
}

const lockLineageSQL = `SELECT id FROM budgets WHERE lineage_id = $1 ORDER BY version FOR UPDATE`

// LockLineage locks every version of a lineage. Version creation takes this
// lock so two creators cannot compute the same next version.
func (r *Repo) LockLineage(ctx context.Context, lineageID uuid.UUID) error {
	tx, err := postgres.TxFromCtx(ctx)
	if err != nil {
		return fmt.Errorf("lineage %s: %w", lineageID, err)
	}

	rows, err := tx.Query(ctx, lockLineageSQL, lineageID)
	if err != nil {
		return postgres.MapError(err, "lineage", lineageID)
	}
	rows.Close()
	return postgres.MapError(rows.Err(), "lineage", lineageID)
}

// ---------------------------------------------------------------------------
// Plain reads
// ---------------------------------------------------------------------------

const getByIDSQL = `SELECT ` + budgetColumns + ` FROM budgets b WHERE b.id = $1`

// GetByID returns a budget version by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Budget, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b, err := scanBudget(q.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return domain.Budget{}, postgres.MapError(err, "budget", id)
	}
	return b, nil
}

const listLineageSQL = `SELECT ` + budgetColumns + `
FROM budgets b
WHERE b.lineage_id = $1
ORDER BY b.version`

// ListLineage returns every version of a lineage, oldest first.
func (r *Repo) ListLineage(ctx context.Context, lineageID uuid.UUID) ([]domain.Budget, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listLineageSQL, lineageID)
	if err != nil {
		return nil, fmt.Errorf("list lineage %s: %w", lineageID, err)
	}
	return collectBudgets(rows)
}

// ListCurrent returns current-version budgets matching filter, oldest first.
func (r *Repo) ListCurrent(ctx context.Context, filter domain.BudgetFilter) ([]domain.Budget, error) {
	qb := psql.Select(budgetColumns).
		From("budgets b").
		Where("b.is_current_version").
		OrderBy("b.created_at", "b.id")

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		qb = qb.Where(sq.Eq{"b.status": statuses})
	}
	if filter.AssigneeID != nil {
		qb = qb.Where(sq.Eq{"b.assignee_id": *filter.AssigneeID})
	}
	if filter.Branch != "" {
		qb = qb.Where(sq.Eq{"b.branch": filter.Branch})
	}
	if filter.Limit > 0 {
		qb = qb.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		qb = qb.Offset(uint64(filter.Offset))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list budgets query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	return collectBudgets(rows)
}

const countByStatusSQL = `SELECT status, count(*) FROM budgets WHERE is_current_version GROUP BY status`

// CountByStatus returns the number of current-version budgets per status.
func (r *Repo) CountByStatus(ctx context.Context) (map[domain.Status]int, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, countByStatusSQL)
	if err != nil {
		return nil, fmt.Errorf("count budgets by status: %w", err)
	}
	defer rows.Close()

	out := make(map[domain.Status]int)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		out[domain.Status(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count budgets by status: %w", err)
	}
	return out, nil
}

const externalReferenceExistsSQL = `SELECT EXISTS(
	SELECT 1 FROM budgets WHERE external_reference = $1 AND id <> $2
)`

// ExternalReferenceExists reports whether another budget already carries ref.
func (r *Repo) ExternalReferenceExists(ctx context.Context, ref string, exceptID uuid.UUID) (bool, error) {
	var exists bool
	err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, externalReferenceExistsSQL, ref, exceptID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check external reference: %w", err)
	}
	return exists, nil
}

// ---------------------------------------------------------------------------
// Workflow writes
// ---------------------------------------------------------------------------

const updateStateSQL = `UPDATE budgets b SET
	status              = $2,
	assignee_id         = $3,
	assignee_claimed_at = $4,
	audit_outcome       = CASE WHEN $5 THEN NULL ELSE COALESCE($6, b.audit_outcome) END,
	external_reference  = COALESCE($7, b.external_reference),
	updated_at          = now()
WHERE b.id = $1
RETURNING ` + budgetColumns

// UpdateState writes the workflow columns of one budget and returns the row.
func (r *Repo) UpdateState(ctx context.Context, id uuid.UUID, u domain.StateUpdate) (domain.Budget, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var outcome *string
	if u.AuditOutcome != nil {
		s := string(*u.AuditOutcome)
		outcome = &s
	}

	b, err := scanBudget(q.QueryRow(ctx, updateStateSQL,
		id, string(u.Status), u.AssigneeID, u.ClaimedAt, u.ClearOutcome, outcome, u.ExternalReference,
	))
	if err != nil {
		return domain.Budget{}, postgres.MapError(err, "budget", id)
	}
	return b, nil
}

// ReleaseStale returns every claim taken before cutoff to its pending queue
// and records one system audit entry per released budget. Rows locked by an
// in-flight transition are skipped and picked up by the next sweep.
// It returns the number of released budgets.
func (r *Repo) ReleaseStale(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args := releaseStaleQuery(domain.ReleaseTargets, cutoff)

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("release stale claims: %w", err)
	}
	return tag.RowsAffected(), nil
}

// releaseStaleQuery builds the sweep statement from the release table:
//
//	pending status = CASE status WHEN <claimed> THEN <pending> ... END
func releaseStaleQuery(targets map[domain.Status]domain.Status, cutoff time.Time) (string, []any) {
	claimed := make([]domain.Status, 0, len(targets))
	for from := range targets {
		claimed = append(claimed, from)
	}
	slices.Sort(claimed)

	var (
		cases strings.Builder
		args  []any
		names []string
	)
	for _, from := range claimed {
		args = append(args, string(from), string(targets[from]))
		fmt.Fprintf(&cases, " WHEN $%d THEN $%d", len(args)-1, len(args))
		names = append(names, string(from))
	}
	args = append(args, names, cutoff)
	statusesArg := len(args) - 1
	cutoffArg := len(args)

	query := fmt.Sprintf(`WITH stale AS (
	SELECT id, status FROM budgets
	WHERE assignee_id IS NOT NULL
	  AND assignee_claimed_at < $%[3]d
	  AND status = ANY($%[2]d)
	FOR UPDATE SKIP LOCKED
), released AS (
	UPDATE budgets b SET
		status = CASE b.status%[1]s ELSE b.status END,
		assignee_id = NULL,
		assignee_claimed_at = NULL,
		updated_at = now()
	FROM stale
	WHERE b.id = stale.id
	RETURNING b.id, b.version, stale.status AS status_before, b.status AS status_after
)
INSERT INTO audit_entries (budget_id, version, actor_id, status_before, status_after, comment)
SELECT id, version, NULL, status_before, status_after, 'auto-release' FROM released`,
		cases.String(), statusesArg, cutoffArg)

	return query, args
}

// ---------------------------------------------------------------------------
// Versioning writes
// ---------------------------------------------------------------------------

const maxVersionSQL = `SELECT COALESCE(MAX(version), 0) FROM budgets WHERE lineage_id = $1`

// MaxVersion returns the highest version number in a lineage.
func (r *Repo) MaxVersion(ctx context.Context, lineageID uuid.UUID) (int, error) {
	var v int
	err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, maxVersionSQL, lineageID).Scan(&v)
	if err != nil {
		return 0, postgres.MapError(err, "lineage", lineageID)
	}
	return v, nil
}

const clearCurrentSQL = `UPDATE budgets SET is_current_version = FALSE, updated_at = now()
WHERE lineage_id = $1 AND is_current_version`

// ClearCurrent flips every version of a lineage to not-current.
func (r *Repo) ClearCurrent(ctx context.Context, lineageID uuid.UUID) error {
	_, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, clearCurrentSQL, lineageID)
	if err != nil {
		return postgres.MapError(err, "lineage", lineageID)
	}
	return nil
}

const insertVersionSQL = `INSERT INTO budgets AS b (
	id, parent_id, version, is_current_version, status, owner_id, patient_name, branch,
	total_to_invoice, cost_total, profitability
) VALUES ($1, $2, $3, TRUE, $4, $5, $6, $7, $8, $9, $10)
RETURNING ` + budgetColumns

// InsertVersion inserts b as the current, unclaimed version of its lineage.
// b.ParentID must point at the lineage root.
func (r *Repo) InsertVersion(ctx context.Context, b domain.Budget) (domain.Budget, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	out, err := scanBudget(q.QueryRow(ctx, insertVersionSQL,
		b.ID, b.ParentID, b.Version, string(b.Status), b.OwnerID, b.PatientName, b.Branch,
		b.TotalToInvoice, b.CostTotal, b.Profitability,
	))
	if err != nil {
		return domain.Budget{}, postgres.MapError(err, "budget", b.ID)
	}
	return out, nil
}

const (
	copySuppliesSQL = `INSERT INTO budget_supplies (budget_id, product, quantity, cost, price_to_invoice)
SELECT $2, product, quantity, cost, price_to_invoice FROM budget_supplies WHERE budget_id = $1 ORDER BY id`

	copyServicesSQL = `INSERT INTO budget_services (budget_id, service_code, name, quantity, assigned_value, invoice_value)
SELECT $2, service_code, name, quantity, assigned_value, invoice_value FROM budget_services WHERE budget_id = $1 ORDER BY id`

	copyEquipmentSQL = `INSERT INTO budget_equipment (budget_id, name, quantity, cost, price)
SELECT $2, name, quantity, cost, price FROM budget_equipment WHERE budget_id = $1 ORDER BY id`
)

// CopyLineItems copies every supply, service and equipment line of fromID
// onto toID in one batch.
func (r *Repo) CopyLineItems(ctx context.Context, fromID, toID uuid.UUID) error {
	batch := &pgx.Batch{}
	batch.Queue(copySuppliesSQL, fromID, toID)
	batch.Queue(copyServicesSQL, fromID, toID)
	batch.Queue(copyEquipmentSQL, fromID, toID)

	br := postgres.QuerierFromCtx(ctx, r.pool).SendBatch(ctx, batch)
	for range batch.Len() {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return postgres.MapError(err, "budget line items", toID)
		}
	}
	if err := br.Close(); err != nil {
		return postgres.MapError(err, "budget line items", toID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Line item reads
// ---------------------------------------------------------------------------

const (
	listSuppliesSQL = `SELECT id, budget_id, product, quantity, cost, price_to_invoice
FROM budget_supplies WHERE budget_id = $1 ORDER BY product, id`

	listServicesSQL = `SELECT id, budget_id, service_code, name, quantity, assigned_value, invoice_value
FROM budget_services WHERE budget_id = $1 ORDER BY service_code, id`

	listEquipmentSQL = `SELECT id, budget_id, name, quantity, cost, price
FROM budget_equipment WHERE budget_id = $1 ORDER BY name, id`
)

// ListSupplies returns the supply lines of a budget version.
func (r *Repo) ListSupplies(ctx context.Context, budgetID uuid.UUID) ([]domain.SupplyItem, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, listSuppliesSQL, budgetID)
	if err != nil {
		return nil, fmt.Errorf("list supplies: %w", err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.SupplyItem, error) {
		var s domain.SupplyItem
		err := row.Scan(&s.ID, &s.BudgetID, &s.Product, &s.Quantity, &s.Cost, &s.PriceToInvoice)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan supplies: %w", err)
	}
	return items, nil
}

// ListServices returns the service lines of a budget version.
func (r *Repo) ListServices(ctx context.Context, budgetID uuid.UUID) ([]domain.ServiceItem, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, listServicesSQL, budgetID)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ServiceItem, error) {
		var s domain.ServiceItem
		err := row.Scan(&s.ID, &s.BudgetID, &s.ServiceCode, &s.Name, &s.Quantity, &s.AssignedValue, &s.InvoiceValue)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan services: %w", err)
	}
	return items, nil
}

// ListEquipment returns the equipment lines of a budget version.
func (r *Repo) ListEquipment(ctx context.Context, budgetID uuid.UUID) ([]domain.EquipmentItem, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, listEquipmentSQL, budgetID)
	if err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.EquipmentItem, error) {
		var e domain.EquipmentItem
		err := row.Scan(&e.ID, &e.BudgetID, &e.Name, &e.Quantity, &e.Cost, &e.Price)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan equipment: %w", err)
	}
	return items, nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanBudget(row pgx.Row) (domain.Budget, error) {
	var (
		b       domain.Budget
		status  string
		outcome *string
	)
	err := row.Scan(
		&b.ID, &b.ParentID, &b.LineageID, &b.Version, &b.IsCurrentVersion, &status,
		&b.AssigneeID, &b.AssigneeName,
		&b.AssigneeClaimedAt, &b.OwnerID, &b.PatientName, &b.Branch, &outcome,
		&b.ExternalReference, &b.TotalToInvoice, &b.CostTotal, &b.Profitability,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return domain.Budget{}, err
	}

	b.Status = domain.Status(status)
	if outcome != nil {
		o := domain.AuditOutcome(*outcome)
		b.AuditOutcome = &o
	}
	return b, nil
}

func collectBudgets(rows pgx.Rows) ([]domain.Budget, error) {
	budgets, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Budget, error) {
		return scanBudget(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan budgets: %w", err)
	}
	return budgets, nil
}
