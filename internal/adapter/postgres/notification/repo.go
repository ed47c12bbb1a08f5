// Package notification implements the per-user notification store using PostgreSQL.
package notification

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/netroncoso/presupuestador/internal/adapter/postgres"
	"github.com/netroncoso/presupuestador/internal/domain"
)

// psql is the squirrel builder configured for PostgreSQL placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides notification persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new notification repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const notificationColumns = `id, user_id, budget_id, version, category, message, is_read, created_at`

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

const insertForUserSQL = `INSERT INTO notifications (user_id, budget_id, version, category, message)
VALUES ($1, $2, $3, $4, $5)`

const insertForRoleSQL = `INSERT INTO notifications (user_id, budget_id, version, category, message)
SELECT u.id, $2, $3, $4, $5 FROM users u WHERE u.role = $1 AND u.active`

// Insert stores the notifications of one target and returns how many rows
// were written. A role target writes one row per active member of the role.
func (r *Repo) Insert(ctx context.Context, t domain.NotificationTarget) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, who := insertForRoleSQL, any(string(t.Role))
	if t.UserID != nil {
		query, who = insertForUserSQL, *t.UserID
	}

	tag, err := q.Exec(ctx, query, who, t.BudgetID, t.Version, string(t.Category), t.Message)
	if err != nil {
		return 0, postgres.MapError(err, "notification", t.BudgetID)
	}
	return tag.RowsAffected(), nil
}

const markReadSQL = `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`

// MarkRead marks one notification of userID as read. A notification owned by
// someone else is reported as not found.
func (r *Repo) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, markReadSQL, id, userID)
	if err != nil {
		return postgres.MapError(err, "notification", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("notification %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

const markAllReadSQL = `UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND NOT is_read`

// MarkAllRead marks every unread notification of userID as read.
func (r *Repo) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, markAllReadSQL, userID)
	if err != nil {
		return 0, postgres.MapError(err, "notifications of user", userID)
	}
	return tag.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// List returns the notifications of userID, newest first.
func (r *Repo) List(ctx context.Context, userID uuid.UUID, filter domain.NotificationFilter) ([]domain.Notification, error) {
	qb := psql.Select(notificationColumns).
		From("notifications").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id")

	if filter.Unread != nil {
		qb = qb.Where(sq.Eq{"is_read": !*filter.Unread})
	}
	if filter.BudgetID != nil {
		qb = qb.Where(sq.Eq{"budget_id": *filter.BudgetID})
	}
	if filter.Limit > 0 {
		qb = qb.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		qb = qb.Offset(uint64(filter.Offset))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list notifications query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Notification, error) {
		var (
			n        domain.Notification
			category string
		)
		err := row.Scan(&n.ID, &n.UserID, &n.BudgetID, &n.Version, &category, &n.Message, &n.Read, &n.CreatedAt)
		n.Category = domain.NotificationCategory(category)
		return n, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan notifications: %w", err)
	}
	return out, nil
}

const countUnreadSQL = `SELECT count(*) FROM notifications WHERE user_id = $1 AND NOT is_read`

// CountUnread returns the number of unread notifications of userID.
func (r *Repo) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, countUnreadSQL, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return n, nil
}
