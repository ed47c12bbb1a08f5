package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/netroncoso/presupuestador/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates an active user holding role.
func SeedUser(t *testing.T, pool *pgxpool.Pool, role domain.UserRole) domain.User {
	t.Helper()
	return seedUser(t, pool, role, true)
}

// SeedInactiveUser creates a user that role broadcasts must skip.
func SeedInactiveUser(t *testing.T, pool *pgxpool.Pool, role domain.UserRole) domain.User {
	t.Helper()
	return seedUser(t, pool, role, false)
}

func seedUser(t *testing.T, pool *pgxpool.Pool, role domain.UserRole, active bool) domain.User {
	t.Helper()

	user := domain.User{
		ID:        uuid.New(),
		Username:  string(role) + "-" + uniqueSuffix(),
		Role:      role,
		Active:    active,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, username, role, active, created_at) VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Username, string(user.Role), user.Active, user.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert: %v", err)
	}

	return user
}

// BudgetOption customises a seeded budget.
type BudgetOption func(*domain.Budget)

// WithStatus sets the seeded status.
func WithStatus(s domain.Status) BudgetOption {
	return func(b *domain.Budget) { b.Status = s }
}

// WithClaim marks the budget as claimed by actor at claimedAt.
func WithClaim(actor uuid.UUID, claimedAt time.Time) BudgetOption {
	return func(b *domain.Budget) {
		b.AssigneeID = &actor
		at := claimedAt.UTC().Truncate(time.Microsecond)
		b.AssigneeClaimedAt = &at
	}
}

// WithBranch sets the seeded branch.
func WithBranch(branch string) BudgetOption {
	return func(b *domain.Budget) { b.Branch = branch }
}

// SeedBudget creates a first-version budget owned by owner, in draft unless
// overridden by opts.
func SeedBudget(t *testing.T, pool *pgxpool.Pool, owner uuid.UUID, opts ...BudgetOption) domain.Budget {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	b := domain.Budget{
		ID:               uuid.New(),
		Version:          1,
		IsCurrentVersion: true,
		Status:           domain.StatusDraft,
		OwnerID:          owner,
		PatientName:      "Patient " + uniqueSuffix(),
		Branch:           "central",
		TotalToInvoice:   decimal.RequireFromString("1500.50"),
		CostTotal:        decimal.RequireFromString("1000.00"),
		Profitability:    decimal.RequireFromString("33.36"),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	for _, opt := range opts {
		opt(&b)
	}
	b.LineageID = b.ID

	_, err := pool.Exec(context.Background(),
		`INSERT INTO budgets (id, version, is_current_version, status, assignee_id, assignee_claimed_at,
		                      owner_id, patient_name, branch, total_to_invoice, cost_total, profitability,
		                      created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		b.ID, b.Version, b.IsCurrentVersion, string(b.Status), b.AssigneeID, b.AssigneeClaimedAt,
		b.OwnerID, b.PatientName, b.Branch, b.TotalToInvoice, b.CostTotal, b.Profitability,
		b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedBudget insert: %v", err)
	}

	return b
}

// SeedLineItems attaches one supply, one service and one equipment item to budgetID.
func SeedLineItems(t *testing.T, pool *pgxpool.Pool, budgetID uuid.UUID) {
	t.Helper()
	ctx := context.Background()

	_, err := pool.Exec(ctx,
		`INSERT INTO budget_supplies (budget_id, product, quantity, cost, price_to_invoice)
		 VALUES ($1, 'gauze', 10, 2.50, 4.00)`, budgetID)
	if err != nil {
		t.Fatalf("testhelper: SeedLineItems supplies: %v", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO budget_services (budget_id, service_code, name, quantity, assigned_value, invoice_value)
		 VALUES ($1, 'NUR-01', 'nursing visit', 4, 80.00, 120.00)`, budgetID)
	if err != nil {
		t.Fatalf("testhelper: SeedLineItems services: %v", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO budget_equipment (budget_id, name, quantity, cost, price)
		 VALUES ($1, 'oxygen concentrator', 1, 300.00, 450.00)`, budgetID)
	if err != nil {
		t.Fatalf("testhelper: SeedLineItems equipment: %v", err)
	}
}

// CountRows returns the number of rows in table matching budget_id.
func CountRows(t *testing.T, pool *pgxpool.Pool, table string, budgetID uuid.UUID) int {
	t.Helper()

	var n int
	err := pool.QueryRow(context.Background(),
		`SELECT count(*) FROM `+table+` WHERE budget_id = $1`, budgetID,
	).Scan(&n)
	if err != nil {
		t.Fatalf("testhelper: CountRows %s: %v", table, err)
	}
	return n
}
