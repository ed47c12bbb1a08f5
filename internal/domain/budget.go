package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget is one version of a budget case. Every version is its own row;
// versions of the same case share a LineageID.
type Budget struct {
	ID                uuid.UUID
	ParentID          *uuid.UUID
	LineageID         uuid.UUID
	Version           int
	IsCurrentVersion  bool
	Status            Status
	AssigneeID        *uuid.UUID
	AssigneeName      string
	AssigneeClaimedAt *time.Time
	OwnerID           uuid.UUID
	PatientName       string
	Branch            string
	AuditOutcome      *AuditOutcome
	ExternalReference *string
	TotalToInvoice    decimal.Decimal
	CostTotal         decimal.Decimal
	Profitability     decimal.Decimal
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsClaimed reports whether an actor currently holds the budget.
func (b *Budget) IsClaimed() bool {
	return b.AssigneeID != nil
}

// IsHeldBy reports whether the given actor holds the claim.
func (b *Budget) IsHeldBy(actorID uuid.UUID) bool {
	return b.AssigneeID != nil && *b.AssigneeID == actorID
}

// CheckIntegrity reports ErrInvalidState when fields every workflow step
// depends on are missing.
func (b *Budget) CheckIntegrity() error {
	if b.Version <= 0 || b.OwnerID == uuid.Nil {
		return ErrInvalidState
	}
	return nil
}

// SupplyItem is a consumable line item of a budget.
type SupplyItem struct {
	ID             uuid.UUID
	BudgetID       uuid.UUID
	Product        string
	Quantity       int
	Cost           decimal.Decimal
	PriceToInvoice decimal.Decimal
}

// ServiceItem is a care service line item of a budget.
type ServiceItem struct {
	ID            uuid.UUID
	BudgetID      uuid.UUID
	ServiceCode   string
	Name          string
	Quantity      int
	AssignedValue decimal.Decimal
	InvoiceValue  decimal.Decimal
}

// EquipmentItem is a rented or lent equipment line item of a budget.
type EquipmentItem struct {
	ID       uuid.UUID
	BudgetID uuid.UUID
	Name     string
	Quantity int
	Cost     decimal.Decimal
	Price    decimal.Decimal
}

// AuditEntry is one recorded transition. Entries are never updated.
// ActorID is nil for transitions applied by the release sweep.
type AuditEntry struct {
	ID           int64
	BudgetID     uuid.UUID
	Version      int
	ActorID      *uuid.UUID
	StatusBefore Status
	StatusAfter  Status
	Comment      *string
	CreatedAt    time.Time
}

// Notification is a message addressed to one user.
type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	BudgetID  uuid.UUID
	Version   int
	Category  NotificationCategory
	Message   string
	Read      bool
	CreatedAt time.Time
}

// NotificationTarget addresses a notification to a single user or to all
// active users holding a role. Exactly one of UserID and Role is set.
type NotificationTarget struct {
	UserID   *uuid.UUID
	Role     UserRole
	BudgetID uuid.UUID
	Version  int
	Category NotificationCategory
	Message  string
}

// StateChange is emitted after a workflow change commits.
// BudgetID is uuid.Nil for bulk changes such as the release sweep.
type StateChange struct {
	BudgetID  uuid.UUID
	LineageID uuid.UUID
	Version   int
	Action    Action
	From      Status
	To        Status
	ActorID   *uuid.UUID
	Count     int64
	At        time.Time
}

// StateUpdate is the workflow part of a budget row written by one transition.
// A nil AssigneeID clears the claim.
type StateUpdate struct {
	Status            Status
	AssigneeID        *uuid.UUID
	ClaimedAt         *time.Time
	AuditOutcome      *AuditOutcome
	ClearOutcome      bool
	ExternalReference *string
}
