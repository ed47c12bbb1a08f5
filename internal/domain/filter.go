package domain

import "github.com/google/uuid"

// BudgetFilter selects current-version budgets for queue and dashboard listings.
type BudgetFilter struct {
	Statuses   []Status
	AssigneeID *uuid.UUID
	Branch     string
	Limit      int
	Offset     int
}

// NotificationFilter narrows a user's inbox listing.
type NotificationFilter struct {
	Unread   *bool
	BudgetID *uuid.UUID
	Limit    int
	Offset   int
}
