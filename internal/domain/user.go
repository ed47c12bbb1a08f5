package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an application user as the workflow sees it: an id, a role that
// decides which notifications reach them, and an active flag.
type User struct {
	ID        uuid.UUID
	Username  string
	Role      UserRole
	Active    bool
	CreatedAt time.Time
}
