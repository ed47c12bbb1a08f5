package ctxutil

import (
	"context"

	"github.com/google/uuid"

	"github.com/netroncoso/presupuestador/internal/domain"
)

type ctxKey string

const (
	principalKey ctxKey = "principal"
	requestIDKey ctxKey = "request_id"
)

// Principal is the authenticated caller as handed over by the upstream
// authentication layer.
type Principal struct {
	UserID uuid.UUID
	Role   domain.UserRole
}

// WithPrincipal stores the authenticated caller in the context.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromCtx extracts the authenticated caller from the context.
// Returns false if the value is missing, has a nil user id, or has the wrong type.
func PrincipalFromCtx(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	if !ok || p.UserID == uuid.Nil {
		return Principal{}, false
	}
	return p, true
}

// UserIDFromCtx extracts the caller's user ID from the context.
func UserIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	p, ok := PrincipalFromCtx(ctx)
	return p.UserID, ok
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
