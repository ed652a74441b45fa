package shared

import (
	"context"

	"github.com/google/uuid"
)

// Identity describes the authenticated actor for the current request.
// Permissions maps an area name (cost category, "invoices", "projects",
// "users") to a level ("none", "read", "write").
type Identity struct {
	UserID      uuid.UUID
	TenantID    uuid.UUID
	Name        string
	Email       string
	Role        string
	Permissions map[string]string
}

type identityContextKey struct{}

// ContextWithIdentity stores the identity in context.
func ContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext extracts the identity from context.
func IdentityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityContextKey{}).(*Identity)
	return id
}
