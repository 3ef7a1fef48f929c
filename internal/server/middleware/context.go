package middleware

import (
	"context"

	"marketing-dashboard/backend/internal/security"
)

type contextKey struct{ name string }

var identityKey = contextKey{"identity"}

// WithIdentity returns a context carrying the verified caller identity.
// Handlers read it via GetIdentity; it is never taken from request input.
func WithIdentity(ctx context.Context, id *security.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// GetIdentity returns the verified identity from context and true if set; otherwise nil, false.
func GetIdentity(ctx context.Context) (*security.Identity, bool) {
	v, ok := ctx.Value(identityKey).(*security.Identity)
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}
