// Package rbac holds the role checks shared by privileged endpoints.
package rbac

import (
	"context"
	"errors"

	"marketing-dashboard/backend/internal/server/middleware"
	"marketing-dashboard/backend/internal/user/domain"
)

var (
	// ErrUnauthenticated means the request carried no verified identity.
	ErrUnauthenticated = errors.New("rbac: authentication required")
	// ErrForbidden means the caller is authenticated but lacks the admin role.
	ErrForbidden = errors.New("rbac: admin role required")
)

// UserGetter resolves a user row to read its role. Used by RequireAdmin.
type UserGetter interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// RequireAdmin ensures the caller is authenticated and holds the admin role.
// Returns the caller's user id on success. An unknown user (including a user
// unreadable because the store is down) is forbidden, never silently allowed.
func RequireAdmin(ctx context.Context, users UserGetter) (string, error) {
	id, ok := middleware.GetIdentity(ctx)
	if !ok {
		return "", ErrUnauthenticated
	}
	u, err := users.GetByID(ctx, id.UserID)
	if err != nil {
		return "", err
	}
	if u == nil || u.Role != domain.RoleAdmin {
		return "", ErrForbidden
	}
	return id.UserID, nil
}
