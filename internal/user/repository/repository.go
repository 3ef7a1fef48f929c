package repository

import (
	"context"
	"time"

	"marketing-dashboard/backend/internal/user/domain"
)

// UpsertParams carries the fields to merge on upsert. Nil pointers mean
// "not provided": they are left untouched on conflict. A pointer to an empty
// string overwrites with NULL-equivalent content.
type UpsertParams struct {
	ID           string
	Name         *string
	Email        *string
	LoginMethod  *string
	Role         *domain.Role
	LastSignedIn *time.Time
}

// Repository defines persistence for users.
type Repository interface {
	Upsert(ctx context.Context, p UpsertParams) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
