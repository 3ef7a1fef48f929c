package repository

import (
	"context"

	"marketing-dashboard/backend/internal/campaign/domain"
)

// UpdateParams carries the fields of a partial campaign update. Nil pointers
// are left untouched; updated_at is always stamped.
type UpdateParams struct {
	Name   *string
	Status *domain.Status
	Budget *string
}

// Repository defines persistence for campaigns.
type Repository interface {
	Create(ctx context.Context, c *domain.Campaign) error
	ListByUser(ctx context.Context, userID string) ([]*domain.Campaign, error)
	GetByID(ctx context.Context, id string) (*domain.Campaign, error)
	Update(ctx context.Context, id string, p UpdateParams) error
}
