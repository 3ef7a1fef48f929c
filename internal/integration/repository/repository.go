package repository

import (
	"context"

	"marketing-dashboard/backend/internal/integration/domain"
)

// Repository defines persistence for integrations.
type Repository interface {
	Create(ctx context.Context, i *domain.Integration) error
	ListByUser(ctx context.Context, userID string) ([]*domain.Integration, error)
	GetByID(ctx context.Context, id string) (*domain.Integration, error)
}
