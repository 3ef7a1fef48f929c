package repository

import (
	"context"
	"time"

	"marketing-dashboard/backend/internal/alert/domain"
)

// Repository defines persistence for alerts.
type Repository interface {
	Create(ctx context.Context, a *domain.Alert) error
	ListByUser(ctx context.Context, userID string) ([]*domain.Alert, error)
	ListUnreadByUser(ctx context.Context, userID string) ([]*domain.Alert, error)
	GetByID(ctx context.Context, id string) (*domain.Alert, error)
	MarkAsRead(ctx context.Context, id string, at time.Time) error
}
