package repository

import (
	"context"
	"time"

	"marketing-dashboard/backend/internal/recommendation/domain"
)

// Repository defines persistence for recommendations.
type Repository interface {
	Create(ctx context.Context, rec *domain.Recommendation) error
	ListByCampaign(ctx context.Context, campaignID string) ([]*domain.Recommendation, error)
	ListPendingByCampaign(ctx context.Context, campaignID string) ([]*domain.Recommendation, error)
	GetByID(ctx context.Context, id string) (*domain.Recommendation, error)
	Apply(ctx context.Context, id string, at time.Time) error
	Dismiss(ctx context.Context, id string, at time.Time) error
}
