package repository

import (
	"context"

	"marketing-dashboard/backend/internal/metric/domain"
)

// Repository defines persistence for campaign metrics.
type Repository interface {
	Create(ctx context.Context, m *domain.Metric) error
	ListByCampaign(ctx context.Context, campaignID string) ([]*domain.Metric, error)
	GetLatestByCampaign(ctx context.Context, campaignID string) (*domain.Metric, error)
}
