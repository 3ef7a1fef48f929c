package repository

import (
	"context"

	"marketing-dashboard/backend/internal/prediction/domain"
)

// Repository defines persistence for predictions.
type Repository interface {
	Create(ctx context.Context, p *domain.Prediction) error
	ListByCampaign(ctx context.Context, campaignID string) ([]*domain.Prediction, error)
	GetLatestByType(ctx context.Context, campaignID string, predictionType domain.Type) (*domain.Prediction, error)
}
