package repository

import (
	"context"
	"database/sql"
	"errors"

	"marketing-dashboard/backend/internal/db"
	"marketing-dashboard/backend/internal/prediction/domain"
)

type PostgresRepository struct {
	h *db.Handle
}

// NewPostgresRepository returns a prediction repository on the given store handle.
func NewPostgresRepository(h *db.Handle) *PostgresRepository {
	return &PostgresRepository{h: h}
}

// Create persists the prediction. Fails with db.ErrUnavailable when the store
// is unreachable.
func (r *PostgresRepository) Create(ctx context.Context, p *domain.Prediction) error {
	conn, err := r.h.Get(ctx)
	if err != nil {
		return err
	}
	_, err = conn.ExecContext(ctx,
		`INSERT INTO predictions
		   (id, campaign_id, prediction_type, predicted_value, confidence, insights, recommendation, actual_value, accuracy, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.CampaignID, string(p.PredictionType),
		db.NullString(p.PredictedValue), db.NullString(p.Confidence), db.NullString(p.Insights),
		db.NullString(p.Recommendation), db.NullString(p.ActualValue), db.NullString(p.Accuracy),
		p.CreatedAt, p.UpdatedAt)
	return err
}

// ListByCampaign returns the campaign's predictions, newest first. Returns an
// empty slice when there are none or the store is unavailable.
func (r *PostgresRepository) ListByCampaign(ctx context.Context, campaignID string) ([]*domain.Prediction, error) {
	conn, err := r.h.Get(ctx)
	if err != nil {
		return []*domain.Prediction{}, nil
	}

	rows, err := conn.QueryContext(ctx,
		selectColumns+` FROM predictions WHERE campaign_id = $1 ORDER BY created_at DESC`, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Prediction{}
	for rows.Next() {
		p, err := scanPrediction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetLatestByType returns the most recent prediction of the given type for the
// campaign, or nil if there is none or the store is unavailable.
func (r *PostgresRepository) GetLatestByType(ctx context.Context, campaignID string, predictionType domain.Type) (*domain.Prediction, error) {
	conn, err := r.h.Get(ctx)
	if err != nil {
		return nil, nil
	}

	row := conn.QueryRowContext(ctx,
		selectColumns+` FROM predictions WHERE campaign_id = $1 AND prediction_type = $2 ORDER BY created_at DESC LIMIT 1`,
		campaignID, string(predictionType))
	p, err := scanPrediction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

const selectColumns = `SELECT id, campaign_id, prediction_type, predicted_value, confidence, insights, recommendation, actual_value, accuracy, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPrediction(row rowScanner) (*domain.Prediction, error) {
	var p domain.Prediction
	var predictedValue, confidence, insights, recommendation, actualValue, accuracy sql.NullString
	if err := row.Scan(&p.ID, &p.CampaignID, &p.PredictionType,
		&predictedValue, &confidence, &insights, &recommendation, &actualValue, &accuracy,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.PredictedValue = db.StringPtr(predictedValue)
	p.Confidence = db.StringPtr(confidence)
	p.Insights = db.StringPtr(insights)
	p.Recommendation = db.StringPtr(recommendation)
	p.ActualValue = db.StringPtr(actualValue)
	p.Accuracy = db.StringPtr(accuracy)
	return &p, nil
}
