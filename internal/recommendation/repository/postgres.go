package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"marketing-dashboard/backend/internal/db"
	"marketing-dashboard/backend/internal/recommendation/domain"
)

type PostgresRepository struct {
	h *db.Handle
}

// NewPostgresRepository returns a recommendation repository on the given store handle.
func NewPostgresRepository(h *db.Handle) *PostgresRepository {
	return &PostgresRepository{h: h}
}

// Create persists the recommendation. Fails with db.ErrUnavailable when the
// store is unreachable.
func (r *PostgresRepository) Create(ctx context.Context, rec *domain.Recommendation) error {
	conn, err := r.h.Get(ctx)
	if err != nil {
		return err
	}
	_, err = conn.ExecContext(ctx,
		`INSERT INTO recommendations
		   (id, campaign_id, recommendation_type, current_value, suggested_value, expected_impact, priority, status, applied_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		rec.ID, rec.CampaignID, string(rec.RecommendationType),
		db.NullString(rec.CurrentValue), db.NullString(rec.SuggestedValue), db.NullString(rec.ExpectedImpact),
		string(rec.Priority), string(rec.Status), db.NullTime(rec.AppliedAt),
		rec.CreatedAt, rec.UpdatedAt)
	return err
}

// ListByCampaign returns the campaign's recommendations, newest first. Returns
// an empty slice when there are none or the store is unavailable.
func (r *PostgresRepository) ListByCampaign(ctx context.Context, campaignID string) ([]*domain.Recommendation, error) {
	conn, err := r.h.Get(ctx)
	if err != nil {
		return []*domain.Recommendation{}, nil
	}
	rows, err := conn.QueryContext(ctx,
		selectColumns+` FROM recommendations WHERE campaign_id = $1 ORDER BY created_at DESC`, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

// ListPendingByCampaign returns the campaign's pending recommendations ordered
// by priority, highest first. Returns an empty slice when there are none or
// the store is unavailable.
func (r *PostgresRepository) ListPendingByCampaign(ctx context.Context, campaignID string) ([]*domain.Recommendation, error) {
	conn, err := r.h.Get(ctx)
	if err != nil {
		return []*domain.Recommendation{}, nil
	}
	// Enum declaration order (low, medium, high) makes DESC yield high first.
	rows, err := conn.QueryContext(ctx,
		selectColumns+` FROM recommendations WHERE campaign_id = $1 AND status = 'pending' ORDER BY priority DESC`, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

// GetByID returns the recommendation for id, or nil if not found or the store
// is unavailable.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Recommendation, error) {
	conn, err := r.h.Get(ctx)
	if err != nil {
		return nil, nil
	}
	row := conn.QueryRowContext(ctx, selectColumns+` FROM recommendations WHERE id = $1`, id)
	rec, err := scanRecommendation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

// Apply marks the recommendation applied, stamping applied_at and updated_at.
// Re-applying re-stamps both. A no-row update is not an error.
func (r *PostgresRepository) Apply(ctx context.Context, id string, at time.Time) error {
	conn, err := r.h.Get(ctx)
	if err != nil {
		return err
	}
	_, err = conn.ExecContext(ctx,
		`UPDATE recommendations SET status = 'applied', applied_at = $2, updated_at = $2 WHERE id = $1`,
		id, at.UTC())
	return err
}

// Dismiss marks the recommendation dismissed, stamping updated_at only;
// applied_at is left untouched. A no-row update is not an error.
func (r *PostgresRepository) Dismiss(ctx context.Context, id string, at time.Time) error {
	conn, err := r.h.Get(ctx)
	if err != nil {
		return err
	}
	_, err = conn.ExecContext(ctx,
		`UPDATE recommendations SET status = 'dismissed', updated_at = $2 WHERE id = $1`,
		id, at.UTC())
	return err
}

const selectColumns = `SELECT id, campaign_id, recommendation_type, current_value, suggested_value, expected_impact, priority, status, applied_at, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecommendation(row rowScanner) (*domain.Recommendation, error) {
	var rec domain.Recommendation
	var currentValue, suggestedValue, expectedImpact sql.NullString
	var appliedAt sql.NullTime
	if err := row.Scan(&rec.ID, &rec.CampaignID, &rec.RecommendationType,
		&currentValue, &suggestedValue, &expectedImpact,
		&rec.Priority, &rec.Status, &appliedAt, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	rec.CurrentValue = db.StringPtr(currentValue)
	rec.SuggestedValue = db.StringPtr(suggestedValue)
	rec.ExpectedImpact = db.StringPtr(expectedImpact)
	rec.AppliedAt = db.TimePtr(appliedAt)
	return &rec, nil
}

func collect(rows *sql.Rows) ([]*domain.Recommendation, error) {
	out := []*domain.Recommendation{}
	for rows.Next() {
		rec, err := scanRecommendation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
