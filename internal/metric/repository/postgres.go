package repository

import (
	"context"
	"database/sql"
	"errors"

	"marketing-dashboard/backend/internal/db"
	"marketing-dashboard/backend/internal/metric/domain"
)

type PostgresRepository struct {
	h *db.Handle
}

// NewPostgresRepository returns a metric repository on the given store handle.
func NewPostgresRepository(h *db.Handle) *PostgresRepository {
	return &PostgresRepository{h: h}
}

// Create persists the metric snapshot. Fails with db.ErrUnavailable when the
// store is unreachable.
func (r *PostgresRepository) Create(ctx context.Context, m *domain.Metric) error {
	conn, err := r.h.Get(ctx)
	if err != nil {
		return err
	}
	_, err = conn.ExecContext(ctx,
		`INSERT INTO campaign_metrics
		   (id, campaign_id, impressions, clicks, conversions, spend, revenue, ctr, cpc, roas, engagement_rate, recorded_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		m.ID, m.CampaignID, m.Impressions, m.Clicks, m.Conversions,
		m.Spend, m.Revenue, m.CTR, m.CPC, m.ROAS, m.EngagementRate,
		m.RecordedAt, m.CreatedAt)
	return err
}

// ListByCampaign returns the campaign's metric snapshots, most recent first.
// Returns an empty slice when there are none or the store is unavailable.
func (r *PostgresRepository) ListByCampaign(ctx context.Context, campaignID string) ([]*domain.Metric, error) {
	conn, err := r.h.Get(ctx)
	if err != nil {
		return []*domain.Metric{}, nil
	}

	rows, err := conn.QueryContext(ctx,
		selectColumns+` FROM campaign_metrics WHERE campaign_id = $1 ORDER BY recorded_at DESC`, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Metric{}
	for rows.Next() {
		m, err := scanMetric(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetLatestByCampaign returns the most recent snapshot for the campaign, or nil
// if there is none or the store is unavailable.
func (r *PostgresRepository) GetLatestByCampaign(ctx context.Context, campaignID string) (*domain.Metric, error) {
	conn, err := r.h.Get(ctx)
	if err != nil {
		return nil, nil
	}

	row := conn.QueryRowContext(ctx,
		selectColumns+` FROM campaign_metrics WHERE campaign_id = $1 ORDER BY recorded_at DESC LIMIT 1`, campaignID)
	m, err := scanMetric(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

const selectColumns = `SELECT id, campaign_id, impressions, clicks, conversions, spend, revenue, ctr, cpc, roas, engagement_rate, recorded_at, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMetric(row rowScanner) (*domain.Metric, error) {
	var m domain.Metric
	if err := row.Scan(&m.ID, &m.CampaignID, &m.Impressions, &m.Clicks, &m.Conversions,
		&m.Spend, &m.Revenue, &m.CTR, &m.CPC, &m.ROAS, &m.EngagementRate,
		&m.RecordedAt, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}
