package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"marketing-dashboard/backend/internal/campaign/domain"
	"marketing-dashboard/backend/internal/db"
)

type PostgresRepository struct {
	h *db.Handle
}

// NewPostgresRepository returns a campaign repository on the given store handle.
func NewPostgresRepository(h *db.Handle) *PostgresRepository {
	return &PostgresRepository{h: h}
}

// Create persists the campaign. The campaign must have ID set; it is not
// assigned by this method. Fails with db.ErrUnavailable when the store is unreachable.
func (r *PostgresRepository) Create(ctx context.Context, c *domain.Campaign) error {
	conn, err := r.h.Get(ctx)
	if err != nil {
		return err
	}
	_, err = conn.ExecContext(ctx,
		`INSERT INTO campaigns
		   (id, user_id, integration_id, name, description, campaign_type, status, budget, start_date, end_date, target_audience, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		c.ID, c.UserID, c.IntegrationID, c.Name, db.NullString(c.Description),
		string(c.CampaignType), string(c.Status), db.NullString(c.Budget),
		db.NullTime(c.StartDate), db.NullTime(c.EndDate), db.NullString(c.TargetAudience),
		c.CreatedAt, c.UpdatedAt)
	return err
}

// ListByUser returns the user's campaigns, newest first. Returns an empty slice
// when the user has none or the store is unavailable.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Campaign, error) {
	conn, err := r.h.Get(ctx)
	if err != nil {
		return []*domain.Campaign{}, nil
	}

	rows, err := conn.QueryContext(ctx,
		selectColumns+` FROM campaigns WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Campaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetByID returns the campaign for id, or nil if not found or the store is unavailable.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	conn, err := r.h.Get(ctx)
	if err != nil {
		return nil, nil
	}

	row := conn.QueryRowContext(ctx, selectColumns+` FROM campaigns WHERE id = $1`, id)
	c, err := scanCampaign(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

// Update merges the provided fields into the campaign row and stamps updated_at.
// Updating a missing row is not an error. Fails with db.ErrUnavailable when the
// store is unreachable.
func (r *PostgresRepository) Update(ctx context.Context, id string, p UpdateParams) error {
	conn, err := r.h.Get(ctx)
	if err != nil {
		return err
	}

	set := []string{}
	args := []any{}
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Status != nil {
		add("status", string(*p.Status))
	}
	if p.Budget != nil {
		add("budget", *p.Budget)
	}
	add("updated_at", time.Now().UTC())

	args = append(args, id)
	query := fmt.Sprintf("UPDATE campaigns SET %s WHERE id = $%d", strings.Join(set, ", "), len(args))
	_, err = conn.ExecContext(ctx, query, args...)
	return err
}

const selectColumns = `SELECT id, user_id, integration_id, name, description, campaign_type, status, budget, start_date, end_date, target_audience, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCampaign(row rowScanner) (*domain.Campaign, error) {
	var c domain.Campaign
	var description, budget, targetAudience sql.NullString
	var startDate, endDate sql.NullTime
	if err := row.Scan(&c.ID, &c.UserID, &c.IntegrationID, &c.Name, &description,
		&c.CampaignType, &c.Status, &budget, &startDate, &endDate, &targetAudience,
		&c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Description = db.StringPtr(description)
	c.Budget = db.StringPtr(budget)
	c.TargetAudience = db.StringPtr(targetAudience)
	c.StartDate = db.TimePtr(startDate)
	c.EndDate = db.TimePtr(endDate)
	return &c, nil
}
