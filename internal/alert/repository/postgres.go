package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"marketing-dashboard/backend/internal/alert/domain"
	"marketing-dashboard/backend/internal/db"
)

type PostgresRepository struct {
	h *db.Handle
}

// NewPostgresRepository returns an alert repository on the given store handle.
func NewPostgresRepository(h *db.Handle) *PostgresRepository {
	return &PostgresRepository{h: h}
}

// Create persists the alert. Fails with db.ErrUnavailable when the store is unreachable.
func (r *PostgresRepository) Create(ctx context.Context, a *domain.Alert) error {
	conn, err := r.h.Get(ctx)
	if err != nil {
		return err
	}
	_, err = conn.ExecContext(ctx,
		`INSERT INTO alerts
		   (id, user_id, campaign_id, alert_type, title, message, severity, is_read, action_url, created_at, read_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		a.ID, a.UserID, db.NullString(a.CampaignID), string(a.AlertType), a.Title,
		db.NullString(a.Message), string(a.Severity), a.IsRead, db.NullString(a.ActionURL),
		a.CreatedAt, db.NullTime(a.ReadAt))
	return err
}

// ListByUser returns the user's alerts, newest first. Returns an empty slice
// when there are none or the store is unavailable.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Alert, error) {
	conn, err := r.h.Get(ctx)
	if err != nil {
		return []*domain.Alert{}, nil
	}
	rows, err := conn.QueryContext(ctx,
		selectColumns+` FROM alerts WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

// ListUnreadByUser returns the user's unread alerts, newest first. Returns an
// empty slice when there are none or the store is unavailable.
func (r *PostgresRepository) ListUnreadByUser(ctx context.Context, userID string) ([]*domain.Alert, error) {
	conn, err := r.h.Get(ctx)
	if err != nil {
		return []*domain.Alert{}, nil
	}
	rows, err := conn.QueryContext(ctx,
		selectColumns+` FROM alerts WHERE user_id = $1 AND is_read = FALSE ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

// GetByID returns the alert, or nil when it does not exist or the store is unavailable.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Alert, error) {
	conn, err := r.h.Get(ctx)
	if err != nil {
		return nil, nil
	}
	a, err := scanAlert(conn.QueryRowContext(ctx, selectColumns+` FROM alerts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

// MarkAsRead flips is_read and stamps read_at. The guard on is_read makes the
// operation idempotent: a second call leaves read_at at its first value.
// A no-row update is not an error.
func (r *PostgresRepository) MarkAsRead(ctx context.Context, id string, at time.Time) error {
	conn, err := r.h.Get(ctx)
	if err != nil {
		return err
	}
	_, err = conn.ExecContext(ctx,
		`UPDATE alerts SET is_read = TRUE, read_at = $2 WHERE id = $1 AND is_read = FALSE`,
		id, at.UTC())
	return err
}

const selectColumns = `SELECT id, user_id, campaign_id, alert_type, title, message, severity, is_read, action_url, created_at, read_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAlert(row rowScanner) (*domain.Alert, error) {
	var a domain.Alert
	var campaignID, message, actionURL sql.NullString
	var readAt sql.NullTime
	if err := row.Scan(&a.ID, &a.UserID, &campaignID, &a.AlertType, &a.Title,
		&message, &a.Severity, &a.IsRead, &actionURL, &a.CreatedAt, &readAt); err != nil {
		return nil, err
	}
	a.CampaignID = db.StringPtr(campaignID)
	a.Message = db.StringPtr(message)
	a.ActionURL = db.StringPtr(actionURL)
	a.ReadAt = db.TimePtr(readAt)
	return &a, nil
}

func collect(rows *sql.Rows) ([]*domain.Alert, error) {
	out := []*domain.Alert{}
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
