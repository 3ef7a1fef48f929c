package repository

import (
	"context"
	"database/sql"
	"errors"

	"marketing-dashboard/backend/internal/db"
	"marketing-dashboard/backend/internal/integration/domain"
)

type PostgresRepository struct {
	h *db.Handle
}

// NewPostgresRepository returns an integration repository on the given store handle.
func NewPostgresRepository(h *db.Handle) *PostgresRepository {
	return &PostgresRepository{h: h}
}

// Create persists the integration. The integration must have ID set; it is not
// assigned by this method. Fails with db.ErrUnavailable when the store is unreachable.
func (r *PostgresRepository) Create(ctx context.Context, i *domain.Integration) error {
	conn, err := r.h.Get(ctx)
	if err != nil {
		return err
	}
	_, err = conn.ExecContext(ctx,
		`INSERT INTO integrations
		   (id, user_id, platform, name, access_token, refresh_token, account_id, is_active, last_synced_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		i.ID, i.UserID, string(i.Platform), i.Name,
		db.NullString(i.AccessToken), db.NullString(i.RefreshToken), db.NullString(i.AccountID),
		i.IsActive, db.NullTime(i.LastSyncedAt), i.CreatedAt, i.UpdatedAt)
	return err
}

// ListByUser returns the user's integrations, newest first. Returns an empty
// slice when the user has none or the store is unavailable.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Integration, error) {
	conn, err := r.h.Get(ctx)
	if err != nil {
		return []*domain.Integration{}, nil
	}

	rows, err := conn.QueryContext(ctx,
		`SELECT id, user_id, platform, name, access_token, refresh_token, account_id, is_active, last_synced_at, created_at, updated_at
		 FROM integrations WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Integration{}
	for rows.Next() {
		i, err := scanIntegration(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

// GetByID returns the integration for id, or nil if not found or the store is unavailable.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Integration, error) {
	conn, err := r.h.Get(ctx)
	if err != nil {
		return nil, nil
	}

	row := conn.QueryRowContext(ctx,
		`SELECT id, user_id, platform, name, access_token, refresh_token, account_id, is_active, last_synced_at, created_at, updated_at
		 FROM integrations WHERE id = $1`, id)
	i, err := scanIntegration(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return i, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIntegration(row rowScanner) (*domain.Integration, error) {
	var i domain.Integration
	var accessToken, refreshToken, accountID sql.NullString
	var lastSyncedAt sql.NullTime
	if err := row.Scan(&i.ID, &i.UserID, &i.Platform, &i.Name,
		&accessToken, &refreshToken, &accountID,
		&i.IsActive, &lastSyncedAt, &i.CreatedAt, &i.UpdatedAt); err != nil {
		return nil, err
	}
	i.AccessToken = db.StringPtr(accessToken)
	i.RefreshToken = db.StringPtr(refreshToken)
	i.AccountID = db.StringPtr(accountID)
	i.LastSyncedAt = db.TimePtr(lastSyncedAt)
	return &i, nil
}
