package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"marketing-dashboard/backend/internal/db"
	"marketing-dashboard/backend/internal/user/domain"
)

type PostgresRepository struct {
	h       *db.Handle
	ownerID string
}

// NewPostgresRepository returns a user repository on the given store handle.
// ownerID is the single user id auto-promoted to admin on upsert; empty disables the rule.
func NewPostgresRepository(h *db.Handle, ownerID string) *PostgresRepository {
	return &PostgresRepository{h: h, ownerID: ownerID}
}

// Upsert inserts the user or merges the provided fields into the existing row.
// Only fields present in p are written on conflict. If no role is provided and
// the id matches the configured owner, role is forced to admin on both paths.
// An otherwise-empty merge still stamps last_signed_in so every upsert has
// observable effect. Fails with db.ErrUnavailable when the store is unreachable.
func (r *PostgresRepository) Upsert(ctx context.Context, p UpsertParams) error {
	if p.ID == "" {
		return errors.New("user id is required for upsert")
	}
	conn, err := r.h.Get(ctx)
	if err != nil {
		return err
	}

	query, args := buildUpsert(p, r.ownerID, time.Now())
	_, err = conn.ExecContext(ctx, query, args...)
	return err
}

// buildUpsert returns the merge statement and ordered args for p. Only
// provided fields enter the conflict SET; ownerID triggers the auto-admin rule
// when no role is provided; now is the last_signed_in stamp used when the
// merge set would otherwise be empty.
func buildUpsert(p UpsertParams, ownerID string, now time.Time) (string, []any) {
	cols := []string{"id"}
	args := []any{p.ID}
	var set []string
	add := func(col string, v any) {
		cols = append(cols, col)
		args = append(args, v)
		set = append(set, col+" = EXCLUDED."+col)
	}

	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Email != nil {
		add("email", *p.Email)
	}
	if p.LoginMethod != nil {
		add("login_method", *p.LoginMethod)
	}
	if p.LastSignedIn != nil {
		add("last_signed_in", p.LastSignedIn.UTC())
	}
	if p.Role != nil {
		add("role", string(*p.Role))
	} else if ownerID != "" && p.ID == ownerID {
		add("role", string(domain.RoleAdmin))
	}

	if len(set) == 0 {
		add("last_signed_in", now.UTC())
	}

	placeholders := make([]string, len(args))
	for i := range args {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := "INSERT INTO users (" + strings.Join(cols, ", ") + ") VALUES (" +
		strings.Join(placeholders, ", ") + ") ON CONFLICT (id) DO UPDATE SET " +
		strings.Join(set, ", ")
	return query, args
}

// GetByID returns the user for id, or nil if not found or the store is unavailable.
// It returns an error only for query failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	conn, err := r.h.Get(ctx)
	if err != nil {
		return nil, nil
	}

	row := conn.QueryRowContext(ctx,
		`SELECT id, name, email, login_method, role, created_at, last_signed_in
		 FROM users WHERE id = $1`, id)

	var u domain.User
	var name, email, loginMethod sql.NullString
	if err := row.Scan(&u.ID, &name, &email, &loginMethod, &u.Role, &u.CreatedAt, &u.LastSignedIn); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.Name = db.StringPtr(name)
	u.Email = db.StringPtr(email)
	u.LoginMethod = db.StringPtr(loginMethod)
	return &u, nil
}
