// Package db provides the Postgres store handle shared by all repositories.
package db

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// ErrUnavailable is returned when the store cannot be reached (no DSN configured,
// or the connection attempt failed). Read paths degrade to empty results on it;
// write paths surface it to the caller.
var ErrUnavailable = errors.New("db: store unavailable")

// Handle is a lazily-connected Postgres handle. The first successful connection
// is cached for the process lifetime; failed attempts are not cached, so every
// call retries until one succeeds. Safe for concurrent use.
type Handle struct {
	dsn string

	mu sync.Mutex
	db *sql.DB
}

// NewHandle returns a Handle for the given DSN. No connection is made until Get.
// An empty DSN yields a permanently unavailable handle.
func NewHandle(dsn string) *Handle {
	return &Handle{dsn: dsn}
}

// Get returns the cached connection, establishing it on first use.
// Returns ErrUnavailable (wrapping the cause, if any) when no connection can be made.
func (h *Handle) Get(ctx context.Context) (*sql.DB, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.db != nil {
		return h.db, nil
	}
	if h.dsn == "" {
		return nil, ErrUnavailable
	}

	conn, err := sql.Open("pgx", h.dsn)
	if err != nil {
		return nil, errors.Join(ErrUnavailable, err)
	}
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, errors.Join(ErrUnavailable, err)
	}
	h.db = conn
	return h.db, nil
}

// Close closes the underlying connection if one was established.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.db == nil {
		return nil
	}
	err := h.db.Close()
	h.db = nil
	return err
}
