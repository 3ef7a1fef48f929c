// Package handler exposes the public auth endpoints: session introspection and logout.
package handler

import (
	"log/slog"
	"net/http"

	"marketing-dashboard/backend/internal/httpx"
	"marketing-dashboard/backend/internal/server/middleware"
	userdomain "marketing-dashboard/backend/internal/user/domain"
	userrepo "marketing-dashboard/backend/internal/user/repository"
)

// Handler serves /api/auth. Both endpoints are public: Me reports the resolved
// identity (or null), Logout clears the session cookie.
type Handler struct {
	users      userrepo.Repository
	cookieName string
	log        *slog.Logger
}

// NewHandler returns an auth handler using the given user repository.
func NewHandler(users userrepo.Repository, cookieName string, log *slog.Logger) *Handler {
	return &Handler{users: users, cookieName: cookieName, log: log}
}

type logoutResponse struct {
	Success bool `json:"success"`
}

// Me returns the caller's user row, or null when the request carries no valid
// session. The verified identity is upserted first so every session resolution
// advances last_signed_in and the owner auto-admin rule applies.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.GetIdentity(r.Context())
	if !ok {
		httpx.WriteJSON(w, http.StatusOK, nil)
		return
	}

	params := userrepo.UpsertParams{ID: id.UserID}
	if id.Name != "" {
		params.Name = &id.Name
	}
	if id.Email != "" {
		params.Email = &id.Email
	}
	if id.LoginMethod != "" {
		params.LoginMethod = &id.LoginMethod
	}
	// The upsert is best-effort: an unavailable store must not block session
	// resolution, only degrade it.
	if err := h.users.Upsert(r.Context(), params); err != nil {
		h.log.Warn("auth: user upsert failed", slog.String("err", err.Error()))
	}

	u, err := h.users.GetByID(r.Context(), id.UserID)
	if err != nil {
		httpx.StoreError(w, err)
		return
	}
	if u == nil {
		// Store unavailable or row missing; answer from the verified token.
		u = &userdomain.User{ID: id.UserID, Role: userdomain.RoleUser}
		if id.Name != "" {
			u.Name = &id.Name
		}
		if id.Email != "" {
			u.Email = &id.Email
		}
		if id.LoginMethod != "" {
			u.LoginMethod = &id.LoginMethod
		}
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}

// Logout clears the session cookie. The token itself is invalidated by the
// identity provider; this endpoint only removes the browser's copy.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	httpx.WriteJSON(w, http.StatusOK, logoutResponse{Success: true})
}
