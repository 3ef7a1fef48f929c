// Package handler exposes the integration endpoints.
package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"marketing-dashboard/backend/internal/httpx"
	"marketing-dashboard/backend/internal/integration/domain"
	"marketing-dashboard/backend/internal/integration/repository"
	"marketing-dashboard/backend/internal/server/middleware"
)

type Handler struct {
	integrations repository.Repository
}

// NewHandler returns an integration handler on the given repository.
func NewHandler(integrations repository.Repository) *Handler {
	return &Handler{integrations: integrations}
}

// List returns the caller's integrations, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.GetIdentity(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "missing or invalid authorization")
		return
	}
	out, err := h.integrations.ListByUser(r.Context(), id.UserID)
	if err != nil {
		httpx.StoreError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

type createRequest struct {
	Platform     string  `json:"platform"`
	Name         string  `json:"name"`
	AccessToken  *string `json:"accessToken"`
	RefreshToken *string `json:"refreshToken"`
	AccountID    *string `json:"accountId"`
}

// Create connects a new platform account for the caller. The integration
// starts active; ownership comes from the session, never from the body.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.GetIdentity(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "missing or invalid authorization")
		return
	}
	var req createRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	platform, err := domain.ParsePlatform(req.Platform)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now().UTC()
	integ := &domain.Integration{
		ID:           uuid.NewString(),
		UserID:       id.UserID,
		Platform:     platform,
		Name:         req.Name,
		AccessToken:  req.AccessToken,
		RefreshToken: req.RefreshToken,
		AccountID:    req.AccountID,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := integ.Validate(); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.integrations.Create(r.Context(), integ); err != nil {
		httpx.StoreError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, integ)
}

// GetByID returns one of the caller's integrations. A missing row and a row
// owned by someone else are indistinguishable to the caller.
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.GetIdentity(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "missing or invalid authorization")
		return
	}
	integ, err := h.integrations.GetByID(r.Context(), chi.URLParam(r, "integrationID"))
	if err != nil {
		httpx.StoreError(w, err)
		return
	}
	if integ == nil || integ.UserID != id.UserID {
		httpx.Error(w, http.StatusNotFound, "integration not found")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, integ)
}
