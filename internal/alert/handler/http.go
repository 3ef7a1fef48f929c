// Package handler exposes the alert endpoints.
package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"marketing-dashboard/backend/internal/alert/domain"
	"marketing-dashboard/backend/internal/alert/repository"
	"marketing-dashboard/backend/internal/httpx"
	"marketing-dashboard/backend/internal/platform/rbac"
	"marketing-dashboard/backend/internal/server/middleware"
)

type Handler struct {
	alerts repository.Repository
	users  rbac.UserGetter
}

// NewHandler returns an alert handler on the given repositories.
func NewHandler(alerts repository.Repository, users rbac.UserGetter) *Handler {
	return &Handler{alerts: alerts, users: users}
}

type markReadResponse struct {
	Success bool `json:"success"`
}

// List returns the caller's alerts, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.GetIdentity(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "missing or invalid authorization")
		return
	}
	out, err := h.alerts.ListByUser(r.Context(), id.UserID)
	if err != nil {
		httpx.StoreError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// ListUnread returns the caller's unread alerts, newest first.
func (h *Handler) ListUnread(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.GetIdentity(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "missing or invalid authorization")
		return
	}
	out, err := h.alerts.ListUnreadByUser(r.Context(), id.UserID)
	if err != nil {
		httpx.StoreError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// MarkAsRead marks one of the caller's alerts read. Re-reading an already-read
// alert succeeds without moving its read_at timestamp.
func (h *Handler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.GetIdentity(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "missing or invalid authorization")
		return
	}
	a, err := h.alerts.GetByID(r.Context(), chi.URLParam(r, "alertID"))
	if err != nil {
		httpx.StoreError(w, err)
		return
	}
	if a == nil || a.UserID != id.UserID {
		httpx.Error(w, http.StatusNotFound, "alert not found")
		return
	}
	if err := h.alerts.MarkAsRead(r.Context(), a.ID, time.Now().UTC()); err != nil {
		httpx.StoreError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, markReadResponse{Success: true})
}

type createRequest struct {
	UserID     string  `json:"userId"`
	CampaignID *string `json:"campaignId"`
	AlertType  string  `json:"alertType"`
	Title      string  `json:"title"`
	Message    *string `json:"message"`
	Severity   string  `json:"severity"`
	ActionURL  *string `json:"actionUrl"`
}

// Create raises an alert for an arbitrary user. Admin only; regular alert
// creation happens inside the system, not through the API.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if _, err := rbac.RequireAdmin(r.Context(), h.users); err != nil {
		switch {
		case errors.Is(err, rbac.ErrUnauthenticated):
			httpx.Error(w, http.StatusUnauthorized, "missing or invalid authorization")
		case errors.Is(err, rbac.ErrForbidden):
			httpx.Error(w, http.StatusForbidden, "admin role required")
		default:
			httpx.StoreError(w, err)
		}
		return
	}

	var req createRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	alertType, err := domain.ParseType(req.AlertType)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	severity := domain.SeverityInfo
	if req.Severity != "" {
		severity, err = domain.ParseSeverity(req.Severity)
		if err != nil {
			httpx.Error(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	a := &domain.Alert{
		ID:         uuid.NewString(),
		UserID:     req.UserID,
		CampaignID: req.CampaignID,
		AlertType:  alertType,
		Title:      req.Title,
		Message:    req.Message,
		Severity:   severity,
		ActionURL:  req.ActionURL,
		CreatedAt:  time.Now().UTC(),
	}
	if err := a.Validate(); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.alerts.Create(r.Context(), a); err != nil {
		httpx.StoreError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, a)
}
