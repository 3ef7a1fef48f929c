// Package handler exposes the campaign and campaign-metric endpoints.
package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"marketing-dashboard/backend/internal/campaign/domain"
	"marketing-dashboard/backend/internal/campaign/repository"
	"marketing-dashboard/backend/internal/httpx"
	metricdomain "marketing-dashboard/backend/internal/metric/domain"
	metricrepo "marketing-dashboard/backend/internal/metric/repository"
	"marketing-dashboard/backend/internal/server/middleware"
)

type Handler struct {
	campaigns repository.Repository
	metrics   metricrepo.Repository
}

// NewHandler returns a campaign handler on the given repositories.
func NewHandler(campaigns repository.Repository, metrics metricrepo.Repository) *Handler {
	return &Handler{campaigns: campaigns, metrics: metrics}
}

// List returns the caller's campaigns, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.GetIdentity(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "missing or invalid authorization")
		return
	}
	out, err := h.campaigns.ListByUser(r.Context(), id.UserID)
	if err != nil {
		httpx.StoreError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

type createRequest struct {
	Name           string     `json:"name"`
	Description    *string    `json:"description"`
	CampaignType   string     `json:"campaignType"`
	IntegrationID  string     `json:"integrationId"`
	Budget         *float64   `json:"budget"`
	StartDate      *time.Time `json:"startDate"`
	EndDate        *time.Time `json:"endDate"`
	TargetAudience *string    `json:"targetAudience"`
}

// Create persists a new campaign for the caller. Every campaign starts in
// draft regardless of what the client sends; status changes go through Update.
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
	campaignType, err := domain.ParseType(req.CampaignType)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now().UTC()
	c := &domain.Campaign{
		ID:             uuid.NewString(),
		UserID:         id.UserID,
		IntegrationID:  req.IntegrationID,
		Name:           req.Name,
		Description:    req.Description,
		CampaignType:   campaignType,
		Status:         domain.StatusDraft,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		TargetAudience: req.TargetAudience,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if req.Budget != nil {
		b := decimalString(*req.Budget)
		c.Budget = &b
	}
	if err := c.Validate(); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.campaigns.Create(r.Context(), c); err != nil {
		httpx.StoreError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, c)
}

// GetByID returns one of the caller's campaigns.
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	c, ok := h.ownedCampaign(w, r, chi.URLParam(r, "campaignID"))
	if !ok {
		return
	}
	httpx.WriteJSON(w, http.StatusOK, c)
}

type updateRequest struct {
	Name   *string  `json:"name"`
	Status *string  `json:"status"`
	Budget *float64 `json:"budget"`
}

// Update applies a partial update to one of the caller's campaigns and
// returns the updated row. Absent fields are left untouched.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "campaignID")
	if _, ok := h.ownedCampaign(w, r, campaignID); !ok {
		return
	}
	var req updateRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	params := repository.UpdateParams{Name: req.Name}
	if req.Status != nil {
		status, err := domain.ParseStatus(*req.Status)
		if err != nil {
			httpx.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		params.Status = &status
	}
	if req.Budget != nil {
		b := decimalString(*req.Budget)
		params.Budget = &b
	}
	if err := h.campaigns.Update(r.Context(), campaignID, params); err != nil {
		httpx.StoreError(w, err)
		return
	}

	c, err := h.campaigns.GetByID(r.Context(), campaignID)
	if err != nil {
		httpx.StoreError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, c)
}

// ListMetrics returns the campaign's metric snapshots, newest first.
func (h *Handler) ListMetrics(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "campaignID")
	if _, ok := h.ownedCampaign(w, r, campaignID); !ok {
		return
	}
	out, err := h.metrics.ListByCampaign(r.Context(), campaignID)
	if err != nil {
		httpx.StoreError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// LatestMetrics returns the campaign's most recent snapshot, or null when the
// campaign has no metrics yet.
func (h *Handler) LatestMetrics(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "campaignID")
	if _, ok := h.ownedCampaign(w, r, campaignID); !ok {
		return
	}
	m, err := h.metrics.GetLatestByCampaign(r.Context(), campaignID)
	if err != nil {
		httpx.StoreError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, m)
}

type recordMetricRequest struct {
	Impressions    int        `json:"impressions"`
	Clicks         int        `json:"clicks"`
	Conversions    int        `json:"conversions"`
	Spend          *float64   `json:"spend"`
	Revenue        *float64   `json:"revenue"`
	CTR            *float64   `json:"ctr"`
	CPC            *float64   `json:"cpc"`
	ROAS           *float64   `json:"roas"`
	EngagementRate *float64   `json:"engagementRate"`
	RecordedAt     *time.Time `json:"recordedAt"`
}

// RecordMetric appends a performance snapshot to the campaign's series.
// Snapshots are append-only; correcting one means recording a newer one.
func (h *Handler) RecordMetric(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "campaignID")
	if _, ok := h.ownedCampaign(w, r, campaignID); !ok {
		return
	}
	var req recordMetricRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	now := time.Now().UTC()
	m := &metricdomain.Metric{
		ID:             uuid.NewString(),
		CampaignID:     campaignID,
		Impressions:    req.Impressions,
		Clicks:         req.Clicks,
		Conversions:    req.Conversions,
		Spend:          decimalOrZero(req.Spend),
		Revenue:        decimalOrZero(req.Revenue),
		CTR:            decimalOrZero(req.CTR),
		CPC:            decimalOrZero(req.CPC),
		ROAS:           decimalOrZero(req.ROAS),
		EngagementRate: decimalOrZero(req.EngagementRate),
		RecordedAt:     now,
		CreatedAt:      now,
	}
	if req.RecordedAt != nil {
		m.RecordedAt = req.RecordedAt.UTC()
	}
	if err := m.Validate(); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.metrics.Create(r.Context(), m); err != nil {
		httpx.StoreError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, m)
}

// ownedCampaign resolves the campaign and enforces tenant isolation. On
// failure it writes the response and returns false. A campaign owned by
// another user reads as not found, never as forbidden.
func (h *Handler) ownedCampaign(w http.ResponseWriter, r *http.Request, campaignID string) (*domain.Campaign, bool) {
	id, ok := middleware.GetIdentity(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "missing or invalid authorization")
		return nil, false
	}
	c, err := h.campaigns.GetByID(r.Context(), campaignID)
	if err != nil {
		httpx.StoreError(w, err)
		return nil, false
	}
	if c == nil || c.UserID != id.UserID {
		httpx.Error(w, http.StatusNotFound, "campaign not found")
		return nil, false
	}
	return c, true
}

func decimalString(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func decimalOrZero(f *float64) string {
	if f == nil {
		return "0.00"
	}
	return decimalString(*f)
}
