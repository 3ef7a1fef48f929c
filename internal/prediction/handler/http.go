// Package handler exposes the prediction endpoints.
package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	campdomain "marketing-dashboard/backend/internal/campaign/domain"
	"marketing-dashboard/backend/internal/httpx"
	"marketing-dashboard/backend/internal/prediction/domain"
	"marketing-dashboard/backend/internal/prediction/repository"
	"marketing-dashboard/backend/internal/prediction/service"
	"marketing-dashboard/backend/internal/server/middleware"
)

// CampaignGetter resolves campaigns for ownership checks.
type CampaignGetter interface {
	GetByID(ctx context.Context, id string) (*campdomain.Campaign, error)
}

type Handler struct {
	predictions repository.Repository
	campaigns   CampaignGetter
}

// NewHandler returns a prediction handler on the given repositories.
func NewHandler(predictions repository.Repository, campaigns CampaignGetter) *Handler {
	return &Handler{predictions: predictions, campaigns: campaigns}
}

// List returns the campaign's predictions, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "campaignID")
	if !h.ownsCampaign(w, r, campaignID) {
		return
	}
	out, err := h.predictions.ListByCampaign(r.Context(), campaignID)
	if err != nil {
		httpx.StoreError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// Latest returns the campaign's most recent prediction of the requested type,
// or null when none exists.
func (h *Handler) Latest(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "campaignID")
	predictionType, err := domain.ParseType(r.URL.Query().Get("type"))
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if !h.ownsCampaign(w, r, campaignID) {
		return
	}
	p, err := h.predictions.GetLatestByType(r.Context(), campaignID, predictionType)
	if err != nil {
		httpx.StoreError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

type historicalRecord struct {
	Impressions int     `json:"impressions"`
	Clicks      int     `json:"clicks"`
	Conversions int     `json:"conversions"`
	Spend       float64 `json:"spend"`
}

type performanceRequest struct {
	CampaignID     string             `json:"campaignId"`
	HistoricalData []historicalRecord `json:"historicalData"`
}

type performanceInsights struct {
	AvgCTR            string `json:"avgCTR"`
	AvgConversionRate string `json:"avgConversionRate"`
}

// GeneratePerformance computes a conversion forecast from the submitted
// history and persists it as a performance prediction.
func (h *Handler) GeneratePerformance(w http.ResponseWriter, r *http.Request) {
	var req performanceRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !h.ownsCampaign(w, r, req.CampaignID) {
		return
	}

	records := make([]service.HistoricalRecord, len(req.HistoricalData))
	for i, rec := range req.HistoricalData {
		records[i] = service.HistoricalRecord{
			Impressions: rec.Impressions,
			Clicks:      rec.Clicks,
			Conversions: rec.Conversions,
			Spend:       rec.Spend,
		}
	}
	forecast, err := service.PredictPerformance(records)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	insights, err := json.Marshal(performanceInsights{
		AvgCTR:            fmt.Sprintf("%.2f%%", forecast.AvgCTR*100),
		AvgConversionRate: fmt.Sprintf("%.2f%%", forecast.AvgConversionRate*100),
	})
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	p := newPrediction(req.CampaignID, domain.TypePerformance)
	p.PredictedValue = strptr(strconv.Itoa(forecast.PredictedValue))
	p.Confidence = strptr("85")
	p.Insights = strptr(string(insights))
	p.Recommendation = strptr("Based on historical data, your campaign is expected to perform well.")

	if err := h.predictions.Create(r.Context(), p); err != nil {
		httpx.StoreError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, p)
}

type engagementSample struct {
	Hour           int     `json:"hour"`
	DayOfWeek      int     `json:"dayOfWeek"`
	EngagementRate float64 `json:"engagementRate"`
}

type timingRequest struct {
	CampaignID     string             `json:"campaignId"`
	EngagementData []engagementSample `json:"engagementData"`
}

type timingInsights struct {
	OptimalHour            int    `json:"optimalHour"`
	OptimalDay             int    `json:"optimalDay"`
	ExpectedEngagementRate string `json:"expectedEngagementRate"`
}

// GenerateOptimalTiming finds the best-engaging send slot in the submitted
// samples and persists it as an optimal_timing prediction.
func (h *Handler) GenerateOptimalTiming(w http.ResponseWriter, r *http.Request) {
	var req timingRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	for _, s := range req.EngagementData {
		if s.Hour < 0 || s.Hour > 23 {
			httpx.Error(w, http.StatusBadRequest, fmt.Sprintf("hour %d out of range 0-23", s.Hour))
			return
		}
		if s.DayOfWeek < 0 || s.DayOfWeek > 6 {
			httpx.Error(w, http.StatusBadRequest, fmt.Sprintf("day of week %d out of range 0-6", s.DayOfWeek))
			return
		}
	}
	if !h.ownsCampaign(w, r, req.CampaignID) {
		return
	}

	samples := make([]service.EngagementSample, len(req.EngagementData))
	for i, s := range req.EngagementData {
		samples[i] = service.EngagementSample{Hour: s.Hour, DayOfWeek: s.DayOfWeek, EngagementRate: s.EngagementRate}
	}
	best, err := service.OptimalTiming(samples)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	insights, err := json.Marshal(timingInsights{
		OptimalHour:            best.Hour,
		OptimalDay:             best.DayOfWeek,
		ExpectedEngagementRate: fmt.Sprintf("%.2f%%", best.EngagementRate*100),
	})
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	p := newPrediction(req.CampaignID, domain.TypeOptimalTiming)
	p.PredictedValue = strptr(strconv.FormatFloat(best.EngagementRate, 'f', -1, 64))
	p.Confidence = strptr("78")
	p.Insights = strptr(string(insights))
	p.Recommendation = strptr(fmt.Sprintf("Send your campaign on %s at %d:00 for maximum engagement.",
		service.DayName(best.DayOfWeek), best.Hour))

	if err := h.predictions.Create(r.Context(), p); err != nil {
		httpx.StoreError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, p)
}

// ownsCampaign enforces tenant isolation for campaign-scoped reads and
// generation. On failure it writes the response and returns false.
func (h *Handler) ownsCampaign(w http.ResponseWriter, r *http.Request, campaignID string) bool {
	id, ok := middleware.GetIdentity(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "missing or invalid authorization")
		return false
	}
	c, err := h.campaigns.GetByID(r.Context(), campaignID)
	if err != nil {
		httpx.StoreError(w, err)
		return false
	}
	if c == nil || c.UserID != id.UserID {
		httpx.Error(w, http.StatusNotFound, "campaign not found")
		return false
	}
	return true
}

func newPrediction(campaignID string, t domain.Type) *domain.Prediction {
	now := time.Now().UTC()
	return &domain.Prediction{
		ID:             uuid.NewString(),
		CampaignID:     campaignID,
		PredictionType: t,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func strptr(s string) *string { return &s }
