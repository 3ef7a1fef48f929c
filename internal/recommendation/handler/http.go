// Package handler exposes the recommendation endpoints.
package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	alertdomain "marketing-dashboard/backend/internal/alert/domain"
	campdomain "marketing-dashboard/backend/internal/campaign/domain"
	"marketing-dashboard/backend/internal/httpx"
	"marketing-dashboard/backend/internal/llm"
	"marketing-dashboard/backend/internal/recommendation/domain"
	"marketing-dashboard/backend/internal/recommendation/repository"
	"marketing-dashboard/backend/internal/recommendation/service"
	"marketing-dashboard/backend/internal/server/middleware"
)

const headlineSystemPrompt = "You are a marketing copywriting expert. Given a campaign headline, " +
	"generate exactly 3 improved alternatives, one per line, with no numbering or commentary."

// CampaignGetter resolves campaigns for ownership checks.
type CampaignGetter interface {
	GetByID(ctx context.Context, id string) (*campdomain.Campaign, error)
}

// AlertCreator persists the notification raised when a recommendation is created.
type AlertCreator interface {
	Create(ctx context.Context, a *alertdomain.Alert) error
}

type Handler struct {
	recs      repository.Repository
	campaigns CampaignGetter
	alerts    AlertCreator
	generator llm.Invoker
	log       *slog.Logger
}

// NewHandler returns a recommendation handler on the given collaborators.
func NewHandler(recs repository.Repository, campaigns CampaignGetter, alerts AlertCreator, generator llm.Invoker, log *slog.Logger) *Handler {
	return &Handler{recs: recs, campaigns: campaigns, alerts: alerts, generator: generator, log: log}
}

// List returns the campaign's recommendations, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "campaignID")
	if _, ok := h.ownedCampaign(w, r, campaignID); !ok {
		return
	}
	out, err := h.recs.ListByCampaign(r.Context(), campaignID)
	if err != nil {
		httpx.StoreError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// ListPending returns the campaign's pending recommendations, highest
// priority first.
func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "campaignID")
	if _, ok := h.ownedCampaign(w, r, campaignID); !ok {
		return
	}
	out, err := h.recs.ListPendingByCampaign(r.Context(), campaignID)
	if err != nil {
		httpx.StoreError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

type headlineRequest struct {
	CampaignID      string `json:"campaignId"`
	CurrentHeadline string `json:"currentHeadline"`
}

// GenerateHeadline asks the language model for improved headline alternatives
// and persists them as a high-priority recommendation. Generation failures
// surface as 502; nothing is persisted in that case.
func (h *Handler) GenerateHeadline(w http.ResponseWriter, r *http.Request) {
	var req headlineRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CurrentHeadline == "" {
		httpx.Error(w, http.StatusBadRequest, "current headline is required")
		return
	}
	c, ok := h.ownedCampaign(w, r, req.CampaignID)
	if !ok {
		return
	}

	suggested, err := h.generator.Invoke(r.Context(), []llm.Message{
		{Role: "system", Content: headlineSystemPrompt},
		{Role: "user", Content: fmt.Sprintf("Current headline: %q", req.CurrentHeadline)},
	})
	if err != nil {
		h.log.Error("recommendation: headline generation failed", slog.String("err", err.Error()))
		httpx.Error(w, http.StatusBadGateway, "headline generation failed")
		return
	}

	rec := newRecommendation(req.CampaignID, domain.TypeHeadlineOptimization, domain.PriorityHigh)
	rec.CurrentValue = strptr(req.CurrentHeadline)
	rec.SuggestedValue = strptr(suggested)
	rec.ExpectedImpact = strptr("15")

	if err := h.recs.Create(r.Context(), rec); err != nil {
		httpx.StoreError(w, err)
		return
	}
	h.notify(r.Context(), c)
	httpx.WriteJSON(w, http.StatusCreated, rec)
}

type audienceSegment struct {
	Segment        string  `json:"segment"`
	Size           int     `json:"size"`
	EngagementRate float64 `json:"engagementRate"`
}

type segmentationRequest struct {
	CampaignID   string            `json:"campaignId"`
	AudienceData []audienceSegment `json:"audienceData"`
}

// GenerateSegmentation ranks the submitted audience segments by engagement
// and persists the top three as a targeting recommendation.
func (h *Handler) GenerateSegmentation(w http.ResponseWriter, r *http.Request) {
	var req segmentationRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	c, ok := h.ownedCampaign(w, r, req.CampaignID)
	if !ok {
		return
	}

	segments := make([]service.AudienceSegment, len(req.AudienceData))
	for i, s := range req.AudienceData {
		segments[i] = service.AudienceSegment{Segment: s.Segment, Size: s.Size, EngagementRate: s.EngagementRate}
	}
	top, err := service.TopSegments(segments, 3)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	rec := newRecommendation(req.CampaignID, domain.TypeAudienceSegmentation, domain.PriorityHigh)
	rec.CurrentValue = strptr("Broad audience targeting")
	rec.SuggestedValue = strptr(service.SegmentationSuggestion(top))
	rec.ExpectedImpact = strptr("22")

	if err := h.recs.Create(r.Context(), rec); err != nil {
		httpx.StoreError(w, err)
		return
	}
	h.notify(r.Context(), c)
	httpx.WriteJSON(w, http.StatusCreated, rec)
}

// Apply marks the recommendation applied and stamps applied_at. Applying an
// already-resolved recommendation is a no-op that still returns the row.
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.ownedRecommendation(w, r)
	if !ok {
		return
	}
	if err := h.recs.Apply(r.Context(), rec.ID, time.Now().UTC()); err != nil {
		httpx.StoreError(w, err)
		return
	}
	h.respondWith(w, r, rec.ID)
}

// Dismiss marks the recommendation dismissed.
func (h *Handler) Dismiss(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.ownedRecommendation(w, r)
	if !ok {
		return
	}
	if err := h.recs.Dismiss(r.Context(), rec.ID, time.Now().UTC()); err != nil {
		httpx.StoreError(w, err)
		return
	}
	h.respondWith(w, r, rec.ID)
}

func (h *Handler) respondWith(w http.ResponseWriter, r *http.Request, id string) {
	rec, err := h.recs.GetByID(r.Context(), id)
	if err != nil {
		httpx.StoreError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rec)
}

// notify raises a recommendation_available alert for the campaign owner.
// The alert is best-effort: the recommendation is already persisted, so a
// failed notification is logged and swallowed rather than failing the request.
func (h *Handler) notify(ctx context.Context, c *campdomain.Campaign) {
	msg := fmt.Sprintf("A new optimization recommendation is ready for %q.", c.Name)
	a := &alertdomain.Alert{
		ID:         uuid.NewString(),
		UserID:     c.UserID,
		CampaignID: &c.ID,
		AlertType:  alertdomain.TypeRecommendationAvailable,
		Title:      "New recommendation available",
		Message:    &msg,
		Severity:   alertdomain.SeverityInfo,
		CreatedAt:  time.Now().UTC(),
	}
	if err := h.alerts.Create(ctx, a); err != nil {
		h.log.Warn("recommendation: alert fan-out failed",
			slog.String("campaign_id", c.ID), slog.String("err", err.Error()))
	}
}

// ownedCampaign enforces tenant isolation for campaign-scoped operations.
func (h *Handler) ownedCampaign(w http.ResponseWriter, r *http.Request, campaignID string) (*campdomain.Campaign, bool) {
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

// ownedRecommendation resolves the recommendation from the URL and checks the
// caller owns its campaign.
func (h *Handler) ownedRecommendation(w http.ResponseWriter, r *http.Request) (*domain.Recommendation, bool) {
	rec, err := h.recs.GetByID(r.Context(), chi.URLParam(r, "recommendationID"))
	if err != nil {
		httpx.StoreError(w, err)
		return nil, false
	}
	if rec == nil {
		httpx.Error(w, http.StatusNotFound, "recommendation not found")
		return nil, false
	}
	if _, ok := h.ownedCampaign(w, r, rec.CampaignID); !ok {
		return nil, false
	}
	return rec, true
}

func newRecommendation(campaignID string, t domain.Type, p domain.Priority) *domain.Recommendation {
	now := time.Now().UTC()
	return &domain.Recommendation{
		ID:                 uuid.NewString(),
		CampaignID:         campaignID,
		RecommendationType: t,
		Priority:           p,
		Status:             domain.StatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

func strptr(s string) *string { return &s }
