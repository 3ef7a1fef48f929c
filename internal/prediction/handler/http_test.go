package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	campdomain "marketing-dashboard/backend/internal/campaign/domain"
	"marketing-dashboard/backend/internal/prediction/domain"
	"marketing-dashboard/backend/internal/security"
	"marketing-dashboard/backend/internal/server/middleware"
)

// mockPredictionRepo implements repository.Repository for tests.
type mockPredictionRepo struct {
	created    []*domain.Prediction
	byCampaign map[string][]*domain.Prediction
	latest     map[string]*domain.Prediction
}

func (m *mockPredictionRepo) Create(ctx context.Context, p *domain.Prediction) error {
	m.created = append(m.created, p)
	return nil
}

func (m *mockPredictionRepo) ListByCampaign(ctx context.Context, campaignID string) ([]*domain.Prediction, error) {
	out := m.byCampaign[campaignID]
	if out == nil {
		out = []*domain.Prediction{}
	}
	return out, nil
}

func (m *mockPredictionRepo) GetLatestByType(ctx context.Context, campaignID string, t domain.Type) (*domain.Prediction, error) {
	return m.latest[campaignID+":"+string(t)], nil
}

// mockCampaignGetter implements CampaignGetter for tests.
type mockCampaignGetter struct {
	byID map[string]*campdomain.Campaign
}

func (m *mockCampaignGetter) GetByID(ctx context.Context, id string) (*campdomain.Campaign, error) {
	return m.byID[id], nil
}

func ownedCampaigns(userID string) *mockCampaignGetter {
	return &mockCampaignGetter{byID: map[string]*campdomain.Campaign{
		"c1": {ID: "c1", UserID: userID, Name: "Spring Sale"},
	}}
}

func authed(r *http.Request, userID string) *http.Request {
	return r.WithContext(middleware.WithIdentity(r.Context(), &security.Identity{UserID: userID}))
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestGeneratePerformance(t *testing.T) {
	predictions := &mockPredictionRepo{}
	h := NewHandler(predictions, ownedCampaigns("user-1"))

	body := strings.NewReader(`{"campaignId":"c1","historicalData":[
		{"impressions":1000,"clicks":50,"conversions":5,"spend":100},
		{"impressions":2000,"clicks":100,"conversions":10,"spend":200}]}`)
	rec := httptest.NewRecorder()
	h.GeneratePerformance(rec, authed(httptest.NewRequest(http.MethodPost, "/api/predictions/performance", body), "user-1"))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if len(predictions.created) != 1 {
		t.Fatalf("created = %d, want 1", len(predictions.created))
	}
	p := predictions.created[0]
	if p.PredictionType != domain.TypePerformance || p.CampaignID != "c1" {
		t.Errorf("prediction = %+v", p)
	}
	// 2000 impressions x 5% CTR x 10% conversion rate.
	if p.PredictedValue == nil || *p.PredictedValue != "10" {
		t.Errorf("predicted value = %v, want 10", p.PredictedValue)
	}
	if p.Confidence == nil || *p.Confidence != "85" {
		t.Errorf("confidence = %v, want 85", p.Confidence)
	}
	if p.Insights == nil || !strings.Contains(*p.Insights, `"avgCTR":"5.00%"`) ||
		!strings.Contains(*p.Insights, `"avgConversionRate":"10.00%"`) {
		t.Errorf("insights = %v", p.Insights)
	}
}

func TestGeneratePerformance_EmptyHistory(t *testing.T) {
	h := NewHandler(&mockPredictionRepo{}, ownedCampaigns("user-1"))
	body := strings.NewReader(`{"campaignId":"c1","historicalData":[]}`)
	rec := httptest.NewRecorder()
	h.GeneratePerformance(rec, authed(httptest.NewRequest(http.MethodPost, "/api/predictions/performance", body), "user-1"))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGeneratePerformance_OtherUsersCampaign(t *testing.T) {
	h := NewHandler(&mockPredictionRepo{}, ownedCampaigns("user-2"))
	body := strings.NewReader(`{"campaignId":"c1","historicalData":[{"impressions":100,"clicks":10,"conversions":1}]}`)
	rec := httptest.NewRecorder()
	h.GeneratePerformance(rec, authed(httptest.NewRequest(http.MethodPost, "/api/predictions/performance", body), "user-1"))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for another user's campaign", rec.Code)
	}
}

func TestGenerateOptimalTiming(t *testing.T) {
	predictions := &mockPredictionRepo{}
	h := NewHandler(predictions, ownedCampaigns("user-1"))

	body := strings.NewReader(`{"campaignId":"c1","engagementData":[
		{"hour":9,"dayOfWeek":1,"engagementRate":0.021},
		{"hour":18,"dayOfWeek":3,"engagementRate":0.054},
		{"hour":12,"dayOfWeek":5,"engagementRate":0.033}]}`)
	rec := httptest.NewRecorder()
	h.GenerateOptimalTiming(rec, authed(httptest.NewRequest(http.MethodPost, "/api/predictions/optimal-timing", body), "user-1"))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	p := predictions.created[0]
	if p.PredictionType != domain.TypeOptimalTiming {
		t.Errorf("type = %q", p.PredictionType)
	}
	if p.PredictedValue == nil || *p.PredictedValue != "0.054" {
		t.Errorf("predicted value = %v, want the winning engagement rate", p.PredictedValue)
	}
	if p.Confidence == nil || *p.Confidence != "78" {
		t.Errorf("confidence = %v, want 78", p.Confidence)
	}
	if p.Insights == nil || !strings.Contains(*p.Insights, `"optimalHour":18`) ||
		!strings.Contains(*p.Insights, `"optimalDay":3`) ||
		!strings.Contains(*p.Insights, `"expectedEngagementRate":"5.40%"`) {
		t.Errorf("insights = %v", p.Insights)
	}
	want := "Send your campaign on Wednesday at 18:00 for maximum engagement."
	if p.Recommendation == nil || *p.Recommendation != want {
		t.Errorf("recommendation = %v, want %q", p.Recommendation, want)
	}
}

func TestGenerateOptimalTiming_HourOutOfRange(t *testing.T) {
	h := NewHandler(&mockPredictionRepo{}, ownedCampaigns("user-1"))
	body := strings.NewReader(`{"campaignId":"c1","engagementData":[{"hour":24,"dayOfWeek":0,"engagementRate":1}]}`)
	rec := httptest.NewRecorder()
	h.GenerateOptimalTiming(rec, authed(httptest.NewRequest(http.MethodPost, "/api/predictions/optimal-timing", body), "user-1"))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestLatest_RequiresValidType(t *testing.T) {
	h := NewHandler(&mockPredictionRepo{}, ownedCampaigns("user-1"))
	req := withURLParam(authed(httptest.NewRequest(http.MethodGet, "/api/campaigns/c1/predictions/latest?type=horoscope", nil), "user-1"), "campaignID", "c1")
	rec := httptest.NewRecorder()
	h.Latest(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestLatest_NoneReturnsNull(t *testing.T) {
	h := NewHandler(&mockPredictionRepo{}, ownedCampaigns("user-1"))
	req := withURLParam(authed(httptest.NewRequest(http.MethodGet, "/api/campaigns/c1/predictions/latest?type=performance", nil), "user-1"), "campaignID", "c1")
	rec := httptest.NewRecorder()
	h.Latest(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "null" {
		t.Errorf("body = %q, want null", body)
	}
}

func TestList(t *testing.T) {
	repo := &mockPredictionRepo{byCampaign: map[string][]*domain.Prediction{
		"c1": {{ID: "p1", CampaignID: "c1", PredictionType: domain.TypePerformance}},
	}}
	h := NewHandler(repo, ownedCampaigns("user-1"))

	req := withURLParam(authed(httptest.NewRequest(http.MethodGet, "/api/campaigns/c1/predictions", nil), "user-1"), "campaignID", "c1")
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got []*domain.Prediction
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 1 || got[0].ID != "p1" {
		t.Errorf("predictions = %+v", got)
	}
}
