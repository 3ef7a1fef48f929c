package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"marketing-dashboard/backend/internal/db"
	"marketing-dashboard/backend/internal/integration/domain"
	"marketing-dashboard/backend/internal/security"
	"marketing-dashboard/backend/internal/server/middleware"
)

// mockRepo implements repository.Repository for tests.
type mockRepo struct {
	created   []*domain.Integration
	createErr error
	byUser    map[string][]*domain.Integration
	byID      map[string]*domain.Integration
}

func (m *mockRepo) Create(ctx context.Context, i *domain.Integration) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, i)
	return nil
}

func (m *mockRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Integration, error) {
	out := m.byUser[userID]
	if out == nil {
		out = []*domain.Integration{}
	}
	return out, nil
}

func (m *mockRepo) GetByID(ctx context.Context, id string) (*domain.Integration, error) {
	return m.byID[id], nil
}

func authed(r *http.Request, userID string) *http.Request {
	return r.WithContext(middleware.WithIdentity(r.Context(), &security.Identity{UserID: userID}))
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestList_ScopedToCaller(t *testing.T) {
	repo := &mockRepo{byUser: map[string][]*domain.Integration{
		"user-1": {{ID: "i1", UserID: "user-1", Platform: domain.PlatformMailchimp, Name: "Newsletter"}},
		"user-2": {{ID: "i2", UserID: "user-2", Platform: domain.PlatformHubspot, Name: "CRM"}},
	}}
	h := NewHandler(repo)

	rec := httptest.NewRecorder()
	h.List(rec, authed(httptest.NewRequest(http.MethodGet, "/api/integrations", nil), "user-1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got []*domain.Integration
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 1 || got[0].ID != "i1" {
		t.Errorf("integrations = %+v, want only user-1's", got)
	}
}

func TestList_Unauthenticated(t *testing.T) {
	h := NewHandler(&mockRepo{})
	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/integrations", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestCreate_Success(t *testing.T) {
	repo := &mockRepo{}
	h := NewHandler(repo)

	body := strings.NewReader(`{"platform":"google_analytics","name":"Site Analytics","accountId":"GA-123"}`)
	req := authed(httptest.NewRequest(http.MethodPost, "/api/integrations", body), "user-1")
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if len(repo.created) != 1 {
		t.Fatalf("created = %d, want 1", len(repo.created))
	}
	integ := repo.created[0]
	if integ.UserID != "user-1" {
		t.Errorf("user id = %q, must come from the session", integ.UserID)
	}
	if !integ.IsActive {
		t.Error("new integrations must start active")
	}
	if integ.Platform != domain.PlatformGoogleAnalytics || integ.AccountID == nil || *integ.AccountID != "GA-123" {
		t.Errorf("integration = %+v", integ)
	}
}

func TestCreate_InvalidPlatform(t *testing.T) {
	h := NewHandler(&mockRepo{})
	body := strings.NewReader(`{"platform":"carrier_pigeon","name":"Nope"}`)
	rec := httptest.NewRecorder()
	h.Create(rec, authed(httptest.NewRequest(http.MethodPost, "/api/integrations", body), "user-1"))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCreate_StoreUnavailable(t *testing.T) {
	h := NewHandler(&mockRepo{createErr: db.ErrUnavailable})
	body := strings.NewReader(`{"platform":"mailchimp","name":"Newsletter"}`)
	rec := httptest.NewRecorder()
	h.Create(rec, authed(httptest.NewRequest(http.MethodPost, "/api/integrations", body), "user-1"))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestGetByID_OtherUsersIntegrationReadsAsNotFound(t *testing.T) {
	repo := &mockRepo{byID: map[string]*domain.Integration{
		"i2": {ID: "i2", UserID: "user-2", Platform: domain.PlatformHubspot, Name: "CRM", CreatedAt: time.Now()},
	}}
	h := NewHandler(repo)

	req := withURLParam(authed(httptest.NewRequest(http.MethodGet, "/api/integrations/i2", nil), "user-1"), "integrationID", "i2")
	rec := httptest.NewRecorder()
	h.GetByID(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for another user's integration", rec.Code)
	}
}
