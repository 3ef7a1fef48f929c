package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"marketing-dashboard/backend/internal/alert/domain"
	"marketing-dashboard/backend/internal/security"
	"marketing-dashboard/backend/internal/server/middleware"
	userdomain "marketing-dashboard/backend/internal/user/domain"
)

// mockAlertRepo implements repository.Repository for tests.
type mockAlertRepo struct {
	created []*domain.Alert
	byUser  map[string][]*domain.Alert
	byID    map[string]*domain.Alert
	read    []string
}

func (m *mockAlertRepo) Create(ctx context.Context, a *domain.Alert) error {
	m.created = append(m.created, a)
	return nil
}

func (m *mockAlertRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Alert, error) {
	out := m.byUser[userID]
	if out == nil {
		out = []*domain.Alert{}
	}
	return out, nil
}

func (m *mockAlertRepo) ListUnreadByUser(ctx context.Context, userID string) ([]*domain.Alert, error) {
	out := []*domain.Alert{}
	for _, a := range m.byUser[userID] {
		if !a.IsRead {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAlertRepo) GetByID(ctx context.Context, id string) (*domain.Alert, error) {
	return m.byID[id], nil
}

func (m *mockAlertRepo) MarkAsRead(ctx context.Context, id string, at time.Time) error {
	m.read = append(m.read, id)
	return nil
}

// mockUserGetter implements rbac.UserGetter for tests.
type mockUserGetter struct {
	users map[string]*userdomain.User
}

func (m *mockUserGetter) GetByID(ctx context.Context, id string) (*userdomain.User, error) {
	return m.users[id], nil
}

func authed(r *http.Request, userID string) *http.Request {
	return r.WithContext(middleware.WithIdentity(r.Context(), &security.Identity{UserID: userID}))
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestListUnread_FiltersRead(t *testing.T) {
	repo := &mockAlertRepo{byUser: map[string][]*domain.Alert{
		"user-1": {
			{ID: "a1", UserID: "user-1", IsRead: false},
			{ID: "a2", UserID: "user-1", IsRead: true},
		},
	}}
	h := NewHandler(repo, &mockUserGetter{})

	rec := httptest.NewRecorder()
	h.ListUnread(rec, authed(httptest.NewRequest(http.MethodGet, "/api/alerts/unread", nil), "user-1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "a1") || strings.Contains(rec.Body.String(), "a2") {
		t.Errorf("body = %q, want unread only", rec.Body.String())
	}
}

func TestMarkAsRead(t *testing.T) {
	repo := &mockAlertRepo{byID: map[string]*domain.Alert{
		"a1": {ID: "a1", UserID: "user-1"},
	}}
	h := NewHandler(repo, &mockUserGetter{})

	req := withURLParam(authed(httptest.NewRequest(http.MethodPost, "/api/alerts/a1/read", nil), "user-1"), "alertID", "a1")
	rec := httptest.NewRecorder()
	h.MarkAsRead(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if len(repo.read) != 1 || repo.read[0] != "a1" {
		t.Errorf("read = %v", repo.read)
	}
	if !strings.Contains(rec.Body.String(), `"success":true`) {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestMarkAsRead_OtherUsersAlert(t *testing.T) {
	repo := &mockAlertRepo{byID: map[string]*domain.Alert{
		"a1": {ID: "a1", UserID: "user-2"},
	}}
	h := NewHandler(repo, &mockUserGetter{})

	req := withURLParam(authed(httptest.NewRequest(http.MethodPost, "/api/alerts/a1/read", nil), "user-1"), "alertID", "a1")
	rec := httptest.NewRecorder()
	h.MarkAsRead(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for another user's alert", rec.Code)
	}
	if len(repo.read) != 0 {
		t.Error("MarkAsRead must not run for another user's alert")
	}
}

func TestCreate_AdminOnly(t *testing.T) {
	repo := &mockAlertRepo{}
	users := &mockUserGetter{users: map[string]*userdomain.User{
		"admin-1": {ID: "admin-1", Role: userdomain.RoleAdmin},
		"user-1":  {ID: "user-1", Role: userdomain.RoleUser},
	}}
	h := NewHandler(repo, users)

	body := `{"userId":"user-1","alertType":"budget_threshold","title":"Budget nearly spent","severity":"warning"}`

	rec := httptest.NewRecorder()
	h.Create(rec, authed(httptest.NewRequest(http.MethodPost, "/api/alerts", strings.NewReader(body)), "user-1"))
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403 for non-admin", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Create(rec, authed(httptest.NewRequest(http.MethodPost, "/api/alerts", strings.NewReader(body)), "admin-1"))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 for admin: %s", rec.Code, rec.Body.String())
	}
	if len(repo.created) != 1 {
		t.Fatalf("created = %d, want 1", len(repo.created))
	}
	a := repo.created[0]
	if a.UserID != "user-1" || a.AlertType != domain.TypeBudgetThreshold || a.Severity != domain.SeverityWarning {
		t.Errorf("alert = %+v", a)
	}
	if a.IsRead {
		t.Error("new alerts must start unread")
	}
}

func TestCreate_InvalidType(t *testing.T) {
	users := &mockUserGetter{users: map[string]*userdomain.User{
		"admin-1": {ID: "admin-1", Role: userdomain.RoleAdmin},
	}}
	h := NewHandler(&mockAlertRepo{}, users)

	body := strings.NewReader(`{"userId":"user-1","alertType":"smoke_signal","title":"T"}`)
	rec := httptest.NewRecorder()
	h.Create(rec, authed(httptest.NewRequest(http.MethodPost, "/api/alerts", body), "admin-1"))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCreate_Unauthenticated(t *testing.T) {
	h := NewHandler(&mockAlertRepo{}, &mockUserGetter{})
	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/alerts", strings.NewReader(`{}`)))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
