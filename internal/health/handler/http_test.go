package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"marketing-dashboard/backend/internal/db"
)

func TestLive(t *testing.T) {
	h := NewHandler(db.NewHandle(""))
	rec := httptest.NewRecorder()
	h.Live(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestReady_StoreUnavailable(t *testing.T) {
	h := NewHandler(db.NewHandle(""))
	rec := httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}
