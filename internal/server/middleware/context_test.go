package middleware

import (
	"context"
	"testing"

	"marketing-dashboard/backend/internal/security"
)

func TestGetIdentity_Unset(t *testing.T) {
	if _, ok := GetIdentity(context.Background()); ok {
		t.Error("GetIdentity on empty context should return false")
	}
}

func TestWithIdentity_RoundTrip(t *testing.T) {
	id := &security.Identity{UserID: "user-1", Email: "a@b.c"}
	ctx := WithIdentity(context.Background(), id)

	got, ok := GetIdentity(ctx)
	if !ok {
		t.Fatal("GetIdentity should return true")
	}
	if got.UserID != "user-1" || got.Email != "a@b.c" {
		t.Errorf("identity = %+v, want stored value", got)
	}
}

func TestRID_Unset(t *testing.T) {
	if rid := RID(context.Background()); rid != "" {
		t.Errorf("RID on empty context = %q, want empty", rid)
	}
}
