package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestInvoke_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q, want /chat/completions", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q, want bearer test-key", got)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "test-model" || len(req.Messages) != 2 {
			t.Errorf("request = %+v, want model and 2 messages", req)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"Headline A\nHeadline B\nHeadline C"}}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", "test-model", time.Second)
	got, err := c.Invoke(context.Background(), []Message{
		{Role: "system", Content: "You are a marketing expert."},
		{Role: "user", Content: "Generate better alternatives."},
	})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if got != "Headline A\nHeadline B\nHeadline C" {
		t.Errorf("content = %q", got)
	}
}

func TestInvoke_NotConfigured(t *testing.T) {
	c := New("", "", "m", time.Second)
	if _, err := c.Invoke(context.Background(), nil); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}

func TestInvoke_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL, "", "m", time.Second)
	if _, err := c.Invoke(context.Background(), []Message{{Role: "user", Content: "hi"}}); err == nil {
		t.Error("Invoke should fail on non-2xx status")
	}
}

func TestInvoke_EmptyCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "", "m", time.Second)
	if _, err := c.Invoke(context.Background(), []Message{{Role: "user", Content: "hi"}}); err == nil {
		t.Error("Invoke should fail on empty choices")
	}
}
