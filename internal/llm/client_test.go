package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotel-backend/internal/domain/models"
)

func TestCompleteSendsHistoryAndReturnsText(t *testing.T) {
	var got completionRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Welcome to Alpin Resort!  "}}]}`))
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, APIKey: "test-key", Model: "test-model"}
	history := []models.Turn{
		{Role: models.RoleUser, Text: "hello"},
		{Role: models.RoleAssistant, Text: "hi"},
		{Role: models.RoleUser, Text: "any rooms?"},
	}
	out, err := c.Complete(context.Background(), "you are a booking assistant", history)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out != "Welcome to Alpin Resort!" {
		t.Fatalf("reply = %q", out)
	}
	if auth != "Bearer test-key" {
		t.Fatalf("authorization = %q", auth)
	}
	if got.Model != "test-model" {
		t.Fatalf("model = %q", got.Model)
	}
	if len(got.Messages) != 4 || got.Messages[0].Role != "system" {
		t.Fatalf("unexpected messages: %+v", got.Messages)
	}
	if got.Messages[3].Content != "any rooms?" {
		t.Fatalf("history order lost: %+v", got.Messages)
	}
}

func TestCompleteUnconfigured(t *testing.T) {
	c := &Client{}
	if _, err := c.Complete(context.Background(), "sys", nil); !errors.Is(err, ErrUnconfigured) {
		t.Fatalf("expected ErrUnconfigured, got %v", err)
	}
}

func TestCompleteNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, APIKey: "k"}
	if _, err := c.Complete(context.Background(), "", nil); err == nil {
		t.Fatal("expected error on 429")
	}
}

func TestCompleteEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, APIKey: "k"}
	if _, err := c.Complete(context.Background(), "", nil); err == nil {
		t.Fatal("expected error on empty choices")
	}
}
