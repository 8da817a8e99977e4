package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/yungbote/parampara-backend/internal/platform/apierr"
	"github.com/yungbote/parampara-backend/internal/platform/logger"
)

func TestModelSpecRoute(t *testing.T) {
	tests := []struct {
		spec ModelSpec
		want string
	}{
		{ModelSpec{Provider: "openai", Model: "gpt-5"}, "gpt-5"},
		{ModelSpec{Provider: "Anthropic", Model: "claude-sonnet-4-20250514"}, "anthropic/claude-sonnet-4-20250514"},
		{ModelSpec{Provider: "gemini", Model: "gemini-2.0-flash"}, "gemini/gemini-2.0-flash"},
		{ModelSpec{Model: "bare"}, "bare"},
	}
	for _, tt := range tests {
		if got := tt.spec.Route(); got != tt.want {
			t.Fatalf("Route(%+v) = %q, want %q", tt.spec, got, tt.want)
		}
	}
}

func TestNewSessionRequiresKey(t *testing.T) {
	f := NewFactory(logger.Nop(), Config{})
	if f.Configured() {
		t.Fatalf("expected unconfigured factory")
	}
	_, err := f.NewSession(ModelSpec{Provider: "openai", Model: "gpt-5"})
	if !errors.Is(err, apierr.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestSendMessage(t *testing.T) {
	var gotAuth, gotSession string
	var gotBody chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotSession = r.Header.Get("X-Session-Id")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"namaste"}}]}`))
	}))
	defer srv.Close()

	f := NewFactory(logger.Nop(), Config{APIKey: "k-123", BaseURL: srv.URL + "/"})
	s, err := f.NewSession(ModelSpec{Provider: "anthropic", Model: "claude-sonnet-4-20250514"})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	out, err := s.SendMessage(context.Background(), "hello")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if out != "namaste" {
		t.Fatalf("unexpected completion %q", out)
	}
	if gotAuth != "Bearer k-123" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotSession == "" || gotSession != s.ID() {
		t.Fatalf("session header %q does not match id %q", gotSession, s.ID())
	}
	if gotBody.Model != "anthropic/claude-sonnet-4-20250514" {
		t.Fatalf("unexpected routed model %q", gotBody.Model)
	}
	if len(gotBody.Messages) != 2 || gotBody.Messages[0].Role != "system" || gotBody.Messages[0].Content != DefaultSystemMessage {
		t.Fatalf("unexpected messages %+v", gotBody.Messages)
	}
	if gotBody.Messages[1].Content != "hello" {
		t.Fatalf("unexpected user message %+v", gotBody.Messages[1])
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	f := NewFactory(logger.Nop(), Config{APIKey: "k"})
	a, _ := f.NewSession(ModelSpec{Provider: "openai", Model: "gpt-5"})
	b, _ := f.NewSession(ModelSpec{Provider: "openai", Model: "gpt-5"})
	if a.ID() == b.ID() {
		t.Fatalf("expected distinct session ids")
	}
}

func TestSendMessageProviderFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"non-2xx", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
		}},
		{"empty choices", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}},
		{"not json", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		}},
		{"timeout", func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				tt.handler(w, r)
			}))
			defer srv.Close()

			f := NewFactory(logger.Nop(), Config{APIKey: "k", BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
			s, err := f.NewSession(ModelSpec{Provider: "gemini", Model: "gemini-2.0-flash"})
			if err != nil {
				t.Fatalf("NewSession: %v", err)
			}
			_, err = s.SendMessage(context.Background(), "x")
			if !IsProviderFailure(err) {
				t.Fatalf("expected provider failure, got %v", err)
			}
			if n := calls.Load(); n != 1 {
				t.Fatalf("expected exactly one call, got %d", n)
			}
		})
	}
}
