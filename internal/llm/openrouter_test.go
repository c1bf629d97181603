package llm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewOpenRouterProvider_RequiresKey(t *testing.T) {
	if _, err := NewOpenRouterProvider(Endpoint{Model: "google/gemini-2.5-flash"}); err == nil {
		t.Fatal("expected error for empty API key")
	}
}

func TestNewOpenRouterProvider_ModelPassThrough(t *testing.T) {
	p, err := NewOpenRouterProvider(Endpoint{APIKey: "sk-or-test", Model: "gpt-4o-mini"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// OpenRouter IDs are vendor-prefixed, so OpenAI aliases do not apply.
	if p.ModelID() != "gpt-4o-mini" {
		t.Fatalf("ModelID() = %q", p.ModelID())
	}
}

func TestOpenRouterProvider_SendsAttribution(t *testing.T) {
	var referer, title string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		referer = r.Header.Get("HTTP-Referer")
		title = r.Header.Get("X-Title")
		replyJSON(chatCompletion("Keep going.", "stop"))(w, r)
	}))
	t.Cleanup(server.Close)

	p, err := NewOpenRouterProvider(Endpoint{
		APIKey:  "sk-or-test",
		Model:   "google/gemini-2.5-flash",
		BaseURL: server.URL + "/v1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != "Keep going." {
		t.Fatalf("text = %q", resp.Text())
	}
	if referer != openRouterReferer || title != openRouterTitle {
		t.Fatalf("headers = %q, %q", referer, title)
	}
}

func TestOpenRouterProvider_ErrorsNameOpenRouter(t *testing.T) {
	server := httptest.NewServer(replyStatus(http.StatusTooManyRequests, map[string]any{
		"error": map[string]any{"message": "slow down"},
	}))
	t.Cleanup(server.Close)

	p, _ := NewOpenRouterProvider(Endpoint{APIKey: "k", Model: "m", BaseURL: server.URL})
	_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})

	var e *Error
	if !errors.As(err, &e) || e.Provider != "openrouter" || e.Kind != KindRateLimited {
		t.Fatalf("err = %v", err)
	}
}
