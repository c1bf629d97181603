package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cc := openai.DefaultConfig("test-key")
	cc.BaseURL = server.URL + "/v1"
	return newOpenAIProvider("openai", cc, "gpt-4o-mini")
}

func chatCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
	}
}

func replyJSON(body any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(body)
	}
}

func replyStatus(status int, body any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}
}

func TestOpenAIProvider_StructuredAnswer(t *testing.T) {
	var sent openai.ChatCompletionRequest
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&sent)
		replyJSON(chatCompletion(`{"subject":"Math","hours":2}`, "stop"))(w, r)
	})

	resp, err := p.Generate(context.Background(), Request{
		System:    "You are a calm study mentor.",
		Messages:  []Message{{Role: RoleUser, Content: "Plan my week."}},
		Schema:    dayPlanSchema,
		MaxTokens: 256,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"subject":"Math","hours":2}` {
		t.Fatalf("content = %s", resp.Content)
	}
	if resp.Usage.InputTokens != 40 || resp.Usage.OutputTokens != 25 || resp.Usage.TotalTokens != 65 {
		t.Fatalf("usage = %+v", resp.Usage)
	}
	if resp.StopReason != "end" {
		t.Fatalf("stop reason = %q", resp.StopReason)
	}

	if len(sent.Messages) != 2 || sent.Messages[0].Role != openai.ChatMessageRoleSystem {
		t.Fatalf("messages = %+v", sent.Messages)
	}
	if sent.ResponseFormat == nil || sent.ResponseFormat.Type != openai.ChatCompletionResponseFormatTypeJSONSchema {
		t.Fatalf("response format = %+v", sent.ResponseFormat)
	}
}

func TestOpenAIProvider_TruncatedStructuredAnswer(t *testing.T) {
	p := newTestOpenAIProvider(t, replyJSON(chatCompletion(`{"subject":"Ma`, "length")))

	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "Plan my week."}},
		Schema:   dayPlanSchema,
	})
	if !IsKind(err, KindTruncated) {
		t.Fatalf("expected truncated response, got %v", err)
	}
}

func TestOpenAIProvider_TruncatedTextIsKept(t *testing.T) {
	p := newTestOpenAIProvider(t, replyJSON(chatCompletion("Breathe in, breathe", "length")))

	resp, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "I'm anxious"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StopReason != "max_tokens" || resp.Text() != "Breathe in, breathe" {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestOpenAIProvider_ErrorKinds(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   Kind
	}{
		{"rate limit", http.StatusTooManyRequests, KindRateLimited},
		{"bad key", http.StatusUnauthorized, KindRejected},
		{"server error", http.StatusInternalServerError, KindUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestOpenAIProvider(t, replyStatus(tt.status, map[string]any{
				"error": map[string]any{"type": "test", "message": tt.name},
			}))
			_, err := p.Generate(context.Background(), Request{
				Messages:  []Message{{Role: RoleUser, Content: "test"}},
				MaxTokens: 100,
			})
			if !IsKind(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestOpenAIProvider_NoChoices(t *testing.T) {
	body := chatCompletion("", "stop")
	body["choices"] = []map[string]any{}
	p := newTestOpenAIProvider(t, replyJSON(body))

	_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	if !IsKind(err, KindMalformed) {
		t.Fatalf("expected malformed response, got %v", err)
	}
}

func TestNewOpenAIProvider(t *testing.T) {
	if _, err := NewOpenAIProvider(Endpoint{Model: "gpt-4o"}); err == nil {
		t.Fatal("expected error without API key")
	}

	p, err := NewOpenAIProvider(Endpoint{
		APIKey:  "test-key",
		Model:   "gpt-4o",
		BaseURL: "https://proxy.example/v1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "gpt-4o" {
		t.Fatalf("ModelID() = %q", p.ModelID())
	}
}
