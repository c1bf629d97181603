package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestFake_PlaysScriptInOrder(t *testing.T) {
	fake := NewFake(
		Canned{Text: "Take a short walk.", Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		Canned{Text: "Drink some water."},
	)

	first, err := fake.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Text() != "Take a short walk." || first.Usage.InputTokens != 10 || first.StopReason != "end" {
		t.Fatalf("first = %+v", first)
	}

	second, err := fake.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "second"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Text() != "Drink some water." {
		t.Fatalf("second = %q", second.Text())
	}

	reqs := fake.Requests()
	if len(reqs) != 2 || reqs[1].Messages[0].Content != "second" {
		t.Fatalf("requests = %+v", reqs)
	}
}

func TestFake_ExhaustedScriptIsUnavailable(t *testing.T) {
	fake := NewFake()
	_, err := fake.Generate(context.Background(), Request{})
	if !IsKind(err, KindUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}

	fake.Queue(Canned{Text: "back online"})
	resp, err := fake.Generate(context.Background(), Request{})
	if err != nil || resp.Text() != "back online" {
		t.Fatalf("resp = %+v, err = %v", resp, err)
	}
}

func TestFake_ChecksSchema(t *testing.T) {
	fake := NewFake(
		Canned{JSON: json.RawMessage(`{"subject":"Math","hours":2}`)},
		Canned{JSON: json.RawMessage(`{"subject":"Math"}`)},
	)

	if _, err := fake.Generate(context.Background(), Request{Schema: dayPlanSchema}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := fake.Generate(context.Background(), Request{Schema: dayPlanSchema}); !IsKind(err, KindMalformed) {
		t.Fatalf("expected malformed response, got %v", err)
	}
}

func TestFake_ReturnsScriptedError(t *testing.T) {
	fake := NewFake(Canned{Err: &Error{Kind: KindRateLimited, RetryAfter: time.Second}})
	if _, err := fake.Generate(context.Background(), Request{}); !IsKind(err, KindRateLimited) {
		t.Fatalf("expected rate limit, got %v", err)
	}
}

func TestError_Message(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{&Error{Kind: KindUnavailable}, "provider unavailable"},
		{&Error{Kind: KindRateLimited, Provider: "gemini", RetryAfter: 2 * time.Second, Err: errors.New("429")}, "gemini: rate limited (retry after 2s): 429"},
		{&Error{Kind: KindMalformed, Provider: "openai", Err: errors.New("bad JSON")}, "openai: malformed response: bad JSON"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestKindOf_ThroughWrapping(t *testing.T) {
	err := fmt.Errorf("generate schedule: %w", &Error{Kind: KindTruncated})
	if kind, ok := KindOf(err); !ok || kind != KindTruncated {
		t.Fatalf("KindOf = %v, %v", kind, ok)
	}
	if _, ok := KindOf(errors.New("plain")); ok {
		t.Fatal("plain errors carry no kind")
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "other" {
		t.Fatalf("expected 'other', got %q", p)
	}

	ctx = WithPurpose(ctx, "schedule")
	if p := PurposeFrom(ctx); p != "schedule" {
		t.Fatalf("expected 'schedule', got %q", p)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "anthropic without key",
			cfg:     Config{Provider: "anthropic"},
			wantErr: true,
		},
		{
			name:    "anthropic with key",
			cfg:     Config{Provider: "anthropic", Endpoints: map[string]Endpoint{Anthropic: {APIKey: "sk-test"}}},
			wantErr: false,
		},
		{
			name:    "openai without key",
			cfg:     Config{Provider: "openai"},
			wantErr: true,
		},
		{
			name:    "openai with key",
			cfg:     Config{Provider: "openai", Endpoints: map[string]Endpoint{OpenAI: {APIKey: "sk-test"}}},
			wantErr: false,
		},
		{
			name:    "mock needs no key",
			cfg:     Config{Provider: "mock"},
			wantErr: false,
		},
		{
			name:    "gemini without key",
			cfg:     Config{Provider: "gemini"},
			wantErr: true,
		},
		{
			name:    "openrouter with key",
			cfg:     Config{Provider: "openrouter", Endpoints: map[string]Endpoint{OpenRouter: {APIKey: "sk-or"}}},
			wantErr: false,
		},
		{
			name:    "no provider",
			cfg:     Config{},
			wantErr: true,
		},
		{
			name:    "unknown provider",
			cfg:     Config{Provider: "unknown"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Discover(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
		ok   bool
	}{
		{"explicit wins", Config{Provider: "openai", Endpoints: map[string]Endpoint{Gemini: {APIKey: "g"}}}, "openai", true},
		{"gemini first", Config{Endpoints: map[string]Endpoint{Gemini: {APIKey: "g"}, OpenAI: {APIKey: "o"}}}, "gemini", true},
		{"openai before anthropic", Config{Endpoints: map[string]Endpoint{OpenAI: {APIKey: "o"}, Anthropic: {APIKey: "a"}}}, "openai", true},
		{"openrouter last", Config{Endpoints: map[string]Endpoint{OpenRouter: {APIKey: "r"}}}, "openrouter", true},
		{"nothing", Config{}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			ok := cfg.Discover()
			if ok != tt.ok || cfg.Provider != tt.want {
				t.Fatalf("Discover() = %v, provider %q; want %v, %q", ok, cfg.Provider, tt.ok, tt.want)
			}
		})
	}
}

func TestDefaultConfig_SingleAttempt(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Retry.MaxAttempts != 1 {
		t.Fatalf("MaxAttempts = %d, want 1", cfg.Retry.MaxAttempts)
	}
	if cfg.Provider != "" {
		t.Fatalf("Provider = %q, want auto-discovery", cfg.Provider)
	}
}

func TestResponse_Text(t *testing.T) {
	r := &Response{Content: json.RawMessage("  Keep going.\n")}
	if r.Text() != "Keep going." {
		t.Fatalf("Text() = %q", r.Text())
	}
	var nilResp *Response
	if nilResp.Text() != "" {
		t.Fatal("nil response should yield empty text")
	}
}

func TestNewProvider_Mock(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock"}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "fake" {
		t.Fatalf("ModelID() = %q", p.ModelID())
	}
}

func TestNewProvider_Unconfigured(t *testing.T) {
	if _, err := NewProvider(context.Background(), Config{}, nil, nil); err == nil {
		t.Fatal("expected error without any provider")
	}
}

type deadlineProbe struct {
	hasDeadline bool
}

func (d *deadlineProbe) Generate(ctx context.Context, _ Request) (*Response, error) {
	_, d.hasDeadline = ctx.Deadline()
	return &Response{}, nil
}

func (d *deadlineProbe) ModelID() string { return "probe" }

func TestTimeoutProvider_SetsDeadline(t *testing.T) {
	probe := &deadlineProbe{}
	p := &timeoutProvider{Provider: probe, timeout: time.Second}
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !probe.hasDeadline {
		t.Fatal("expected a deadline on the context")
	}
	if p.ModelID() != "probe" {
		t.Fatalf("ModelID() = %q", p.ModelID())
	}
}
