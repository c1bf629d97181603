package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// Provider sends one request to a language model.
type Provider interface {
	// Generate returns the model's answer. With req.Schema set, the content
	// has been checked against the schema.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the model the provider is configured for.
	ModelID() string
}

// Request is a single call.
type Request struct {
	System   string
	Messages []Message

	// Schema asks for JSON of this shape through the provider's structured
	// output support. Nil means free text.
	Schema *Schema

	// MaxTokens and Temperature are left to the provider when zero.
	MaxTokens   int
	Temperature float64
}

// Prompt is a request with one user message.
func Prompt(system, text string) Request {
	return Request{System: system, Messages: []Message{{Role: RoleUser, Content: text}}}
}

// Role is who wrote a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

// Schema is a JSON Schema document with a name. The name keys the compiled
// schema cache and is sent to providers that want one, so it must be
// unique per shape ("study-schedule").
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

type Response struct {
	// Content is the schema-checked JSON for structured requests and the
	// model's text otherwise.
	Content json.RawMessage
	Usage   Usage
	// Model is the model that answered, which may be more specific than
	// the configured ModelID.
	Model string
	// StopReason is "end" or "max_tokens".
	StopReason string
}

// Text returns the content with surrounding whitespace removed.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(string(r.Content))
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

type purposeKey struct{}

// WithPurpose labels the calls made with ctx. The label is stored with each
// request event and shown by "focoleve llm stats".
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "other".
func PurposeFrom(ctx context.Context) string {
	if p, _ := ctx.Value(purposeKey{}).(string); p != "" {
		return p
	}
	return "other"
}
