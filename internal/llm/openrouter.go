package llm

import (
	"cmp"
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouter lists apps by these headers.
const (
	openRouterReferer = "https://github.com/abhisek/focoleve"
	openRouterTitle   = "FOCO LEVE"
)

// NewOpenRouterProvider creates a Chat Completions provider for OpenRouter.
// Model IDs are passed through untouched ("google/gemini-2.5-flash").
func NewOpenRouterProvider(cfg Endpoint) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter: API key is required")
	}
	cc := openai.DefaultConfig(cfg.APIKey)
	cc.BaseURL = cmp.Or(cfg.BaseURL, defaultOpenRouterBaseURL)
	cc.HTTPClient = &http.Client{Transport: attribution{next: http.DefaultTransport}}
	return newOpenAIProvider("openrouter", cc, cfg.Model), nil
}

// attribution adds the OpenRouter app headers to every request.
type attribution struct {
	next http.RoundTripper
}

func (a attribution) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("HTTP-Referer", openRouterReferer)
	r.Header.Set("X-Title", openRouterTitle)
	return a.next.RoundTrip(r)
}
