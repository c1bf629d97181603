package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/focoleve/internal/store"
	"go.uber.org/zap"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry, rate limit and logging
// middleware.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *zap.Logger) (Provider, error) {
	if !cfg.Discover() {
		return nil, cfg.Validate()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	ep := cfg.Endpoints[cfg.Provider]
	switch cfg.Provider {
	case Anthropic:
		base, err = NewAnthropicProvider(ep)
	case OpenAI:
		base, err = NewOpenAIProvider(ep)
	case Gemini:
		base, err = NewGeminiProvider(ctx, ep)
	case OpenRouter:
		base, err = NewOpenRouterProvider(ep)
	case Mock:
		base = NewFake()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → timeout → retry → rate limit → logging → base
	logged := WithLogging(base, cfg.Provider, eventRepo, logger)
	limited := WithRateLimit(logged, cfg.RequestsPerMinute)
	retried := WithRetry(limited, cfg.Retry)
	if cfg.Timeout <= 0 {
		return retried, nil
	}
	return &timeoutProvider{Provider: retried, timeout: cfg.Timeout}, nil
}

// timeoutProvider bounds each Generate call, retries included.
type timeoutProvider struct {
	Provider
	timeout time.Duration
}

func (t *timeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.Provider.Generate(ctx, req)
}
