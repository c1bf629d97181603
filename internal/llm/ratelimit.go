package llm

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimitProvider is a decorator that spaces outgoing requests.
type RateLimitProvider struct {
	inner   Provider
	limiter *rate.Limiter
}

// WithRateLimit wraps a Provider so that at most requestsPerMin calls start
// per minute. A non-positive limit returns p unchanged.
func WithRateLimit(p Provider, requestsPerMin int) Provider {
	if requestsPerMin <= 0 {
		return p
	}
	return &RateLimitProvider{
		inner:   p,
		limiter: rate.NewLimiter(rate.Limit(float64(requestsPerMin)/60.0), max(1, requestsPerMin/10)),
	}
}

func (r *RateLimitProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, &Error{Kind: KindRateLimited, Provider: "local", Err: err}
	}
	return r.inner.Generate(ctx, req)
}

func (r *RateLimitProvider) ModelID() string {
	return r.inner.ModelID()
}
