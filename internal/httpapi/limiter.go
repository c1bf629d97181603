package httpapi

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

const (
	limiterCapacity = 1000
	limiterTTL      = 5 * time.Minute
)

// clientLimiter keeps one token bucket per client, evicting idle clients.
type clientLimiter struct {
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func newClientLimiter(requestsPerMin int) *clientLimiter {
	return &clientLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](limiterCapacity, nil, limiterTTL),
		rate:     rate.Limit(float64(requestsPerMin) / 60.0),
		burst:    max(1, requestsPerMin/10),
	}
}

func (l *clientLimiter) allow(key string) bool {
	lim, found := l.limiters.Get(key)
	if !found {
		lim = rate.NewLimiter(l.rate, l.burst)
		l.limiters.Add(key, lim)
	}
	return lim.Allow()
}

// middleware rejects requests over the per-client budget with 429.
func (l *clientLimiter) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			tooManyRequests(c)
			return
		}
		c.Next()
	}
}
