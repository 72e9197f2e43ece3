package mw

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// ipLimiters keeps one limiter per client IP. Entries expire after a
// quiet hour so the map does not grow with every address ever seen.
type ipLimiters struct {
	store *cache.Cache
	r     rate.Limit
	b     int
}

func newIPLimiters(r rate.Limit, b int) *ipLimiters {
	return &ipLimiters{
		store: cache.New(time.Hour, 10*time.Minute),
		r:     r,
		b:     b,
	}
}

func (i *ipLimiters) get(ip string) *rate.Limiter {
	if v, found := i.store.Get(ip); found {
		return v.(*rate.Limiter)
	}
	limiter := rate.NewLimiter(i.r, i.b)
	i.store.SetDefault(ip, limiter)
	return limiter
}

// RateLimiter is a middleware for IP-based rate limiting.
func RateLimiter(r rate.Limit, b int) gin.HandlerFunc {
	limiters := newIPLimiters(r, b)
	return func(c *gin.Context) {
		if !limiters.get(c.ClientIP()).Allow() {
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}
		c.Next()
	}
}
