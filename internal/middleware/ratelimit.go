package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/BruksfildServices01/restaurant-floor/internal/httperr"
)

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	every time.Duration
	burst int

	mu  sync.Mutex
	ips map[string]*rate.Limiter
}

func NewRateLimiter(every time.Duration, burst int) *RateLimiter {
	return &RateLimiter{
		every: every,
		burst: burst,
		ips:   make(map[string]*rate.Limiter),
	}
}

// NewStrictRateLimiter is tuned for login: five attempts, then one more
// every twelve seconds.
func NewStrictRateLimiter() *RateLimiter {
	return NewRateLimiter(12*time.Second, 5)
}

func (rl *RateLimiter) limiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	l, ok := rl.ips[ip]
	if !ok {
		l = rate.NewLimiter(rate.Every(rl.every), rl.burst)
		rl.ips[ip] = l
	}
	return l
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiter(c.ClientIP()).Allow() {
			httperr.Write(c, http.StatusTooManyRequests, "too_many_requests", "too many attempts, wait a moment")
			c.Abort()
			return
		}
		c.Next()
	}
}
