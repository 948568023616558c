package middleware

import (
	"net/http"
	"sync"
	"time"

	"consultorio/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiterStore holds a map of IP addresses to their rate limiters.
type rateLimiterStore struct {
	limiters map[string]*limiterEntry
	perMin   int
	mu       sync.Mutex
}

func newRateLimiterStore(perMin int) *rateLimiterStore {
	if perMin <= 0 {
		perMin = 100
	}
	return &rateLimiterStore{limiters: make(map[string]*limiterEntry), perMin: perMin}
}

// getLimiter returns the rate limiter for a given IP, creating one if it doesn't exist.
func (s *rateLimiterStore) getLimiter(ip string, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.limiters[ip]
	if !exists {
		e = &limiterEntry{limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.perMin)), s.perMin)}
		s.limiters[ip] = e
	}
	e.lastSeen = now
	return e.limiter
}

// sweep forgets IPs idle for longer than idle.
func (s *rateLimiterStore) sweep(now time.Time, idle time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ip, e := range s.limiters {
		if now.Sub(e.lastSeen) > idle {
			delete(s.limiters, ip)
		}
	}
}

// RateLimitMiddleware allows perMin requests per minute per client IP, with a
// burst of the same size.
func RateLimitMiddleware(perMin int) gin.HandlerFunc {
	store := newRateLimiterStore(perMin)
	var requests int
	var mu sync.Mutex
	return func(c *gin.Context) {
		now := time.Now()
		ip := getClientIP(c)
		if !store.getLimiter(ip, now).Allow() {
			utils.GetLogger().Warn("Rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, utils.ErrorResponse{Message: "Rate limit exceeded. Try again later."})
			return
		}

		mu.Lock()
		requests++
		if requests%1000 == 0 {
			store.sweep(now, 10*time.Minute)
		}
		mu.Unlock()
		c.Next()
	}
}
