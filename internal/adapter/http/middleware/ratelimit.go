package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter enforces per-IP rate limits. It is an explicitly-owned
// component: the janitor that evicts idle limiters runs only between
// Start and Stop, and time is injected so tests can drive eviction.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry

	rate    rate.Limit
	burst   int
	idleTTL time.Duration

	now  func() time.Time
	done chan struct{}
	once sync.Once
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a rate limiter allowing r requests per second
// with the given burst. Limiters idle longer than idleTTL are evicted.
func NewRateLimiter(r float64, b int, idleTTL time.Duration) *RateLimiter {
	if idleTTL <= 0 {
		idleTTL = 10 * time.Minute
	}
	return &RateLimiter{
		limiters: make(map[string]*limiterEntry),
		rate:     rate.Limit(r),
		burst:    b,
		idleTTL:  idleTTL,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// WithClock overrides the time source, for tests.
func (rl *RateLimiter) WithClock(now func() time.Time) *RateLimiter {
	rl.now = now
	return rl
}

// Start launches the eviction janitor. Call Stop to end it.
func (rl *RateLimiter) Start() {
	go func() {
		ticker := time.NewTicker(rl.idleTTL / 2)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rl.evictIdle()
			case <-rl.done:
				return
			}
		}
	}()
}

// Stop ends the janitor. Safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.done) })
}

func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, ok := rl.limiters[ip]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[ip] = entry
	}
	entry.lastSeen = rl.now()
	return entry.limiter
}

// evictIdle drops limiters not seen within idleTTL.
func (rl *RateLimiter) evictIdle() {
	cutoff := rl.now().Add(-rl.idleTTL)

	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, entry := range rl.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(rl.limiters, ip)
		}
	}
}

// Limit is a middleware that enforces rate limiting per IP.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limiter := rl.getLimiter(getIP(r))

		if !limiter.Allow() {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// getIP extracts the client IP from the request.
func getIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return r.RemoteAddr
}
