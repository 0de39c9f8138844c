package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/stallhq/storefront-api/internal/api/shared"
	"golang.org/x/time/rate"
)

// cleanupInterval is how often idle client limiters are discarded.
const cleanupInterval = 5 * time.Minute

// clientLimiter holds one client's token bucket and last access time.
type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter applies a per-client token bucket to the routes it wraps,
// keyed by client IP. Used on the auth endpoints, which are the only
// unauthenticated mutation surface.
type RateLimiter struct {
	perSecond rate.Limit
	burst     int

	mu      sync.Mutex
	clients map[string]*clientLimiter

	stopCh chan struct{}
}

// NewRateLimiter creates a RateLimiter allowing perMinute sustained
// requests with the given burst, and starts the background cleanup of
// idle entries.
func NewRateLimiter(perMinute, burst int) *RateLimiter {
	rl := &RateLimiter{
		perSecond: rate.Limit(float64(perMinute) / 60.0),
		burst:     burst,
		clients:   make(map[string]*clientLimiter),
		stopCh:    make(chan struct{}),
	}

	go rl.cleanupLoop()
	return rl
}

// Stop terminates the background cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

// Limit is the middleware enforcing the per-client budget.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := clientKey(r)

		if !rl.limiterFor(client).Allow() {
			slog.Warn("rate limit exceeded",
				slog.String("client", client),
				slog.String("path", r.URL.Path))
			w.Header().Set("Retry-After", "60")
			shared.RespondWithError(w, r, http.StatusTooManyRequests, "Too many requests")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// limiterFor returns the client's bucket, creating it on first sight.
func (rl *RateLimiter) limiterFor(client string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, ok := rl.clients[client]
	if !ok {
		entry = &clientLimiter{limiter: rate.NewLimiter(rl.perSecond, rl.burst)}
		rl.clients[client] = entry
	}
	entry.lastAccess = time.Now()
	return entry.limiter
}

// cleanupLoop periodically drops limiters idle for over an hour.
func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stopCh:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-time.Hour)
			rl.mu.Lock()
			for client, entry := range rl.clients {
				if entry.lastAccess.Before(cutoff) {
					delete(rl.clients, client)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// clientKey derives the rate-limit key from the request's remote address,
// which the RealIP middleware has already resolved.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
