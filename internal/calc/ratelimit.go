package calc

import (
	"net/http"

	"golang.org/x/time/rate"

	"github.com/atmx/payoff-engine/internal/logging"
	"github.com/atmx/payoff-engine/internal/metrics"
)

// RateLimit rejects requests beyond rps sustained (burst peak) with 429.
// The bucket is shared by all clients.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				metrics.RateLimited.Inc()
				logging.FromContext(r.Context()).Warn("rate limit exceeded", "path", r.URL.Path, "remote", r.RemoteAddr)
				writeError(w, "too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
