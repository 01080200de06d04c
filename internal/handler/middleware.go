package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/portfolio/backend/internal/ratelimit"
)

// SecurityHeaders adds security response headers (CSP, X-Frame-Options, etc.)
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("X-XSS-Protection", "0")
		h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
		h.Set("Content-Security-Policy", "default-src 'self'; script-src 'self'; frame-ancestors 'none'")
		h.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
		next.ServeHTTP(w, r)
	})
}

// RateLimit enforces the per-client submission limit. Denied requests get
// 429 with a Retry-After hint covering the full window; no handler logic
// (and no sink write) runs for them.
func RateLimit(limiter ratelimit.Limiter, retryAfter string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := ClientKey(r)
			decision, err := limiter.Allow(r.Context(), key)
			if err != nil {
				// Limiter trouble is not the client's fault; let the
				// request through rather than refusing submissions.
				slog.Error("rate limiter error, allowing request", "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if !decision.Allowed {
				slog.Warn("rate limit exceeded", "client", truncateKey(key))
				w.Header().Set("Retry-After", retryAfter)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error": "Too many requests. Please try again later.",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientKey derives the rate-limit identifier for the request: the first
// X-Forwarded-For entry, else X-Real-IP, else the literal "unknown" so
// clients behind an opaque path still share one bucket.
func ClientKey(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return "unknown"
}

// truncateKey shortens a client key for logging so full addresses do not
// end up in the logs.
func truncateKey(key string) string {
	if len(key) <= 8 {
		return key
	}
	return key[:8] + "***"
}

// Recover converts panics in downstream handlers into a generic 500 so an
// unexpected failure never leaks internals to the caller.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("panic in handler", "path", r.URL.Path, "panic", rec)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error": "An unexpected error occurred",
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
