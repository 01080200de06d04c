package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// CORSPolicy decides which origin is echoed back in CORS response headers
// and rejects requests from origins outside the policy.
type CORSPolicy struct {
	// AllowedOrigins is the exact-match allow-list. The first entry is the
	// fallback echoed to requests without a usable origin.
	AllowedOrigins []string
	// TrustedSuffixes admit any origin ending with one of them, so preview
	// deployments on the hosting platform keep working without allow-list
	// churn.
	TrustedSuffixes []string
}

// originAllowed reports whether origin passes the policy.
func (p *CORSPolicy) originAllowed(origin string) bool {
	for _, allowed := range p.AllowedOrigins {
		if origin == allowed {
			return true
		}
	}
	for _, suffix := range p.TrustedSuffixes {
		if strings.HasSuffix(origin, suffix) {
			return true
		}
	}
	return false
}

// allowOrigin returns the value for Access-Control-Allow-Origin: the
// request's own origin when it passes the policy, the default fallback
// otherwise.
func (p *CORSPolicy) allowOrigin(origin string) string {
	if origin != "" && p.originAllowed(origin) {
		return origin
	}
	if len(p.AllowedOrigins) > 0 {
		return p.AllowedOrigins[0]
	}
	return ""
}

// setHeaders writes the computed CORS headers for the given request origin.
func (p *CORSPolicy) setHeaders(w http.ResponseWriter, origin string) {
	w.Header().Set("Access-Control-Allow-Origin", p.allowOrigin(origin))
	w.Header().Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
}

// Middleware applies the policy to every request: preflights get an empty
// response with the computed headers, and substantive requests carrying an
// origin that fails the policy are rejected with 403 before any handler
// logic runs. Requests without an Origin header (curl, health probes) pass
// through.
func (p *CORSPolicy) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		p.setHeaders(w, origin)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		if origin != "" && !p.originAllowed(origin) {
			slog.Warn("rejected request from unauthorized origin", "origin", origin)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized origin"})
			return
		}

		next.ServeHTTP(w, r)
	})
}
