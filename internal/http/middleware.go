package http

import (
	"net/http"
	"strings"

	"github.com/redmonkez12/skill-assessment-api/internal/storage"
)

const (
	apiCSP     = "default-src 'none'; frame-ancestors 'none'"
	swaggerCSP = "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data:"
)

// SecurityHeaders adds security-related headers to all responses.
// API responses are never cached. Uploaded photos are immutable.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

		switch {
		case strings.HasPrefix(r.URL.Path, "/swagger/"):
			h.Set("Content-Security-Policy", swaggerCSP)
		case strings.HasPrefix(r.URL.Path, storage.URLPrefix+"/"):
			h.Set("Content-Security-Policy", apiCSP)
			h.Set("Cache-Control", "public, max-age=86400, immutable")
		default:
			h.Set("Content-Security-Policy", apiCSP)
			h.Set("Cache-Control", "no-store")
		}

		next.ServeHTTP(w, r)
	})
}
