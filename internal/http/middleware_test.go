package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecurityHeaders(t *testing.T) {
	handler := SecurityHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	tests := []struct {
		path  string
		csp   string
		cache string
	}{
		{"/progress", apiCSP, "no-store"},
		{"/swagger/index.html", swaggerCSP, ""},
		{"/uploads/1-a.png", apiCSP, "public, max-age=86400, immutable"},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))

			assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
			assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
			assert.Equal(t, tc.csp, rec.Header().Get("Content-Security-Policy"))
			assert.Equal(t, tc.cache, rec.Header().Get("Cache-Control"))
		})
	}
}
