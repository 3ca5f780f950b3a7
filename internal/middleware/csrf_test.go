package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCSRF(t *testing.T) {
	gin.SetMode(gin.TestMode)

	config := CSRFConfig{
		AllowedOrigins: []string{
			"https://localhost:8443",
			"https://admin.example.com",
		},
	}

	tests := []struct {
		name       string
		method     string
		cookie     bool
		refresh    bool
		bearer     bool
		origin     string
		referer    string
		wantStatus int
	}{
		// Safe methods are never checked
		{name: "GET with cookie passes without headers", method: http.MethodGet, cookie: true, wantStatus: http.StatusOK},
		{name: "HEAD with cookie passes without headers", method: http.MethodHead, cookie: true, wantStatus: http.StatusOK},
		{name: "OPTIONS with cookie passes without headers", method: http.MethodOptions, cookie: true, wantStatus: http.StatusOK},

		// Non-cookie requests are not subject to the check
		{name: "POST with bearer header skips check", method: http.MethodPost, cookie: true, bearer: true, origin: "https://evil.com", wantStatus: http.StatusOK},
		{name: "POST without credentials skips check", method: http.MethodPost, wantStatus: http.StatusOK},

		// Cookie-authenticated writes
		{name: "POST with valid origin passes", method: http.MethodPost, cookie: true, origin: "https://localhost:8443", wantStatus: http.StatusOK},
		{name: "POST with valid origin (trailing slash) passes", method: http.MethodPost, cookie: true, origin: "https://localhost:8443/", wantStatus: http.StatusOK},
		{name: "POST with valid origin (case insensitive) passes", method: http.MethodPost, cookie: true, origin: "HTTPS://LOCALHOST:8443", wantStatus: http.StatusOK},
		{name: "POST with invalid origin blocked", method: http.MethodPost, cookie: true, origin: "https://evil.com", wantStatus: http.StatusForbidden},
		{name: "POST with different port blocked", method: http.MethodPost, cookie: true, origin: "https://localhost:9999", wantStatus: http.StatusForbidden},
		{name: "POST with valid referer passes", method: http.MethodPost, cookie: true, referer: "https://localhost:8443/some/page", wantStatus: http.StatusOK},
		{name: "POST with invalid referer blocked", method: http.MethodPost, cookie: true, referer: "https://evil.com/attack", wantStatus: http.StatusForbidden},
		{name: "POST with no origin or referer blocked", method: http.MethodPost, cookie: true, wantStatus: http.StatusForbidden},
		{name: "POST with Origin null blocked", method: http.MethodPost, cookie: true, origin: "null", wantStatus: http.StatusForbidden},
		{name: "PUT with valid origin passes", method: http.MethodPut, cookie: true, origin: "https://admin.example.com", wantStatus: http.StatusOK},
		{name: "DELETE with valid origin passes", method: http.MethodDelete, cookie: true, origin: "https://admin.example.com", wantStatus: http.StatusOK},
		{name: "PATCH with invalid origin blocked", method: http.MethodPatch, cookie: true, origin: "https://evil.com", wantStatus: http.StatusForbidden},

		// Refresh cookie alone still counts as cookie auth
		{name: "POST with only refresh cookie and invalid origin blocked", method: http.MethodPost, refresh: true, origin: "https://evil.com", wantStatus: http.StatusForbidden},
		{name: "POST with only refresh cookie and no origin blocked", method: http.MethodPost, refresh: true, wantStatus: http.StatusForbidden},
		{name: "POST with only refresh cookie and valid origin passes", method: http.MethodPost, refresh: true, origin: "https://localhost:8443", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			_, r := gin.CreateTestContext(w)

			r.Use(CSRF(config))
			r.Any("/test", func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(tt.method, "/test", nil)
			if tt.cookie {
				req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "token"})
			}
			if tt.refresh {
				req.AddCookie(&http.Cookie{Name: RefreshTokenCookie, Value: "refresh"})
			}
			if tt.bearer {
				req.Header.Set("Authorization", "Bearer token")
			}
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.referer != "" {
				req.Header.Set("Referer", tt.referer)
			}

			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("CSRF() status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestExtractOrigin(t *testing.T) {
	tests := []struct {
		name   string
		rawURL string
		want   string
	}{
		{name: "full URL", rawURL: "https://example.com/path/to/page?query=1", want: "https://example.com"},
		{name: "URL with port", rawURL: "https://localhost:8443/login", want: "https://localhost:8443"},
		{name: "HTTP URL", rawURL: "http://example.com/page", want: "http://example.com"},
		{name: "path only (no scheme)", rawURL: "not-a-url", want: ""},
		{name: "empty string", rawURL: "", want: ""},
		{name: "null string", rawURL: "null", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractOrigin(tt.rawURL); got != tt.want {
				t.Errorf("extractOrigin() = %s, want %s", got, tt.want)
			}
		})
	}
}
