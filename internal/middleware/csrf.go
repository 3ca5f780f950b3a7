// Package middleware provides HTTP middleware for the content service.
package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// Cookie names used by browser clients.
const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

// CSRFConfig holds configuration for CSRF protection middleware.
type CSRFConfig struct {
	// AllowedOrigins should match the CORS allowed origins.
	AllowedOrigins []string
}

// CSRF validates Origin/Referer on state-changing requests that carry an
// access or refresh token cookie. Requests carrying an Authorization header,
// or no auth cookie at all, are not subject to it.
func CSRF(config CSRFConfig) gin.HandlerFunc {
	allowed := newOriginSet(config.AllowedOrigins)

	return func(c *gin.Context) {
		if isSafeMethod(c.Request.Method) || !usesCookieAuth(c) {
			c.Next()
			return
		}

		if origin := c.GetHeader("Origin"); origin != "" {
			if !allowed.contains(origin) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
					"error": "CSRF validation failed: invalid origin",
				})
				return
			}
			c.Next()
			return
		}

		if referer := c.GetHeader("Referer"); referer != "" {
			if !allowed.contains(extractOrigin(referer)) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
					"error": "CSRF validation failed: invalid referer",
				})
				return
			}
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "CSRF validation failed: missing origin",
		})
	}
}

func isSafeMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}

func usesCookieAuth(c *gin.Context) bool {
	if c.GetHeader("Authorization") != "" {
		return false
	}
	for _, name := range []string{AccessTokenCookie, RefreshTokenCookie} {
		if token, err := c.Cookie(name); err == nil && token != "" {
			return true
		}
	}
	return false
}

// originSet is a normalized set of scheme://host[:port] origins.
type originSet map[string]struct{}

func newOriginSet(origins []string) originSet {
	set := make(originSet, len(origins))
	for _, origin := range origins {
		if origin = normalizeOrigin(origin); origin != "" {
			set[origin] = struct{}{}
		}
	}
	return set
}

func (s originSet) contains(origin string) bool {
	_, ok := s[normalizeOrigin(origin)]
	return ok
}

func normalizeOrigin(origin string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(origin)), "/")
}

// extractOrigin returns scheme://host[:port] of rawURL, or "" if it has none.
func extractOrigin(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return ""
	}
	return parsed.Scheme + "://" + parsed.Host
}
