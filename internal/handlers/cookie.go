package handlers

import (
	"net/http"
	"time"

	"github.com/GunarsK-portfolio/content-service/internal/middleware"
	"github.com/gin-gonic/gin"
)

const (
	AccessTokenCookie  = middleware.AccessTokenCookie
	RefreshTokenCookie = middleware.RefreshTokenCookie

	// RefreshTokenPath limits the refresh cookie to the auth endpoints.
	RefreshTokenPath = "/api/v1/auth"
)

// CookieConfig controls auth cookie attributes.
type CookieConfig struct {
	Domain   string
	Path     string
	Secure   bool
	SameSite http.SameSite
}

// CookieHelper manages authentication cookies.
type CookieHelper struct {
	config CookieConfig
}

// NewCookieHelper creates a new cookie helper with the given configuration.
func NewCookieHelper(config CookieConfig) *CookieHelper {
	if config.Path == "" {
		config.Path = "/"
	}
	if config.SameSite == 0 {
		config.SameSite = http.SameSiteLaxMode
	}
	return &CookieHelper{config: config}
}

// SetAuthCookies sets both access and refresh token cookies.
func (h *CookieHelper) SetAuthCookies(c *gin.Context, accessToken, refreshToken string, accessExpiry, refreshExpiry time.Duration) {
	h.setCookie(c, AccessTokenCookie, accessToken, int(accessExpiry.Seconds()), h.config.Path)
	h.setCookie(c, RefreshTokenCookie, refreshToken, int(refreshExpiry.Seconds()), RefreshTokenPath)
}

// ClearAuthCookies removes both authentication cookies.
func (h *CookieHelper) ClearAuthCookies(c *gin.Context) {
	h.setCookie(c, AccessTokenCookie, "", -1, h.config.Path)
	h.setCookie(c, RefreshTokenCookie, "", -1, RefreshTokenPath)
}

// GetRefreshToken retrieves the refresh token from cookie.
func (h *CookieHelper) GetRefreshToken(c *gin.Context) string {
	token, err := c.Cookie(RefreshTokenCookie)
	if err != nil {
		return ""
	}
	return token
}

func (h *CookieHelper) setCookie(c *gin.Context, name, value string, maxAge int, path string) {
	c.SetSameSite(h.config.SameSite)
	c.SetCookie(
		name,
		value,
		maxAge,
		path,
		h.config.Domain,
		h.config.Secure,
		true, // httpOnly
	)
}
