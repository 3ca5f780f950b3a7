package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/GunarsK-portfolio/content-service/internal/models"
	"github.com/GunarsK-portfolio/content-service/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const userKey = "user"

// Authenticator resolves an access token to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*models.User, error)
}

// RequireAuth rejects requests without a valid access token.
func RequireAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c)
		if token == "" {
			abortUnauthorized(c, "authentication credentials were not provided")
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrInvalidToken) {
				abortUnauthorized(c, "invalid or expired token")
				return
			}
			GetLogger(c).Error("authentication failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		setUser(c, user)
		c.Next()
	}
}

// OptionalAuth attaches the user when a valid token is present and
// otherwise continues anonymously.
func OptionalAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := ExtractToken(c); token != "" {
			if user, err := auth.Authenticate(c.Request.Context(), token); err == nil {
				setUser(c, user)
			} else if !errors.Is(err, service.ErrInvalidToken) {
				GetLogger(c).Warn("optional authentication failed", zap.Error(err))
			}
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user, if any.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

// ExtractToken reads a Bearer Authorization header, falling back to the
// access token cookie.
func ExtractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if found && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if token, err := c.Cookie(AccessTokenCookie); err == nil {
		return token
	}
	return ""
}

// ActorFor builds the service actor for user.
func ActorFor(user *models.User) service.Actor {
	return service.Actor{UserID: user.ID, Email: user.Email, IsStaff: user.IsStaff}
}

func setUser(c *gin.Context, user *models.User) {
	c.Set(userKey, user)
	c.Request = c.Request.WithContext(service.WithActor(c.Request.Context(), ActorFor(user)))
}

func abortUnauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}
