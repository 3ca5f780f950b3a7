package handlers

import (
	"net/http"
	"time"

	"github.com/GunarsK-portfolio/content-service/internal/middleware"
	"github.com/GunarsK-portfolio/content-service/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthRecorder counts authentication outcomes.
type AuthRecorder interface {
	RecordAuth(kind string, success bool)
}

type nopRecorder struct{}

func (nopRecorder) RecordAuth(string, bool) {}

// AuthHandler handles authentication HTTP requests.
type AuthHandler struct {
	authService  service.AuthService
	jwtService   service.JWTService
	cookieHelper *CookieHelper
	recorder     AuthRecorder
}

// NewAuthHandler creates a new AuthHandler instance. recorder may be nil.
func NewAuthHandler(authService service.AuthService, jwtService service.JWTService, cookieHelper *CookieHelper, recorder AuthRecorder) *AuthHandler {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &AuthHandler{
		authService:  authService,
		jwtService:   jwtService,
		cookieHelper: cookieHelper,
		recorder:     recorder,
	}
}

// TokenStatusResponse reports whether the presented access token is usable.
type TokenStatusResponse struct {
	Valid      bool   `json:"valid"`
	TTLSeconds int64  `json:"ttl_seconds"`
	UserID     int64  `json:"user_id,omitempty"`
	Email      string `json:"email,omitempty"`
}

// Register godoc
// @Summary Register a new user
// @Description Create an account and return access and refresh tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} service.TokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindingError(c, err)
		return
	}

	response, err := h.authService.Register(c.Request.Context(), req.toInput())
	h.recorder.RecordAuth("register", err == nil)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	middleware.GetLogger(c).Info("user registered", zap.Int64("user_id", response.User.ID))
	h.setCookies(c, response)
	c.JSON(http.StatusCreated, response)
}

// Login godoc
// @Summary User login
// @Description Authenticate with email and password and return access and refresh tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} service.TokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindingError(c, err)
		return
	}

	response, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	h.recorder.RecordAuth("login", err == nil)
	if err != nil {
		middleware.GetLogger(c).Info("login failed", zap.String("email", req.Email))
		HandleServiceError(c, err)
		return
	}

	h.setCookies(c, response)
	c.JSON(http.StatusOK, response)
}

// Logout godoc
// @Summary User logout
// @Description Clear authentication cookies. Tokens are not revoked server side.
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.cookieHelper.ClearAuthCookies(c)
	c.JSON(http.StatusOK, MessageResponse{Message: "successfully logged out"})
}

// Refresh godoc
// @Summary Refresh access token
// @Description Rotate the refresh token and issue a new access token. The token may be sent in the body or the refresh_token cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest false "Refresh token"
// @Success 200 {object} service.TokenResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondBindingError(c, err)
			return
		}
	}

	token := req.RefreshToken
	if token == "" {
		token = h.cookieHelper.GetRefreshToken(c)
	}
	if token == "" {
		c.Header("WWW-Authenticate", "Bearer")
		RespondError(c, http.StatusUnauthorized, "refresh token required")
		return
	}

	response, err := h.authService.RefreshToken(c.Request.Context(), token)
	h.recorder.RecordAuth("refresh", err == nil)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	h.setCookies(c, response)
	c.JSON(http.StatusOK, response)
}

// Validate godoc
// @Summary Validate access token
// @Description Check a token passed in the body and return its TTL and claims
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ValidateRequest true "Access token"
// @Success 200 {object} TokenStatusResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} TokenStatusResponse
// @Router /auth/validate [post]
func (h *AuthHandler) Validate(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindingError(c, err)
		return
	}
	h.respondTokenStatus(c, req.Token)
}

// TokenStatus godoc
// @Summary Check token status
// @Description Check if the access token is valid and return its remaining TTL
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} TokenStatusResponse
// @Failure 401 {object} TokenStatusResponse
// @Router /auth/token-status [get]
func (h *AuthHandler) TokenStatus(c *gin.Context) {
	h.respondTokenStatus(c, middleware.ExtractToken(c))
}

// respondTokenStatus reports a live access token's TTL and claims; anything
// else is 401 with valid=false.
func (h *AuthHandler) respondTokenStatus(c *gin.Context, token string) {
	if token == "" {
		c.JSON(http.StatusUnauthorized, TokenStatusResponse{})
		return
	}

	claims, err := h.jwtService.ValidateToken(token)
	if err != nil || claims.Type != service.TokenTypeAccess {
		c.JSON(http.StatusUnauthorized, TokenStatusResponse{})
		return
	}

	ttl := int64(time.Until(claims.ExpiresAt.Time).Seconds())
	if ttl <= 0 {
		c.JSON(http.StatusUnauthorized, TokenStatusResponse{})
		return
	}

	c.JSON(http.StatusOK, TokenStatusResponse{
		Valid:      true,
		TTLSeconds: ttl,
		UserID:     claims.UserID,
		Email:      claims.Email(),
	})
}

func (h *AuthHandler) setCookies(c *gin.Context, response *service.TokenResponse) {
	h.cookieHelper.SetAuthCookies(c, response.AccessToken, response.RefreshToken,
		h.jwtService.GetAccessExpiry(), h.jwtService.GetRefreshExpiry())
}
