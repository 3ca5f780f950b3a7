// Package handlers contains HTTP request handlers for the content service.
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/GunarsK-portfolio/content-service/internal/middleware"
	"github.com/GunarsK-portfolio/content-service/internal/models"
	"github.com/GunarsK-portfolio/content-service/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

const (
	defaultSkip  = 0
	defaultLimit = 100
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return slug.IsSlug(fl.Field().String())
		})
	}
}

// RespondError writes an error body with the given status.
func RespondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message})
}

// LogAndRespondError logs err with the request logger and responds with message.
func LogAndRespondError(c *gin.Context, status int, err error, message string) {
	middleware.GetLogger(c).Error(message,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", status))
	RespondError(c, status, message)
}

// RespondBindingError reports request decoding and validation failures as 400.
func RespondBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			details[fe.Field()] = validationMessage(fe)
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: details})
		return
	}
	RespondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
}

// HandleServiceError maps service errors onto HTTP statuses.
func HandleServiceError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		resp := ErrorResponse{Error: verr.Message}
		if verr.Field != "" {
			resp.Details = map[string]string{verr.Field: verr.Message}
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, resp)
	case errors.Is(err, service.ErrValidation):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		c.Header("WWW-Authenticate", "Bearer")
		RespondError(c, http.StatusUnauthorized, "incorrect email or password")
	case errors.Is(err, service.ErrInvalidToken):
		c.Header("WWW-Authenticate", "Bearer")
		RespondError(c, http.StatusUnauthorized, "invalid or expired token")
	case errors.Is(err, service.ErrPermissionDenied):
		RespondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNotFound):
		RespondError(c, http.StatusNotFound, err.Error())
	default:
		LogAndRespondError(c, http.StatusInternalServerError, err, "internal server error")
	}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "enter a valid email address"
	case "url":
		return "enter a valid URL"
	case "slug":
		return "enter a valid slug of lowercase letters, numbers and hyphens"
	case "min":
		return fmt.Sprintf("ensure this field has at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("ensure this field has no more than %s characters", fe.Param())
	case "eqfield":
		return fmt.Sprintf("must match %s", toSnake(fe.Param()))
	case "gt", "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	default:
		return fmt.Sprintf("failed on the %s rule", fe.Tag())
	}
}

// toSnake converts a Go field name such as "Password" to "password".
func toSnake(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// parseID reads the :id path parameter, responding 400 on failure.
func parseID(c *gin.Context) (int64, bool) {
	return parseInt64Param(c, c.Param("id"), "id")
}

func parseInt64Param(c *gin.Context, raw, name string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, fmt.Sprintf("invalid %s", name))
		return 0, false
	}
	return id, true
}

// parsePagination reads skip and limit query parameters. Range checks are
// left to the services.
func parsePagination(c *gin.Context) (skip, limit int, ok bool) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", strconv.Itoa(defaultSkip)))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid skip")
		return 0, 0, false
	}
	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid limit")
		return 0, 0, false
	}
	return skip, limit, true
}

// requireUser returns the authenticated user or responds 401.
func requireUser(c *gin.Context) (*models.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Header("WWW-Authenticate", "Bearer")
		RespondError(c, http.StatusUnauthorized, "authentication credentials were not provided")
		return nil, false
	}
	return user, true
}

func actorOf(user *models.User) service.Actor {
	return middleware.ActorFor(user)
}
