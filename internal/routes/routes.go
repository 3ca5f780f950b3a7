// Package routes defines HTTP routes for the content service.
package routes

import (
	"net/http"

	"github.com/GunarsK-portfolio/content-service/docs"
	"github.com/GunarsK-portfolio/content-service/internal/config"
	"github.com/GunarsK-portfolio/content-service/internal/handlers"
	"github.com/GunarsK-portfolio/content-service/internal/metrics"
	"github.com/GunarsK-portfolio/content-service/internal/middleware"
	"github.com/GunarsK-portfolio/content-service/internal/models"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Auth       *handlers.AuthHandler
	Users      *handlers.UserHandler
	Posts      *handlers.EntryHandler[models.Post, *models.Post]
	Samples    *handlers.EntryHandler[models.Sample, *models.Sample]
	Categories *handlers.CategoryHandler
	About      *handlers.AboutHandler
	Health     *handlers.HealthHandler
	GraphQL    gin.HandlerFunc
}

// Setup configures all HTTP routes for the application.
func Setup(router *gin.Engine, h Handlers, auth middleware.Authenticator, cfg *config.Config, logger *zap.Logger, metricsCollector *metrics.Metrics) {
	router.Use(
		middleware.RequestID(),
		middleware.Logger(logger),
		metricsCollector.Middleware(),
		middleware.CORS(middleware.CORSConfig{
			AllowedOrigins: cfg.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", "Authorization", middleware.RequestIDHeader},
		}),
		middleware.CSRF(middleware.CSRFConfig{AllowedOrigins: cfg.AllowedOrigins}),
	)

	required := middleware.RequireAuth(auth)
	optional := middleware.OptionalAuth(auth)
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	// Health check
	health := router.Group("/health")
	{
		health.GET("", h.Health.Check)
		health.GET("/ping", h.Health.Ping)
		health.GET("/ready", h.Health.Ready)
	}
	// Metrics
	router.GET("/metrics", gin.WrapH(metricsCollector.Handler()))

	// GraphQL
	router.POST("/graphql", optional, h.GraphQL)
	router.GET("/graphql", optional, h.GraphQL)

	v1 := router.Group("/api/v1")

	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", limiter.Middleware(), h.Auth.Register)
		authGroup.POST("/login", limiter.Middleware(), h.Auth.Login)
		authGroup.POST("/logout", h.Auth.Logout)
		authGroup.POST("/refresh", h.Auth.Refresh)
		authGroup.GET("/token-status", h.Auth.TokenStatus)
		authGroup.POST("/validate", h.Auth.Validate)
	}

	users := v1.Group("/users")
	{
		users.POST("", h.Users.Create)
		users.GET("", required, h.Users.List)
		users.GET("/me", required, h.Users.Me)
		users.GET("/:id", required, h.Users.Get)
		users.PUT("/:id", required, h.Users.Update)
		users.DELETE("/:id", required, h.Users.Delete)
		users.POST("/:id/change-password", required, h.Users.ChangePassword)
		users.POST("/:id/verify", required, h.Users.Verify)
	}

	registerEntryRoutes(v1.Group("/posts"), h.Posts, required, optional)
	registerEntryRoutes(v1.Group("/samples"), h.Samples, required, optional)

	categories := v1.Group("/categories")
	{
		categories.GET("", h.Categories.List)
		categories.GET("/slug/:slug", h.Categories.GetBySlug)
		categories.GET("/:id", h.Categories.Get)
		categories.POST("", required, h.Categories.Create)
		categories.PUT("/:id", required, h.Categories.Update)
		categories.DELETE("/:id", required, h.Categories.Delete)
	}

	about := v1.Group("/about")
	{
		about.GET("", h.About.List)
		about.GET("/:id", h.About.Get)
		about.POST("", required, h.About.Create)
		about.PUT("/:id", required, h.About.Update)
		about.DELETE("/:id", required, h.About.Delete)
	}

	// Swagger documentation (only if SWAGGER_HOST is configured)
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

func registerEntryRoutes[T any, PT models.EntryModel[T]](group *gin.RouterGroup, h *handlers.EntryHandler[T, PT], required, optional gin.HandlerFunc) {
	group.GET("", optional, h.List)
	group.GET("/search", optional, h.Search)
	group.GET("/by-author", optional, h.ByAuthor)
	group.GET("/by-category", optional, h.ByCategory)
	group.GET("/slug/:slug", optional, h.GetBySlug)
	group.GET("/:id", optional, h.Get)
	group.POST("", required, h.Create)
	group.PUT("/:id", required, h.Update)
	group.DELETE("/:id", required, h.Delete)
}
