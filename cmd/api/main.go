// Package main is the entry point for the content service.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GunarsK-portfolio/content-service/internal/config"
	"github.com/GunarsK-portfolio/content-service/internal/database"
	"github.com/GunarsK-portfolio/content-service/internal/events"
	"github.com/GunarsK-portfolio/content-service/internal/gql"
	"github.com/GunarsK-portfolio/content-service/internal/handlers"
	"github.com/GunarsK-portfolio/content-service/internal/metrics"
	"github.com/GunarsK-portfolio/content-service/internal/repository"
	"github.com/GunarsK-portfolio/content-service/internal/routes"
	"github.com/GunarsK-portfolio/content-service/internal/service"
	"github.com/GunarsK-portfolio/content-service/pkg/logger"
	"github.com/GunarsK-portfolio/content-service/pkg/redis"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

// @title Content Service API
// @version 1.0
// @description Users, posts, samples, categories and about pages with JWT authentication
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Environment, "content-service", cfg.AppVersion)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	if err := run(cfg, appLogger); err != nil {
		appLogger.Fatal("Service stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, appLogger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := database.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize Redis
	redisClient, err := redis.NewClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = redisClient.Close() }()

	publisher := events.New(cfg.KafkaBrokers, cfg.KafkaTopic, appLogger)
	defer func() {
		if err := publisher.Close(); err != nil {
			appLogger.Warn("Failed to close event publisher", zap.Error(err))
		}
	}()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	// Initialize services
	jwtService := service.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry)
	if jwtService == nil {
		return errors.New("JWT secret is too short")
	}
	userService := service.NewUserService(userRepo)
	authService := service.NewAuthService(userRepo, userService, jwtService, redisClient)
	postService := service.NewPostService(repository.NewPostRepository(db), categoryRepo, publisher, appLogger)
	sampleService := service.NewSampleService(repository.NewSampleRepository(db), categoryRepo, publisher, appLogger)
	categoryService := service.NewCategoryService(categoryRepo)
	aboutService := service.NewAboutService(repository.NewAboutRepository(db))

	schema, err := gql.NewSchema(gql.Services{
		Posts:      postService,
		Samples:    sampleService,
		Categories: categoryService,
		Abouts:     aboutService,
		Users:      userService,
	}, appLogger)
	if err != nil {
		return fmt.Errorf("failed to build graphql schema: %w", err)
	}

	metricsCollector := metrics.New("content_service")
	cookieHelper := handlers.NewCookieHelper(handlers.CookieConfig{
		Domain:   cfg.CookieDomain,
		Path:     "/",
		Secure:   cfg.CookieSecure || cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})

	// Initialize handlers
	h := routes.Handlers{
		Auth:       handlers.NewAuthHandler(authService, jwtService, cookieHelper, metricsCollector),
		Users:      handlers.NewUserHandler(userService),
		Posts:      handlers.NewPostHandler(postService),
		Samples:    handlers.NewSampleHandler(sampleService),
		Categories: handlers.NewCategoryHandler(categoryService),
		About:      handlers.NewAboutHandler(aboutService),
		Health: handlers.NewHealthHandler(cfg.AppVersion, map[string]handlers.Pinger{
			"database": func(ctx context.Context) error { return database.Ping(ctx, db) },
			"redis":    func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		}),
		GraphQL: gql.Handler(schema),
	}

	// Setup router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	routes.Setup(router, h, authService, cfg, appLogger, metricsCollector)

	// Start server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("Starting content service", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		appLogger.Info("Received signal, shutting down...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return closeDB(db)
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
