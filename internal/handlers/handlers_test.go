package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/GunarsK-portfolio/content-service/internal/database"
	"github.com/GunarsK-portfolio/content-service/internal/events"
	"github.com/GunarsK-portfolio/content-service/internal/middleware"
	"github.com/GunarsK-portfolio/content-service/internal/models"
	"github.com/GunarsK-portfolio/content-service/internal/repository"
	"github.com/GunarsK-portfolio/content-service/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// tokenAuth resolves "Bearer <username>" to the seeded user of that name.
type tokenAuth map[string]*models.User

func (a tokenAuth) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if user, ok := a[token]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, service.ErrInvalidToken
}

type handlerFixture struct {
	db     *gorm.DB
	router *gin.Engine
	auth   tokenAuth
	posts  service.PostService
}

func setupHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	userRepo := repository.NewUserRepository(db)
	auth := tokenAuth{}
	for _, u := range []*models.User{
		{Email: "author@example.com", Username: "author", PasswordHash: "x", IsActive: true},
		{Email: "other@example.com", Username: "other", PasswordHash: "x", IsActive: true},
		{Email: "admin@example.com", Username: "admin", PasswordHash: "x", IsActive: true, IsStaff: true},
	} {
		require.NoError(t, userRepo.Create(context.Background(), u))
		auth[u.Username] = u
	}

	categoryRepo := repository.NewCategoryRepository(db)
	posts := service.NewPostService(repository.NewPostRepository(db), categoryRepo, events.NopPublisher{}, zap.NewNop())

	router := gin.New()
	required := middleware.RequireAuth(auth)
	optional := middleware.OptionalAuth(auth)

	postHandler := NewPostHandler(posts)
	p := router.Group("/posts")
	p.GET("", optional, postHandler.List)
	p.GET("/by-author", optional, postHandler.ByAuthor)
	p.GET("/by-category", optional, postHandler.ByCategory)
	p.GET("/search", optional, postHandler.Search)
	p.GET("/slug/:slug", optional, postHandler.GetBySlug)
	p.GET("/:id", optional, postHandler.Get)
	p.POST("", required, postHandler.Create)
	p.PUT("/:id", required, postHandler.Update)
	p.DELETE("/:id", required, postHandler.Delete)

	userHandler := NewUserHandler(service.NewUserService(userRepo))
	u := router.Group("/users")
	u.POST("", userHandler.Create)
	u.GET("", required, userHandler.List)
	u.GET("/me", required, userHandler.Me)
	u.GET("/:id", required, userHandler.Get)
	u.PUT("/:id", required, userHandler.Update)
	u.DELETE("/:id", required, userHandler.Delete)
	u.POST("/:id/change-password", required, userHandler.ChangePassword)
	u.POST("/:id/verify", required, userHandler.Verify)

	categoryHandler := NewCategoryHandler(service.NewCategoryService(categoryRepo))
	cg := router.Group("/categories")
	cg.GET("", categoryHandler.List)
	cg.GET("/slug/:slug", categoryHandler.GetBySlug)
	cg.GET("/:id", categoryHandler.Get)
	cg.POST("", required, categoryHandler.Create)
	cg.PUT("/:id", required, categoryHandler.Update)
	cg.DELETE("/:id", required, categoryHandler.Delete)

	aboutHandler := NewAboutHandler(service.NewAboutService(repository.NewAboutRepository(db)))
	ab := router.Group("/about")
	ab.GET("", aboutHandler.List)
	ab.GET("/:id", aboutHandler.Get)
	ab.POST("", required, aboutHandler.Create)
	ab.PUT("/:id", required, aboutHandler.Update)
	ab.DELETE("/:id", required, aboutHandler.Delete)

	return &handlerFixture{db: db, router: router, auth: auth, posts: posts}
}

// do performs a request as the named user; an empty name is anonymous.
func (f *handlerFixture) do(t *testing.T, method, path, as string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if as != "" {
		req.Header.Set("Authorization", "Bearer "+as)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *handlerFixture) user(name string) *models.User {
	return f.auth[name]
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d: %s", w.Code, want, w.Body.String())
	}
}
