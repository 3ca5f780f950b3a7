package handlers

import (
	"net/http"
	"strconv"

	"github.com/GunarsK-portfolio/content-service/internal/middleware"
	"github.com/GunarsK-portfolio/content-service/internal/models"
	"github.com/GunarsK-portfolio/content-service/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EntryHandler serves /posts and /samples. T is models.Post or models.Sample.
type EntryHandler[T any, PT models.EntryModel[T]] struct {
	entries service.EntryService[T]
}

// NewEntryHandler creates an EntryHandler over the given service.
func NewEntryHandler[T any, PT models.EntryModel[T]](entries service.EntryService[T]) *EntryHandler[T, PT] {
	return &EntryHandler[T, PT]{entries: entries}
}

// NewPostHandler creates the /posts handler.
func NewPostHandler(posts service.PostService) *EntryHandler[models.Post, *models.Post] {
	return NewEntryHandler[models.Post](posts)
}

// NewSampleHandler creates the /samples handler.
func NewSampleHandler(samples service.SampleService) *EntryHandler[models.Sample, *models.Sample] {
	return NewEntryHandler[models.Sample](samples)
}

// List godoc
// @Summary List posts
// @Description Newest first. published=true restricts to published entries. /samples behaves identically.
// @Tags posts
// @Produce json
// @Param skip query int false "Offset" default(0)
// @Param limit query int false "Page size" default(100)
// @Param published query bool false "Published only"
// @Success 200 {array} models.Post
// @Failure 400 {object} ErrorResponse
// @Router /posts [get]
func (h *EntryHandler[T, PT]) List(c *gin.Context) {
	skip, limit, ok := parsePagination(c)
	if !ok {
		return
	}
	publishedOnly := false
	if raw := c.Query("published"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid published")
			return
		}
		publishedOnly = v
	}

	items, err := h.entries.List(c.Request.Context(), skip, limit, publishedOnly)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Search godoc
// @Summary Search posts
// @Description Case-insensitive substring match over title, content and excerpt
// @Tags posts
// @Produce json
// @Param q query string true "Query"
// @Success 200 {array} models.Post
// @Router /posts/search [get]
func (h *EntryHandler[T, PT]) Search(c *gin.Context) {
	items, err := h.entries.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// ByAuthor godoc
// @Summary List posts by author
// @Tags posts
// @Produce json
// @Param author_id query int true "Author ID"
// @Param skip query int false "Offset" default(0)
// @Param limit query int false "Page size" default(100)
// @Success 200 {array} models.Post
// @Failure 400 {object} ErrorResponse
// @Router /posts/by-author [get]
func (h *EntryHandler[T, PT]) ByAuthor(c *gin.Context) {
	authorID, ok := parseInt64Param(c, c.Query("author_id"), "author_id")
	if !ok {
		return
	}
	skip, limit, ok := parsePagination(c)
	if !ok {
		return
	}
	items, err := h.entries.ListByAuthor(c.Request.Context(), authorID, skip, limit)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// ByCategory godoc
// @Summary List posts by category
// @Tags posts
// @Produce json
// @Param category_id query int true "Category ID"
// @Param skip query int false "Offset" default(0)
// @Param limit query int false "Page size" default(100)
// @Success 200 {array} models.Post
// @Failure 400 {object} ErrorResponse
// @Router /posts/by-category [get]
func (h *EntryHandler[T, PT]) ByCategory(c *gin.Context) {
	categoryID, ok := parseInt64Param(c, c.Query("category_id"), "category_id")
	if !ok {
		return
	}
	skip, limit, ok := parsePagination(c)
	if !ok {
		return
	}
	items, err := h.entries.ListByCategory(c.Request.Context(), categoryID, skip, limit)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetBySlug godoc
// @Summary Get post by slug
// @Tags posts
// @Produce json
// @Param slug path string true "Slug"
// @Success 200 {object} models.Post
// @Failure 404 {object} ErrorResponse
// @Router /posts/slug/{slug} [get]
func (h *EntryHandler[T, PT]) GetBySlug(c *gin.Context) {
	item, err := h.entries.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Get godoc
// @Summary Get post by id
// @Description Counts a view unless the caller is the author
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} ErrorResponse
// @Router /posts/{id} [get]
func (h *EntryHandler[T, PT]) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	item, err := h.entries.Get(ctx, id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	entry := PT(item).GetEntry()
	viewer, authenticated := middleware.CurrentUser(c)
	if !authenticated || !entry.OwnedBy(viewer.ID) {
		if err := h.entries.IncrementViews(ctx, id); err != nil {
			middleware.GetLogger(c).Warn("failed to count view", zap.Int64("id", id), zap.Error(err))
		} else {
			entry.ViewsCount++
		}
	}

	c.JSON(http.StatusOK, item)
}

// Create godoc
// @Summary Create post
// @Description The caller becomes the author
// @Tags posts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body EntryCreateRequest true "Post data"
// @Success 201 {object} models.Post
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /posts [post]
func (h *EntryHandler[T, PT]) Create(c *gin.Context) {
	current, ok := requireUser(c)
	if !ok {
		return
	}

	var req EntryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindingError(c, err)
		return
	}

	item, err := h.entries.Create(c.Request.Context(), current.ID, req.toInput())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Update godoc
// @Summary Update post
// @Description Only the author or staff may update
// @Tags posts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param request body EntryUpdateRequest true "Fields to change"
// @Success 200 {object} models.Post
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /posts/{id} [put]
func (h *EntryHandler[T, PT]) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	current, ok := requireUser(c)
	if !ok {
		return
	}

	var req EntryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindingError(c, err)
		return
	}

	item, err := h.entries.Update(c.Request.Context(), id, actorOf(current), req.toInput())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Delete godoc
// @Summary Delete post
// @Tags posts
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /posts/{id} [delete]
func (h *EntryHandler[T, PT]) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	current, ok := requireUser(c)
	if !ok {
		return
	}
	if err := h.entries.Delete(c.Request.Context(), id, actorOf(current)); err != nil {
		HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
