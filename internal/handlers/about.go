package handlers

import (
	"net/http"

	"github.com/GunarsK-portfolio/content-service/internal/service"
	"github.com/gin-gonic/gin"
)

// AboutHandler serves /about.
type AboutHandler struct {
	abouts service.AboutService
}

// NewAboutHandler creates a new AboutHandler instance.
func NewAboutHandler(abouts service.AboutService) *AboutHandler {
	return &AboutHandler{abouts: abouts}
}

// List godoc
// @Summary List about records
// @Tags about
// @Produce json
// @Param skip query int false "Offset" default(0)
// @Param limit query int false "Page size" default(100)
// @Success 200 {array} models.About
// @Failure 400 {object} ErrorResponse
// @Router /about [get]
func (h *AboutHandler) List(c *gin.Context) {
	skip, limit, ok := parsePagination(c)
	if !ok {
		return
	}
	abouts, err := h.abouts.List(c.Request.Context(), skip, limit)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, abouts)
}

// Get godoc
// @Summary Get about record
// @Tags about
// @Produce json
// @Param id path int true "About ID"
// @Success 200 {object} models.About
// @Failure 404 {object} ErrorResponse
// @Router /about/{id} [get]
func (h *AboutHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	about, err := h.abouts.Get(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, about)
}

// Create godoc
// @Summary Create about record
// @Tags about
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body AboutRequest true "About"
// @Success 201 {object} models.About
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /about [post]
func (h *AboutHandler) Create(c *gin.Context) {
	current, ok := requireUser(c)
	if !ok {
		return
	}
	var req AboutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindingError(c, err)
		return
	}
	about, err := h.abouts.Create(c.Request.Context(), actorOf(current), req.AboutID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, about)
}

// Update godoc
// @Summary Update about record
// @Tags about
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "About ID"
// @Param request body AboutRequest true "About"
// @Success 200 {object} models.About
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /about/{id} [put]
func (h *AboutHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	current, ok := requireUser(c)
	if !ok {
		return
	}
	var req AboutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindingError(c, err)
		return
	}
	about, err := h.abouts.Update(c.Request.Context(), id, actorOf(current), req.AboutID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, about)
}

// Delete godoc
// @Summary Delete about record
// @Tags about
// @Security BearerAuth
// @Param id path int true "About ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /about/{id} [delete]
func (h *AboutHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	current, ok := requireUser(c)
	if !ok {
		return
	}
	if err := h.abouts.Delete(c.Request.Context(), id, actorOf(current)); err != nil {
		HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
