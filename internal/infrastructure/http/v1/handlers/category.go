package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/category"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/infrastructure/http/v1/dto"
)

// CategoryHandler serves expense category endpoints.
type CategoryHandler struct {
	*BaseHandler
	service *category.Service
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(service *category.Service) *CategoryHandler {
	return &CategoryHandler{BaseHandler: NewBaseHandler(), service: service}
}

// Create handles POST /api/v1/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cat := category.NewCategory(req.Name)
	cat.Description = req.Description

	if err := h.service.Create(c.Request.Context(), cat); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, cat.ID)
}

// Get handles GET /api/v1/categories/:id
func (h *CategoryHandler) Get(c *gin.Context) {
	categoryID, ok := h.PathID(c)
	if !ok {
		return
	}

	cat, err := h.service.GetByID(c.Request.Context(), categoryID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, cat)
}

// Update handles PUT /api/v1/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	categoryID, ok := h.PathID(c)
	if !ok {
		return
	}

	var req dto.CategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cat, err := h.service.GetByID(c.Request.Context(), categoryID)
	if err != nil {
		h.Error(c, err)
		return
	}
	cat.Name = req.Name
	cat.Description = req.Description
	cat.UpdatedAt = time.Now().UTC()

	if err := h.service.Update(c.Request.Context(), cat); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, cat)
}

// Delete handles DELETE /api/v1/categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	categoryID, ok := h.PathID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), categoryID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// List handles GET /api/v1/categories
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, categories)
}
