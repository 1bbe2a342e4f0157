package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/product"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/infrastructure/http/v1/dto"
)

// ProductHandler serves product catalog endpoints.
type ProductHandler struct {
	*BaseHandler
	service *product.Service
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service *product.Service) *ProductHandler {
	return &ProductHandler{BaseHandler: NewBaseHandler(), service: service}
}

// Create handles POST /api/v1/products
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.ProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p := product.NewProduct(req.Name, req.Price)
	p.Description = req.Description
	p.Stock = req.Stock

	if err := h.service.Create(c.Request.Context(), p); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, p.ID)
}

// Get handles GET /api/v1/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	productID, ok := h.PathID(c)
	if !ok {
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, p)
}

// Update handles PUT /api/v1/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	productID, ok := h.PathID(c)
	if !ok {
		return
	}

	var req dto.ProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}
	p.Name = req.Name
	p.Description = req.Description
	p.Price = req.Price
	p.Stock = req.Stock

	if err := h.service.Update(c.Request.Context(), p); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, p)
}

// AdjustStock handles POST /api/v1/products/:id/stock
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	productID, ok := h.PathID(c)
	if !ok {
		return
	}

	var req dto.AdjustStockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.AdjustStock(c.Request.Context(), productID, req.Delta); err != nil {
		h.Error(c, err)
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, p)
}

// Delete handles DELETE /api/v1/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	productID, ok := h.PathID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), productID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// List handles GET /api/v1/products
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, products)
}
