package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/apperror"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/id"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/purchase"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/infrastructure/http/v1/dto"
)

// PurchaseHandler serves product purchase endpoints.
type PurchaseHandler struct {
	*BaseHandler
	service *purchase.Service
}

// NewPurchaseHandler creates a new purchase handler.
func NewPurchaseHandler(service *purchase.Service) *PurchaseHandler {
	return &PurchaseHandler{BaseHandler: NewBaseHandler(), service: service}
}

func (h *PurchaseHandler) applyRequest(c *gin.Context, p *purchase.ProductPurchase, req dto.PurchaseRequest) bool {
	p.Description = req.Description
	p.Value = req.Value
	p.Quantity = req.Quantity
	p.Date = req.Date
	p.IsPaid = req.IsPaid
	p.ProductID = nil

	if req.ProductID != nil && *req.ProductID != "" {
		productID, err := id.Parse(*req.ProductID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid product id").WithDetail("productId", *req.ProductID))
			return false
		}
		p.ProductID = &productID
	}
	return true
}

// Create handles POST /api/v1/purchases
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req dto.PurchaseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p := purchase.NewProductPurchase(req.Description, req.Value, req.Quantity, req.Date)
	if !h.applyRequest(c, p, req) {
		return
	}

	if err := h.service.Create(c.Request.Context(), p); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, p.ID)
}

// Get handles GET /api/v1/purchases/:id
func (h *PurchaseHandler) Get(c *gin.Context) {
	purchaseID, ok := h.PathID(c)
	if !ok {
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), purchaseID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, p)
}

// Update handles PUT /api/v1/purchases/:id
func (h *PurchaseHandler) Update(c *gin.Context) {
	purchaseID, ok := h.PathID(c)
	if !ok {
		return
	}

	var req dto.PurchaseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), purchaseID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if !h.applyRequest(c, p, req) {
		return
	}
	p.UpdatedAt = time.Now().UTC()

	if err := h.service.Update(c.Request.Context(), p); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, p)
}

// MarkPaid handles POST /api/v1/purchases/:id/paid
func (h *PurchaseHandler) MarkPaid(c *gin.Context) {
	purchaseID, ok := h.PathID(c)
	if !ok {
		return
	}

	var req dto.MarkPaidRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.service.MarkPaid(c.Request.Context(), purchaseID, req.IsPaid)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, p)
}

// Delete handles DELETE /api/v1/purchases/:id
func (h *PurchaseHandler) Delete(c *gin.Context) {
	purchaseID, ok := h.PathID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), purchaseID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// List handles GET /api/v1/purchases?start&end
func (h *PurchaseHandler) List(c *gin.Context) {
	var q dto.DateRangeQuery
	if !h.BindQuery(c, &q) {
		return
	}
	start, end, err := q.Parse(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	purchases, err := h.service.ListByDateRange(c.Request.Context(), start, end)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, purchases)
}
