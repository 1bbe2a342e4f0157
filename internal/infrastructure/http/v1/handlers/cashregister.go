package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/cashregister"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/infrastructure/http/v1/dto"
)

// CashRegisterHandler serves daily cash register endpoints.
type CashRegisterHandler struct {
	*BaseHandler
	service *cashregister.Service
}

// NewCashRegisterHandler creates a new cash register handler.
func NewCashRegisterHandler(service *cashregister.Service) *CashRegisterHandler {
	return &CashRegisterHandler{BaseHandler: NewBaseHandler(), service: service}
}

// Create handles POST /api/v1/cash-register
func (h *CashRegisterHandler) Create(c *gin.Context) {
	var req dto.CashRegisterEntryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entry := cashregister.NewEntry(req.Date, req.Value)
	entry.Description = req.Description

	if err := h.service.Create(c.Request.Context(), entry); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, entry.ID)
}

// Get handles GET /api/v1/cash-register/:id
func (h *CashRegisterHandler) Get(c *gin.Context) {
	entryID, ok := h.PathID(c)
	if !ok {
		return
	}

	entry, err := h.service.GetByID(c.Request.Context(), entryID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, entry)
}

// Update handles PUT /api/v1/cash-register/:id
func (h *CashRegisterHandler) Update(c *gin.Context) {
	entryID, ok := h.PathID(c)
	if !ok {
		return
	}

	var req dto.CashRegisterEntryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entry, err := h.service.GetByID(c.Request.Context(), entryID)
	if err != nil {
		h.Error(c, err)
		return
	}
	entry.Date = req.Date
	entry.Value = req.Value
	entry.Description = req.Description
	entry.UpdatedAt = time.Now().UTC()

	if err := h.service.Update(c.Request.Context(), entry); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, entry)
}

// Delete handles DELETE /api/v1/cash-register/:id
func (h *CashRegisterHandler) Delete(c *gin.Context) {
	entryID, ok := h.PathID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), entryID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// List handles GET /api/v1/cash-register?start&end
func (h *CashRegisterHandler) List(c *gin.Context) {
	var q dto.DateRangeQuery
	if !h.BindQuery(c, &q) {
		return
	}
	start, end, err := q.Parse(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	entries, err := h.service.ListByDateRange(c.Request.Context(), start, end)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, entries)
}
