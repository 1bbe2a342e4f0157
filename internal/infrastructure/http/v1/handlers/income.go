package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/apperror"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/id"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/income"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/infrastructure/http/v1/dto"
)

// IncomeHandler serves income endpoints.
type IncomeHandler struct {
	*BaseHandler
	service *income.Service
}

// NewIncomeHandler creates a new income handler.
func NewIncomeHandler(service *income.Service) *IncomeHandler {
	return &IncomeHandler{BaseHandler: NewBaseHandler(), service: service}
}

func (h *IncomeHandler) linesFromRequest(c *gin.Context, in *income.Income, lines []dto.IncomeLineRequest) bool {
	in.Lines = nil
	for _, l := range lines {
		productID, err := id.Parse(l.ProductID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid product id").WithDetail("productId", l.ProductID))
			return false
		}
		in.AddLine(productID, l.Quantity, l.UnitPrice)
	}
	return true
}

func (h *IncomeHandler) respond(c *gin.Context, in *income.Income) {
	h.OK(c, dto.IncomeResponse{
		Income:       in,
		ProfitAmount: in.ProfitAmount(),
		BaseValue:    in.BaseValue(),
	})
}

// Create handles POST /api/v1/incomes
func (h *IncomeHandler) Create(c *gin.Context) {
	var req dto.IncomeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in := income.NewIncome(req.Description, req.Date, req.Value, req.ProfitMargin)
	if !h.linesFromRequest(c, in, req.Lines) {
		return
	}

	if err := h.service.Create(c.Request.Context(), in); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, in.ID)
}

// Get handles GET /api/v1/incomes/:id
func (h *IncomeHandler) Get(c *gin.Context) {
	incomeID, ok := h.PathID(c)
	if !ok {
		return
	}

	in, err := h.service.GetByID(c.Request.Context(), incomeID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.respond(c, in)
}

// Update handles PUT /api/v1/incomes/:id
func (h *IncomeHandler) Update(c *gin.Context) {
	incomeID, ok := h.PathID(c)
	if !ok {
		return
	}

	var req dto.IncomeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in, err := h.service.GetByID(c.Request.Context(), incomeID)
	if err != nil {
		h.Error(c, err)
		return
	}
	in.Description = req.Description
	in.Date = req.Date
	in.Value = req.Value
	in.ProfitMargin = req.ProfitMargin
	in.UpdatedAt = time.Now().UTC()
	if !h.linesFromRequest(c, in, req.Lines) {
		return
	}

	if err := h.service.Update(c.Request.Context(), in); err != nil {
		h.Error(c, err)
		return
	}
	h.respond(c, in)
}

// Delete handles DELETE /api/v1/incomes/:id
func (h *IncomeHandler) Delete(c *gin.Context) {
	incomeID, ok := h.PathID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), incomeID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// List handles GET /api/v1/incomes?start&end
func (h *IncomeHandler) List(c *gin.Context) {
	var q dto.DateRangeQuery
	if !h.BindQuery(c, &q) {
		return
	}
	start, end, err := q.Parse(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	incomes, err := h.service.ListByDateRange(c.Request.Context(), start, end)
	if err != nil {
		h.Error(c, err)
		return
	}

	responses := make([]dto.IncomeResponse, 0, len(incomes))
	for _, in := range incomes {
		responses = append(responses, dto.IncomeResponse{
			Income:       in,
			ProfitAmount: in.ProfitAmount(),
			BaseValue:    in.BaseValue(),
		})
	}
	h.OK(c, responses)
}
