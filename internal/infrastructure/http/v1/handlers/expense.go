package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/apperror"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/id"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/expense"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/infrastructure/http/v1/dto"
)

// ExpenseHandler serves personal and store expense endpoints.
type ExpenseHandler struct {
	*BaseHandler
	service *expense.Service
}

// NewExpenseHandler creates a new expense handler.
func NewExpenseHandler(service *expense.Service) *ExpenseHandler {
	return &ExpenseHandler{BaseHandler: NewBaseHandler(), service: service}
}

func (h *ExpenseHandler) expenseFromRequest(c *gin.Context, req dto.ExpenseRequest) (*expense.Expense, bool) {
	e := expense.NewExpense(req.Description, req.Value, req.DueDate, expense.Source(req.Source))
	e.IsPaid = req.IsPaid

	if req.CategoryID != nil && *req.CategoryID != "" {
		categoryID, err := id.Parse(*req.CategoryID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid category id").WithDetail("categoryId", *req.CategoryID))
			return nil, false
		}
		e.CategoryID = &categoryID
	}
	return e, true
}

// Create handles POST /api/v1/expenses. Installments greater than one
// split the value into a monthly series.
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req dto.ExpenseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	e, ok := h.expenseFromRequest(c, req)
	if !ok {
		return
	}

	if req.Installments > 1 {
		expenses, err := h.service.CreateInstallments(c.Request.Context(), e, req.Value, req.Installments)
		if err != nil {
			h.Error(c, err)
			return
		}
		h.OK(c, expenses)
		return
	}

	if err := h.service.Create(c.Request.Context(), e); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, e.ID)
}

// Get handles GET /api/v1/expenses/:id
func (h *ExpenseHandler) Get(c *gin.Context) {
	expenseID, ok := h.PathID(c)
	if !ok {
		return
	}

	e, err := h.service.GetByID(c.Request.Context(), expenseID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, e)
}

// Update handles PUT /api/v1/expenses/:id
func (h *ExpenseHandler) Update(c *gin.Context) {
	expenseID, ok := h.PathID(c)
	if !ok {
		return
	}

	var req dto.ExpenseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	e, err := h.service.GetByID(c.Request.Context(), expenseID)
	if err != nil {
		h.Error(c, err)
		return
	}

	updated, ok := h.expenseFromRequest(c, req)
	if !ok {
		return
	}
	e.Description = updated.Description
	e.Value = updated.Value
	e.DueDate = updated.DueDate
	e.IsPaid = updated.IsPaid
	e.Source = updated.Source
	e.CategoryID = updated.CategoryID

	if err := h.service.Update(c.Request.Context(), e); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, e)
}

// MarkPaid handles POST /api/v1/expenses/:id/paid
func (h *ExpenseHandler) MarkPaid(c *gin.Context) {
	expenseID, ok := h.PathID(c)
	if !ok {
		return
	}

	var req dto.MarkPaidRequest
	if !h.BindJSON(c, &req) {
		return
	}

	e, err := h.service.MarkPaid(c.Request.Context(), expenseID, req.IsPaid)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, e)
}

// Delete handles DELETE /api/v1/expenses/:id
func (h *ExpenseHandler) Delete(c *gin.Context) {
	expenseID, ok := h.PathID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), expenseID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// List handles GET /api/v1/expenses with optional source, categoryId,
// isPaid, start and end filters.
func (h *ExpenseHandler) List(c *gin.Context) {
	var filter expense.ListFilter

	if raw := c.Query("source"); raw != "" {
		source := expense.Source(raw)
		filter.Source = &source
	}
	if raw := c.Query("categoryId"); raw != "" {
		categoryID, err := id.Parse(raw)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid category id").WithDetail("categoryId", raw))
			return
		}
		filter.CategoryID = &categoryID
	}
	if raw := c.Query("isPaid"); raw != "" {
		paid := raw == "true"
		filter.IsPaid = &paid
	}
	var err error
	if raw := c.Query("start"); raw != "" {
		if filter.Start, err = parseDateQuery(c, "start", raw); err != nil {
			h.Error(c, err)
			return
		}
	}
	if raw := c.Query("end"); raw != "" {
		if filter.End, err = parseDateQuery(c, "end", raw); err != nil {
			h.Error(c, err)
			return
		}
	}

	expenses, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, expenses)
}
