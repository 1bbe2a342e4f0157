package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/types"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/recurring"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/infrastructure/http/v1/dto"
)

// RecurringHandler serves recurring expense rules, their generated
// occurrences and the expander trigger.
type RecurringHandler struct {
	*BaseHandler
	service  *recurring.Service
	expander *recurring.Expander
	location *time.Location
}

// NewRecurringHandler creates a new recurring handler. The location
// supplies the default as-of date for expander runs.
func NewRecurringHandler(service *recurring.Service, expander *recurring.Expander, location *time.Location) *RecurringHandler {
	return &RecurringHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
		expander:    expander,
		location:    location,
	}
}

func (h *RecurringHandler) ruleFromRequest(r *recurring.Rule, req dto.RecurringRuleRequest) {
	r.Description = req.Description
	r.Value = req.Value
	r.Recurrence = recurring.Recurrence(req.Recurrence)
	r.StartDate = req.StartDate
	r.EndDate = req.EndDate
	if req.IsActive != nil {
		r.IsActive = *req.IsActive
	}
}

// CreateRule handles POST /api/v1/recurring/rules
func (h *RecurringHandler) CreateRule(c *gin.Context) {
	var req dto.RecurringRuleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	rule := recurring.NewRule(req.Description, req.Value, recurring.Recurrence(req.Recurrence), req.StartDate)
	h.ruleFromRequest(rule, req)

	if err := h.service.CreateRule(c.Request.Context(), rule); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, rule.ID)
}

// GetRule handles GET /api/v1/recurring/rules/:id
func (h *RecurringHandler) GetRule(c *gin.Context) {
	ruleID, ok := h.PathID(c)
	if !ok {
		return
	}

	rule, err := h.service.GetRule(c.Request.Context(), ruleID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, rule)
}

// UpdateRule handles PUT /api/v1/recurring/rules/:id
func (h *RecurringHandler) UpdateRule(c *gin.Context) {
	ruleID, ok := h.PathID(c)
	if !ok {
		return
	}

	var req dto.RecurringRuleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	rule, err := h.service.GetRule(c.Request.Context(), ruleID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.ruleFromRequest(rule, req)

	if err := h.service.UpdateRule(c.Request.Context(), rule); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, rule)
}

// DeactivateRule handles POST /api/v1/recurring/rules/:id/deactivate
func (h *RecurringHandler) DeactivateRule(c *gin.Context) {
	ruleID, ok := h.PathID(c)
	if !ok {
		return
	}

	rule, err := h.service.DeactivateRule(c.Request.Context(), ruleID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, rule)
}

// DeleteRule handles DELETE /api/v1/recurring/rules/:id
func (h *RecurringHandler) DeleteRule(c *gin.Context) {
	ruleID, ok := h.PathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteRule(c.Request.Context(), ruleID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// ListRules handles GET /api/v1/recurring/rules
func (h *RecurringHandler) ListRules(c *gin.Context) {
	rules, err := h.service.ListRules(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, rules)
}

// ListOccurrences handles GET /api/v1/recurring/occurrences?start&end
func (h *RecurringHandler) ListOccurrences(c *gin.Context) {
	var q dto.DateRangeQuery
	if !h.BindQuery(c, &q) {
		return
	}
	start, end, err := q.Parse(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	occurrences, err := h.service.ListOccurrencesByRange(c.Request.Context(), start, end)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, occurrences)
}

// ListRuleOccurrences handles GET /api/v1/recurring/rules/:id/occurrences
func (h *RecurringHandler) ListRuleOccurrences(c *gin.Context) {
	ruleID, ok := h.PathID(c)
	if !ok {
		return
	}

	occurrences, err := h.service.ListOccurrencesByRule(c.Request.Context(), ruleID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, occurrences)
}

// MarkOccurrencePaid handles POST /api/v1/recurring/occurrences/:id/paid
func (h *RecurringHandler) MarkOccurrencePaid(c *gin.Context) {
	occurrenceID, ok := h.PathID(c)
	if !ok {
		return
	}

	var req dto.MarkPaidRequest
	if !h.BindJSON(c, &req) {
		return
	}

	o, err := h.service.MarkOccurrencePaid(c.Request.Context(), occurrenceID, req.IsPaid)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, o)
}

// Expand handles POST /api/v1/recurring/expand. The run date comes from
// the asOf query parameter or body field, defaulting to today in the
// configured time zone. The run is idempotent, repeating it for the
// same date creates nothing new.
func (h *RecurringHandler) Expand(c *gin.Context) {
	req := dto.ExpandRequest{}
	if c.Request.ContentLength > 0 {
		if !h.BindJSON(c, &req) {
			return
		}
	}

	asOf := req.AsOf
	if raw := c.Query("asOf"); raw != "" {
		parsed, err := parseDateQuery(c, "asOf", raw)
		if err != nil {
			h.Error(c, err)
			return
		}
		asOf = parsed
	}
	if asOf.IsZero() {
		asOf = types.Today(h.location)
	}

	created, err := h.expander.Run(c.Request.Context(), asOf)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ExpandResponse{Created: created})
}
