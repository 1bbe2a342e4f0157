package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/summary"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/infrastructure/http/v1/dto"
)

// SummaryHandler serves date-range summary endpoints.
type SummaryHandler struct {
	*BaseHandler
	service *summary.Service
}

// NewSummaryHandler creates a new summary handler.
func NewSummaryHandler(service *summary.Service) *SummaryHandler {
	return &SummaryHandler{BaseHandler: NewBaseHandler(), service: service}
}

// Get handles GET /api/v1/summary?start&end
func (h *SummaryHandler) Get(c *gin.Context) {
	var q dto.DateRangeQuery
	if !h.BindQuery(c, &q) {
		return
	}
	start, end, err := q.ParseOptional(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	result, err := h.service.GetSummary(c.Request.Context(), summary.RangeFilter{Start: start, End: end})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, result)
}
