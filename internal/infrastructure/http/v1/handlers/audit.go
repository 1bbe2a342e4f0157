package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/apperror"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/infrastructure/storage/postgres"
)

const defaultHistoryLimit = 50

// AuditHandler serves the change-history endpoint for administrators.
type AuditHandler struct {
	*BaseHandler
	service *postgres.AuditService
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(service *postgres.AuditService) *AuditHandler {
	return &AuditHandler{BaseHandler: NewBaseHandler(), service: service}
}

// History handles GET /api/v1/audit/:entityType/:id?limit=n
func (h *AuditHandler) History(c *gin.Context) {
	entityID, ok := h.PathID(c)
	if !ok {
		return
	}
	entityType := c.Param("entityType")

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.Error(c, apperror.NewValidation("limit must be a positive integer").WithDetail("limit", raw))
			return
		}
		limit = parsed
	}

	entries, err := h.service.EntityHistory(c.Request.Context(), entityType, entityID, limit)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, entries)
}
