package handler

import (
	"net/http"
	"strconv"

	"github.com/gestimo/gestimo/internal/common/errorx"
	"github.com/gin-gonic/gin"
)

const (
	defaultAuditPageSize = 50
	maxAuditPageSize     = 200
)

// ListAuditLogs handles the paged audit trail, newest entries first
func (h *Handler) ListAuditLogs(c *gin.Context) {
	limit := defaultAuditPageSize
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.errs.Handle(c, errorx.NewValidation("invalid limit"))
			return
		}
		if parsed > maxAuditPageSize {
			parsed = maxAuditPageSize
		}
		limit = parsed
	}
	offset := 0
	if raw := c.Query("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.errs.Handle(c, errorx.NewValidation("invalid offset"))
			return
		}
		offset = parsed
	}

	entries, err := h.db.ListAuditLogs(c.Request.Context(), limit, offset)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	c.JSON(http.StatusOK, auditEntries(entries))
}
