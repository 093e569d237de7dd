package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/splitsum/splitsum_app/internal/core/ports/services"
	"github.com/splitsum/splitsum_app/internal/dto"
	"github.com/splitsum/splitsum_app/internal/middleware"
)

// auditHandler serves a list's audit trail.
type auditHandler struct {
	auditService portssvc.AuditSvcFacade
}

func newAuditHandler(as portssvc.AuditSvcFacade) *auditHandler {
	return &auditHandler{auditService: as}
}

// registerAuditRoutes registers audit trail routes.
func registerAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditSvcFacade) {
	h := newAuditHandler(auditService)

	rg.GET("/lists/:listID/audit", h.listAuditEntries)
}

// listAuditEntries godoc
// @Summary Get a list's audit trail, newest first
// @Tags audit
// @Produce  json
// @Param   listID path string true "List ID"
// @Success 200 {object} dto.ListAuditEntriesResponse
// @Failure 403 {object} map[string]string "Not a participant"
// @Security BearerAuth
// @Router /lists/{listID}/audit [get]
func (h *auditHandler) listAuditEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	username, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entries, err := h.auditService.ListForList(c.Request.Context(), username, c.Param("listID"))
	if err != nil {
		respondError(c, logger, err, "Failed to list audit entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAuditEntriesResponse(entries))
}
