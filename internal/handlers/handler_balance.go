package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/splitsum/splitsum_app/internal/core/ports/services"
	"github.com/splitsum/splitsum_app/internal/dto"
	"github.com/splitsum/splitsum_app/internal/middleware"
)

// balanceHandler serves the computed balances and settlement plans.
type balanceHandler struct {
	balanceService portssvc.BalanceSvcFacade
}

func newBalanceHandler(bs portssvc.BalanceSvcFacade) *balanceHandler {
	return &balanceHandler{balanceService: bs}
}

// registerBalanceRoutes registers balance computation routes.
func registerBalanceRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade) {
	h := newBalanceHandler(balanceService)

	rg.GET("/lists/:listID/balances", h.getListBalances)
	rg.GET("/balances", h.getUserBalances)
}

// getListBalances godoc
// @Summary Get net balances and settlement plan for one list
// @Tags balances
// @Produce  json
// @Param   listID path string true "List ID"
// @Success 200 {object} dto.BalanceResultResponse
// @Failure 403 {object} map[string]string "Not a participant"
// @Failure 404 {object} map[string]string "List not found"
// @Security BearerAuth
// @Router /lists/{listID}/balances [get]
func (h *balanceHandler) getListBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	username, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.balanceService.ComputeForList(c.Request.Context(), username, c.Param("listID"))
	if err != nil {
		respondError(c, logger, err, "Failed to compute list balances")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceResultResponse(result))
}

// getUserBalances godoc
// @Summary Get net balances across every accessible list
// @Tags balances
// @Produce  json
// @Success 200 {object} dto.BalanceResultResponse
// @Security BearerAuth
// @Router /balances [get]
func (h *balanceHandler) getUserBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	username, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.balanceService.ComputeForUser(c.Request.Context(), username)
	if err != nil {
		respondError(c, logger, err, "Failed to compute user balances")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceResultResponse(result))
}
