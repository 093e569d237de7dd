package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/splitsum/splitsum_app/internal/core/domain"
	portsrepo "github.com/splitsum/splitsum_app/internal/core/ports/repositories"
	portssvc "github.com/splitsum/splitsum_app/internal/core/ports/services"
	"github.com/splitsum/splitsum_app/internal/dto"
	"github.com/splitsum/splitsum_app/internal/middleware"
)

// deletionHandler handles the consensus-gated list deletion workflow.
type deletionHandler struct {
	deletionService portssvc.DeletionSvcFacade
}

func newDeletionHandler(ds portssvc.DeletionSvcFacade) *deletionHandler {
	return &deletionHandler{deletionService: ds}
}

// registerDeletionRoutes registers list deletion consensus routes.
func registerDeletionRoutes(rg *gin.RouterGroup, deletionService portssvc.DeletionSvcFacade) {
	h := newDeletionHandler(deletionService)

	rg.POST("/lists/:listID/deletion-requests", h.requestDeletion)
	rg.GET("/lists/:listID/deletion-requests", h.getDeletionStatus)
	rg.POST("/deletion-requests/:requestID/vote", h.vote)
}

// requestDeletion godoc
// @Summary Start a list deletion consensus round
// @Description Lists with at most one registered member are deleted immediately; otherwise every other member must approve.
// @Tags deletion
// @Produce  json
// @Param   listID path string true "List ID"
// @Success 200 "List deleted immediately"
// @Success 201 {object} dto.DeletionRequestResponse "Consensus round started"
// @Failure 403 {object} map[string]string "Not a participant"
// @Failure 409 {object} map[string]string "A pending request already exists"
// @Security BearerAuth
// @Router /lists/{listID}/deletion-requests [post]
func (h *deletionHandler) requestDeletion(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	username, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	request, deleted, err := h.deletionService.RequestDeletion(c.Request.Context(), username, c.Param("listID"))
	if err != nil {
		respondError(c, logger, err, "Failed to request list deletion")
		return
	}
	if deleted {
		c.JSON(http.StatusOK, gin.H{"deleted": true})
		return
	}

	approvals, err := h.loadApprovals(c, username, request.ListID)
	if err != nil {
		respondError(c, logger, err, "Failed to load deletion approvals")
		return
	}
	c.JSON(http.StatusCreated, dto.ToDeletionRequestResponse(request, approvals))
}

// getDeletionStatus godoc
// @Summary Get the pending deletion request for a list
// @Tags deletion
// @Produce  json
// @Param   listID path string true "List ID"
// @Success 200 {object} dto.DeletionRequestResponse
// @Failure 404 {object} map[string]string "No pending request"
// @Security BearerAuth
// @Router /lists/{listID}/deletion-requests [get]
func (h *deletionHandler) getDeletionStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	username, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	request, approvals, err := h.deletionService.GetStatus(c.Request.Context(), username, c.Param("listID"))
	if err != nil {
		respondError(c, logger, err, "Failed to get deletion status")
		return
	}
	c.JSON(http.StatusOK, dto.ToDeletionRequestResponse(request, approvals))
}

// vote godoc
// @Summary Vote on a deletion request
// @Description A reject vote ends the round; the final approve vote destroys the list.
// @Tags deletion
// @Accept  json
// @Produce  json
// @Param   requestID path string true "Deletion request ID"
// @Param   decision body dto.DeletionVoteRequest true "Approve or reject"
// @Success 200 {object} map[string]string "Resulting consensus state"
// @Failure 404 {object} map[string]string "Request or vote not found"
// @Failure 409 {object} map[string]string "Request already resolved"
// @Security BearerAuth
// @Router /deletion-requests/{requestID}/vote [post]
func (h *deletionHandler) vote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	username, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.DeletionVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	outcome, err := h.deletionService.Approve(c.Request.Context(), username, c.Param("requestID"), *req.Approved)
	if err != nil {
		respondError(c, logger, err, "Failed to record deletion vote")
		return
	}
	c.JSON(http.StatusOK, gin.H{"outcome": string(outcome), "deleted": outcome == portsrepo.VoteApproved})
}

// loadApprovals fetches the approvals for a freshly created request.
func (h *deletionHandler) loadApprovals(c *gin.Context, username, listID string) ([]domain.DeletionApproval, error) {
	_, approvals, err := h.deletionService.GetStatus(c.Request.Context(), username, listID)
	return approvals, err
}
