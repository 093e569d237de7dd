package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/splitsum/splitsum_app/internal/core/ports/services"
	"github.com/splitsum/splitsum_app/internal/dto"
	"github.com/splitsum/splitsum_app/internal/middleware"
)

// listHandler handles list, membership and invitation requests.
type listHandler struct {
	listService portssvc.ListSvcFacade
}

func newListHandler(ls portssvc.ListSvcFacade) *listHandler {
	return &listHandler{listService: ls}
}

// registerListRoutes registers list and share request routes.
func registerListRoutes(rg *gin.RouterGroup, listService portssvc.ListSvcFacade) {
	h := newListHandler(listService)

	lists := rg.Group("/lists")
	{
		lists.POST("", h.createList)
		lists.GET("", h.listLists)
		lists.GET("/:listID", h.getList)
		lists.PUT("/:listID/name", h.renameList)
		lists.POST("/:listID/share", h.shareList)
		lists.DELETE("/:listID/participants/:username", h.removeParticipant)
	}

	shares := rg.Group("/share-requests")
	{
		shares.GET("", h.listShareRequests)
		shares.GET("/sent", h.listSentShareRequests)
		shares.POST("/:requestID/respond", h.respondShareRequest)
	}
}

// createList godoc
// @Summary Create a shared expense list
// @Tags lists
// @Accept  json
// @Produce  json
// @Param   list body dto.CreateListRequest true "List details"
// @Success 201 {object} dto.ListResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Invited user not found"
// @Security BearerAuth
// @Router /lists [post]
func (h *listHandler) createList(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	username, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	list, err := h.listService.CreateList(c.Request.Context(), username, req)
	if err != nil {
		respondError(c, logger, err, "Failed to create list")
		return
	}

	_, memberships, err := h.listService.GetList(c.Request.Context(), username, list.ListID)
	if err != nil {
		respondError(c, logger, err, "Failed to load created list")
		return
	}
	c.JSON(http.StatusCreated, dto.ToListResponse(list, memberships))
}

// listLists godoc
// @Summary List accessible expense lists
// @Tags lists
// @Produce  json
// @Success 200 {object} dto.ListListsResponse
// @Security BearerAuth
// @Router /lists [get]
func (h *listHandler) listLists(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	username, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	lists, err := h.listService.ListAccessibleLists(c.Request.Context(), username)
	if err != nil {
		respondError(c, logger, err, "Failed to list expense lists")
		return
	}
	c.JSON(http.StatusOK, dto.ToListListsResponse(lists))
}

// getList godoc
// @Summary Get one list with its participants
// @Tags lists
// @Produce  json
// @Param   listID path string true "List ID"
// @Success 200 {object} dto.ListResponse
// @Failure 403 {object} map[string]string "Not a participant"
// @Failure 404 {object} map[string]string "List not found"
// @Security BearerAuth
// @Router /lists/{listID} [get]
func (h *listHandler) getList(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	username, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	list, memberships, err := h.listService.GetList(c.Request.Context(), username, c.Param("listID"))
	if err != nil {
		respondError(c, logger, err, "Failed to get list")
		return
	}
	c.JSON(http.StatusOK, dto.ToListResponse(list, memberships))
}

// renameList godoc
// @Summary Rename a list
// @Tags lists
// @Accept  json
// @Produce  json
// @Param   listID path string true "List ID"
// @Param   name body dto.RenameListRequest true "New name"
// @Success 200 {object} dto.ListResponse
// @Failure 403 {object} map[string]string "Not a participant"
// @Failure 404 {object} map[string]string "List not found"
// @Security BearerAuth
// @Router /lists/{listID}/name [put]
func (h *listHandler) renameList(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	username, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.RenameListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	list, err := h.listService.RenameList(c.Request.Context(), username, c.Param("listID"), req.Name)
	if err != nil {
		respondError(c, logger, err, "Failed to rename list")
		return
	}
	c.JSON(http.StatusOK, dto.ToListResponse(list, nil))
}

// shareList godoc
// @Summary Invite a registered user to a list
// @Tags lists
// @Accept  json
// @Produce  json
// @Param   listID path string true "List ID"
// @Param   invite body dto.ShareListRequest true "Invitation details"
// @Success 201 {object} dto.ShareRequestResponse
// @Failure 404 {object} map[string]string "List or user not found"
// @Failure 409 {object} map[string]string "Already a member or already invited"
// @Security BearerAuth
// @Router /lists/{listID}/share [post]
func (h *listHandler) shareList(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	username, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ShareListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	request, err := h.listService.ShareList(c.Request.Context(), username, c.Param("listID"), req)
	if err != nil {
		respondError(c, logger, err, "Failed to share list")
		return
	}
	c.JSON(http.StatusCreated, dto.ToShareRequestResponse(request))
}

// removeParticipant godoc
// @Summary Remove a registered participant from a list
// @Tags lists
// @Produce  json
// @Param   listID path string true "List ID"
// @Param   username path string true "Participant username"
// @Success 204 "Removed"
// @Failure 403 {object} map[string]string "Not a participant"
// @Failure 404 {object} map[string]string "Membership not found"
// @Security BearerAuth
// @Router /lists/{listID}/participants/{username} [delete]
func (h *listHandler) removeParticipant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actingUser, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.listService.RemoveParticipant(c.Request.Context(), actingUser, c.Param("listID"), c.Param("username"))
	if err != nil {
		respondError(c, logger, err, "Failed to remove participant")
		return
	}
	c.Status(http.StatusNoContent)
}

// listShareRequests godoc
// @Summary List invitations received by the caller
// @Tags share-requests
// @Produce  json
// @Param   pending query bool false "Only pending requests"
// @Success 200 {object} dto.ListShareRequestsResponse
// @Security BearerAuth
// @Router /share-requests [get]
func (h *listHandler) listShareRequests(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	username, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	onlyPending := c.Query("pending") == "true"
	requests, err := h.listService.ListShareRequestsForUser(c.Request.Context(), username, onlyPending)
	if err != nil {
		respondError(c, logger, err, "Failed to list share requests")
		return
	}
	c.JSON(http.StatusOK, dto.ToListShareRequestsResponse(requests))
}

// listSentShareRequests godoc
// @Summary List invitations sent by the caller
// @Tags share-requests
// @Produce  json
// @Success 200 {object} dto.ListShareRequestsResponse
// @Security BearerAuth
// @Router /share-requests/sent [get]
func (h *listHandler) listSentShareRequests(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	username, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	requests, err := h.listService.ListSentShareRequests(c.Request.Context(), username)
	if err != nil {
		respondError(c, logger, err, "Failed to list sent share requests")
		return
	}
	c.JSON(http.StatusOK, dto.ToListShareRequestsResponse(requests))
}

// respondShareRequest godoc
// @Summary Accept or reject an invitation
// @Tags share-requests
// @Accept  json
// @Produce  json
// @Param   requestID path string true "Share request ID"
// @Param   decision body dto.RespondShareRequestRequest true "Accept or reject"
// @Success 200 {object} dto.ShareRequestResponse
// @Failure 403 {object} map[string]string "Not the invited user"
// @Failure 409 {object} map[string]string "Already responded"
// @Security BearerAuth
// @Router /share-requests/{requestID}/respond [post]
func (h *listHandler) respondShareRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	username, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.RespondShareRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	request, err := h.listService.RespondToShareRequest(c.Request.Context(), username, c.Param("requestID"), *req.Accept)
	if err != nil {
		respondError(c, logger, err, "Failed to respond to share request")
		return
	}
	c.JSON(http.StatusOK, dto.ToShareRequestResponse(request))
}
