package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/splitsum/splitsum_app/internal/core/ports/services"
	"github.com/splitsum/splitsum_app/internal/dto"
	"github.com/splitsum/splitsum_app/internal/middleware"
)

// catalogHandler handles the payer and category pickers.
type catalogHandler struct {
	catalogService portssvc.CatalogSvcFacade
}

func newCatalogHandler(cs portssvc.CatalogSvcFacade) *catalogHandler {
	return &catalogHandler{catalogService: cs}
}

// registerCatalogRoutes registers payer and category routes.
func registerCatalogRoutes(rg *gin.RouterGroup, catalogService portssvc.CatalogSvcFacade) {
	h := newCatalogHandler(catalogService)

	payers := rg.Group("/payers")
	{
		payers.POST("", h.createPayer)
		payers.GET("", h.listPayers)
		payers.DELETE("/:payerID", h.deletePayer)
	}

	categories := rg.Group("/categories")
	{
		categories.POST("", h.createCategory)
		categories.GET("", h.listCategories)
		categories.DELETE("/:categoryID", h.deleteCategory)
	}
}

// createPayer godoc
// @Summary Save a payer name for quick entry
// @Tags catalog
// @Accept  json
// @Produce  json
// @Param   payer body dto.CreatePayerRequest true "Payer name"
// @Success 201 {object} dto.PayerResponse
// @Failure 409 {object} map[string]string "Payer already exists"
// @Security BearerAuth
// @Router /payers [post]
func (h *catalogHandler) createPayer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	username, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreatePayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	payer, err := h.catalogService.CreatePayer(c.Request.Context(), username, req.Name)
	if err != nil {
		respondError(c, logger, err, "Failed to create payer")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPayerResponse(payer))
}

// listPayers godoc
// @Summary List the caller's saved payers
// @Tags catalog
// @Produce  json
// @Success 200 {object} dto.ListPayersResponse
// @Security BearerAuth
// @Router /payers [get]
func (h *catalogHandler) listPayers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	username, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payers, err := h.catalogService.ListPayers(c.Request.Context(), username)
	if err != nil {
		respondError(c, logger, err, "Failed to list payers")
		return
	}
	c.JSON(http.StatusOK, dto.ToListPayersResponse(payers))
}

// deletePayer godoc
// @Summary Delete a saved payer
// @Tags catalog
// @Produce  json
// @Param   payerID path string true "Payer ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Payer not found"
// @Security BearerAuth
// @Router /payers/{payerID} [delete]
func (h *catalogHandler) deletePayer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	username, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.catalogService.DeletePayer(c.Request.Context(), username, c.Param("payerID")); err != nil {
		respondError(c, logger, err, "Failed to delete payer")
		return
	}
	c.Status(http.StatusNoContent)
}

// createCategory godoc
// @Summary Save a category label
// @Tags catalog
// @Accept  json
// @Produce  json
// @Param   category body dto.CreateCategoryRequest true "Category details"
// @Success 201 {object} dto.CategoryResponse
// @Failure 409 {object} map[string]string "Category already exists"
// @Security BearerAuth
// @Router /categories [post]
func (h *catalogHandler) createCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	username, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	category, err := h.catalogService.CreateCategory(c.Request.Context(), username, req.Name, req.ListID)
	if err != nil {
		respondError(c, logger, err, "Failed to create category")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCategoryResponse(category))
}

// listCategories godoc
// @Summary List the caller's categories
// @Tags catalog
// @Produce  json
// @Success 200 {object} dto.ListCategoriesResponse
// @Security BearerAuth
// @Router /categories [get]
func (h *catalogHandler) listCategories(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	username, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	categories, err := h.catalogService.ListCategories(c.Request.Context(), username)
	if err != nil {
		respondError(c, logger, err, "Failed to list categories")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCategoriesResponse(categories))
}

// deleteCategory godoc
// @Summary Delete a category
// @Tags catalog
// @Produce  json
// @Param   categoryID path string true "Category ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Category not found"
// @Security BearerAuth
// @Router /categories/{categoryID} [delete]
func (h *catalogHandler) deleteCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	username, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.catalogService.DeleteCategory(c.Request.Context(), username, c.Param("categoryID")); err != nil {
		respondError(c, logger, err, "Failed to delete category")
		return
	}
	c.Status(http.StatusNoContent)
}
