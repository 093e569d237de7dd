package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/splitsum/splitsum_app/internal/apperrors"
	portssvc "github.com/splitsum/splitsum_app/internal/core/ports/services"
	"github.com/splitsum/splitsum_app/internal/dto"
	"github.com/splitsum/splitsum_app/internal/middleware"
)

// expenseHandler handles expense, trash and restore requests.
type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

func newExpenseHandler(es portssvc.ExpenseSvcFacade) *expenseHandler {
	return &expenseHandler{expenseService: es}
}

// registerExpenseRoutes registers expense and trash routes.
func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade) {
	h := newExpenseHandler(expenseService)

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.addExpense)
		expenses.PUT("/:expenseID", h.updateExpense)
		expenses.DELETE("/:expenseID", h.deleteExpense)
	}

	lists := rg.Group("/lists/:listID")
	{
		lists.GET("/expenses", h.listExpenses)
		lists.GET("/expenses/by-date", h.listExpensesByDate)
	}

	trash := rg.Group("/trash")
	{
		trash.GET("", h.listTrash)
		trash.POST("/:trashID/restore", h.restoreExpense)
	}
}

// addExpense godoc
// @Summary Add an expense to a list
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Not a participant"
// @Security BearerAuth
// @Router /expenses [post]
func (h *expenseHandler) addExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	username, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	expense, err := h.expenseService.AddExpense(c.Request.Context(), username, req)
	if err != nil {
		respondError(c, logger, err, "Failed to add expense")
		return
	}
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

// updateExpense godoc
// @Summary Edit an existing expense
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   expenseID path string true "Expense ID"
// @Param   expense body dto.UpdateExpenseRequest true "Expense details"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Expense not found"
// @Security BearerAuth
// @Router /expenses/{expenseID} [put]
func (h *expenseHandler) updateExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	username, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), username, c.Param("expenseID"), req)
	if err != nil {
		respondError(c, logger, err, "Failed to update expense")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// deleteExpense godoc
// @Summary Move an expense to the trash
// @Tags expenses
// @Produce  json
// @Param   expenseID path string true "Expense ID"
// @Success 204 "Trashed"
// @Failure 404 {object} map[string]string "Expense not found"
// @Security BearerAuth
// @Router /expenses/{expenseID} [delete]
func (h *expenseHandler) deleteExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	username, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), username, c.Param("expenseID")); err != nil {
		respondError(c, logger, err, "Failed to delete expense")
		return
	}
	c.Status(http.StatusNoContent)
}

// listExpenses godoc
// @Summary List a list's active expenses
// @Tags expenses
// @Produce  json
// @Param   listID path string true "List ID"
// @Success 200 {object} dto.ListExpensesResponse
// @Failure 403 {object} map[string]string "Not a participant"
// @Security BearerAuth
// @Router /lists/{listID}/expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	username, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	expenses, err := h.expenseService.ListExpenses(c.Request.Context(), username, c.Param("listID"))
	if err != nil {
		respondError(c, logger, err, "Failed to list expenses")
		return
	}
	c.JSON(http.StatusOK, dto.ToListExpensesResponse(expenses))
}

// listExpensesByDate godoc
// @Summary List a list's expenses inside a date range
// @Tags expenses
// @Produce  json
// @Param   listID path string true "List ID"
// @Param   from query string true "Range start (YYYY-MM-DD)"
// @Param   to query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} dto.ListExpensesResponse
// @Failure 400 {object} map[string]string "Invalid range"
// @Security BearerAuth
// @Router /lists/{listID}/expenses/by-date [get]
func (h *expenseHandler) listExpensesByDate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	username, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		respondError(c, logger, apperrors.NewValidationFailedError("invalid from date: expected YYYY-MM-DD"), "")
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		respondError(c, logger, apperrors.NewValidationFailedError("invalid to date: expected YYYY-MM-DD"), "")
		return
	}

	expenses, err := h.expenseService.ListExpensesByDate(c.Request.Context(), username, c.Param("listID"), from, to)
	if err != nil {
		respondError(c, logger, err, "Failed to list expenses by date")
		return
	}
	c.JSON(http.StatusOK, dto.ToListExpensesResponse(expenses))
}

// listTrash godoc
// @Summary List the caller's trashed expenses
// @Tags trash
// @Produce  json
// @Success 200 {object} dto.ListTrashResponse
// @Security BearerAuth
// @Router /trash [get]
func (h *expenseHandler) listTrash(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	username, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	trash, err := h.expenseService.ListTrash(c.Request.Context(), username)
	if err != nil {
		respondError(c, logger, err, "Failed to list trash")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTrashResponse(trash))
}

// restoreExpense godoc
// @Summary Restore a trashed expense
// @Tags trash
// @Produce  json
// @Param   trashID path string true "Trash record ID"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 404 {object} map[string]string "Trash record not found"
// @Security BearerAuth
// @Router /trash/{trashID}/restore [post]
func (h *expenseHandler) restoreExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	username, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	expense, err := h.expenseService.RestoreExpense(c.Request.Context(), username, c.Param("trashID"))
	if err != nil {
		respondError(c, logger, err, "Failed to restore expense")
		return
	}
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}
