package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/easyledger/internal/core/ports/services"
	"github.com/SscSPs/easyledger/internal/dto"
	"github.com/SscSPs/easyledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// expenseHandler handles expenses, their attachments and imports from extracted data.
type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
	receiptService portssvc.ReceiptSvcFacade
	maxUploadBytes int64
}

func registerExpenseRoutes(rg *gin.RouterGroup, es portssvc.ExpenseSvcFacade, rs portssvc.ReceiptSvcFacade, maxUploadBytes int64) {
	h := &expenseHandler{expenseService: es, receiptService: rs, maxUploadBytes: maxUploadBytes}

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.createExpense)
		expenses.GET("", h.listExpenses)
		expenses.POST("/from-extraction", h.createFromExtraction)
		expenses.GET("/:expenseID", h.getExpense)
		expenses.PUT("/:expenseID", h.updateExpense)
		expenses.DELETE("/:expenseID", h.deleteExpense)

		expenses.GET("/:expenseID/attachments", h.listAttachments)
		expenses.POST("/:expenseID/attachments", h.addAttachment)
		expenses.GET("/:expenseID/attachments/:attachmentID", h.downloadAttachment)
		expenses.DELETE("/:expenseID/attachments/:attachmentID", h.deleteAttachment)
	}
}

// createExpense godoc
// @Summary Create an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param expense body dto.ExpenseRequest true "Expense"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse "Invalid amount or unknown supplier/category"
// @Security BearerAuth
// @Router /api/v1/expenses [post]
func (h *expenseHandler) createExpense(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	expense, err := h.expenseService.CreateExpense(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create expense")
		return
	}
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

// listExpenses godoc
// @Summary List expenses
// @Description Lists expenses newest first, optionally within a date range.
// @Tags expenses
// @Produce json
// @Param status query string false "REGISTERED or PAID"
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Param limit query int false "Limit number of results" default(50)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListExpensesResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.ListExpensesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	expenses, err := h.expenseService.ListExpenses(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "Failed to list expenses")
		return
	}
	c.JSON(http.StatusOK, dto.ToListExpensesResponse(expenses))
}

// getExpense godoc
// @Summary Get an expense
// @Tags expenses
// @Produce json
// @Param expenseID path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/expenses/{expenseID} [get]
func (h *expenseHandler) getExpense(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	expense, err := h.expenseService.GetExpense(c.Request.Context(), userID, c.Param("expenseID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve expense")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// updateExpense godoc
// @Summary Update an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param expenseID path string true "Expense ID"
// @Param expense body dto.ExpenseRequest true "Expense"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/expenses/{expenseID} [put]
func (h *expenseHandler) updateExpense(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), userID, c.Param("expenseID"), req)
	if err != nil {
		respondError(c, err, "Failed to update expense")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// deleteExpense godoc
// @Summary Delete an expense
// @Tags expenses
// @Param expenseID path string true "Expense ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/expenses/{expenseID} [delete]
func (h *expenseHandler) deleteExpense(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.expenseService.DeleteExpense(c.Request.Context(), userID, c.Param("expenseID")); err != nil {
		respondError(c, err, "Failed to delete expense")
		return
	}
	c.Status(http.StatusNoContent)
}

// createFromExtraction godoc
// @Summary Create an expense from extracted invoice data
// @Description Files reviewed upload-invoice output as a REGISTERED expense, finding or creating the supplier by name.
// @Tags expenses
// @Accept json
// @Produce json
// @Param extraction body dto.CreateExpenseFromExtractionRequest true "Extracted data"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/expenses/from-extraction [post]
func (h *expenseHandler) createFromExtraction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateExpenseFromExtractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	expense, err := h.receiptService.CreateExpenseFromExtraction(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create expense")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Expense created from extraction", slog.String("expense_id", expense.ExpenseID))
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

// listAttachments godoc
// @Summary List expense attachments
// @Tags expenses
// @Produce json
// @Param expenseID path string true "Expense ID"
// @Success 200 {array} dto.AttachmentResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/expenses/{expenseID}/attachments [get]
func (h *expenseHandler) listAttachments(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	expense, err := h.expenseService.GetExpense(c.Request.Context(), userID, c.Param("expenseID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve expense")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense).Attachments)
}

// addAttachment godoc
// @Summary Attach a receipt
// @Tags expenses
// @Accept multipart/form-data
// @Produce json
// @Param expenseID path string true "Expense ID"
// @Param file formData file true "JPEG, PNG, WebP or PDF, at most 10 MB"
// @Success 201 {object} dto.AttachmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/expenses/{expenseID}/attachments [post]
func (h *expenseHandler) addAttachment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	file, err := readUploadedFile(c, h.maxUploadBytes)
	if err != nil {
		respondError(c, err, "Failed to read upload")
		return
	}
	att, err := h.expenseService.AddAttachment(c.Request.Context(), userID, c.Param("expenseID"), file.Name, file.ContentType, file.Data)
	if err != nil {
		respondError(c, err, "Failed to store attachment")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAttachmentResponse(att))
}

// downloadAttachment godoc
// @Summary Download a receipt
// @Tags expenses
// @Produce octet-stream
// @Param expenseID path string true "Expense ID"
// @Param attachmentID path string true "Attachment ID"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/expenses/{expenseID}/attachments/{attachmentID} [get]
func (h *expenseHandler) downloadAttachment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	att, err := h.expenseService.GetAttachment(c.Request.Context(), userID, c.Param("expenseID"), c.Param("attachmentID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve attachment")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", att.FileName))
	c.Data(http.StatusOK, att.ContentType, att.Data)
}

// deleteAttachment godoc
// @Summary Delete a receipt
// @Tags expenses
// @Param expenseID path string true "Expense ID"
// @Param attachmentID path string true "Attachment ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/expenses/{expenseID}/attachments/{attachmentID} [delete]
func (h *expenseHandler) deleteAttachment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.expenseService.DeleteAttachment(c.Request.Context(), userID, c.Param("expenseID"), c.Param("attachmentID")); err != nil {
		respondError(c, err, "Failed to delete attachment")
		return
	}
	c.Status(http.StatusNoContent)
}
