package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/easyledger/internal/core/ports/services"
	"github.com/SscSPs/easyledger/internal/core/services"
	"github.com/SscSPs/easyledger/internal/dto"
	"github.com/SscSPs/easyledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// invoiceHandler handles invoice CRUD, status changes, payments and delivery.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
	now            func() time.Time
}

func newInvoiceHandler(is portssvc.InvoiceSvcFacade) *invoiceHandler {
	return &invoiceHandler{invoiceService: is, now: time.Now}
}

func registerInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade) {
	h := newInvoiceHandler(invoiceService)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/:invoiceID", h.getInvoice)
		invoices.PUT("/:invoiceID", h.updateInvoice)
		invoices.DELETE("/:invoiceID", h.deleteInvoice)
		invoices.PATCH("/:invoiceID/status", h.updateInvoiceStatus)
		invoices.POST("/:invoiceID/payments", h.registerPayment)
		invoices.GET("/:invoiceID/pdf", h.downloadPDF)
		invoices.POST("/:invoiceID/send", h.sendInvoice)
	}
}

// createInvoice godoc
// @Summary Create an invoice
// @Description Creates a DRAFT invoice and reserves the next invoice number.
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoice body dto.InvoiceRequest true "Invoice"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse "Invalid lines, dates or unknown customer"
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create invoice")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Invoice created",
		slog.String("invoice_id", invoice.InvoiceID), slog.String("invoice_number", invoice.InvoiceNumber))
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice, h.now()))
}

// listInvoices godoc
// @Summary List invoices
// @Description Lists invoices newest first. The OVERDUE filter includes sent invoices past their due date.
// @Tags invoices
// @Produce json
// @Param status query string false "DRAFT, SENT, PAID, OVERDUE or CANCELLED"
// @Param limit query int false "Limit number of results" default(50)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListInvoicesResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.ListInvoicesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	invoices, err := h.invoiceService.ListInvoices(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "Failed to list invoices")
		return
	}
	c.JSON(http.StatusOK, dto.ToListInvoicesResponse(invoices, h.now()))
}

// getInvoice godoc
// @Summary Get an invoice
// @Tags invoices
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/invoices/{invoiceID} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), userID, c.Param("invoiceID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice, h.now()))
}

// updateInvoice godoc
// @Summary Replace a draft invoice
// @Description Replaces header and lines. Only DRAFT invoices can be edited.
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Param invoice body dto.InvoiceRequest true "Invoice"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Invoice is no longer a draft"
// @Security BearerAuth
// @Router /api/v1/invoices/{invoiceID} [put]
func (h *invoiceHandler) updateInvoice(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), userID, c.Param("invoiceID"), req)
	if err != nil {
		respondError(c, err, "Failed to update invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice, h.now()))
}

// deleteInvoice godoc
// @Summary Delete an invoice
// @Description Deletes the invoice together with its lines and payments.
// @Tags invoices
// @Param invoiceID path string true "Invoice ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/invoices/{invoiceID} [delete]
func (h *invoiceHandler) deleteInvoice(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), userID, c.Param("invoiceID")); err != nil {
		respondError(c, err, "Failed to delete invoice")
		return
	}
	c.Status(http.StatusNoContent)
}

// updateInvoiceStatus godoc
// @Summary Change invoice status
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Param status body dto.UpdateInvoiceStatusRequest true "New status"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Transition not allowed"
// @Security BearerAuth
// @Router /api/v1/invoices/{invoiceID}/status [patch]
func (h *invoiceHandler) updateInvoiceStatus(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	invoice, err := h.invoiceService.UpdateInvoiceStatus(c.Request.Context(), userID, c.Param("invoiceID"), req.Status)
	if err != nil {
		respondError(c, err, "Failed to update invoice status")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice, h.now()))
}

// registerPayment godoc
// @Summary Register a payment
// @Description Records money received. The invoice becomes PAID once payments cover the total.
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Param payment body dto.RegisterPaymentRequest true "Payment"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/invoices/{invoiceID}/payments [post]
func (h *invoiceHandler) registerPayment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.RegisterPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	invoice, err := h.invoiceService.RegisterPayment(c.Request.Context(), userID, c.Param("invoiceID"), req)
	if err != nil {
		respondError(c, err, "Failed to register payment")
		return
	}
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice, h.now()))
}

// downloadPDF godoc
// @Summary Invoice PDF
// @Tags invoices
// @Produce application/pdf
// @Param invoiceID path string true "Invoice ID"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/invoices/{invoiceID}/pdf [get]
func (h *invoiceHandler) downloadPDF(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	pdf, invoice, err := h.invoiceService.RenderInvoicePDF(c.Request.Context(), userID, c.Param("invoiceID"))
	if err != nil {
		respondError(c, err, "Failed to render invoice")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", services.InvoicePDFFileName(invoice.InvoiceNumber)))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// sendInvoice godoc
// @Summary Email an invoice
// @Description Sends the PDF to the customer's email address and marks a draft as SENT.
// @Tags invoices
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse "Customer email or sender address missing"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Invoice is cancelled"
// @Failure 502 {object} ErrorResponse "Email provider failed"
// @Security BearerAuth
// @Router /api/v1/invoices/{invoiceID}/send [post]
func (h *invoiceHandler) sendInvoice(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	invoice, err := h.invoiceService.SendInvoice(c.Request.Context(), userID, c.Param("invoiceID"))
	if err != nil {
		respondError(c, err, "Failed to send invoice")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Invoice sent",
		slog.String("invoice_id", invoice.InvoiceID), slog.String("to", invoice.SentTo))
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice, h.now()))
}

