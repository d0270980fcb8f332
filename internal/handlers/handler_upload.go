package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/easyledger/internal/apperrors"
	portssvc "github.com/SscSPs/easyledger/internal/core/ports/services"
	"github.com/SscSPs/easyledger/internal/dto"
	"github.com/SscSPs/easyledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type uploadHandler struct {
	receiptService portssvc.ReceiptSvcFacade
	maxUploadBytes int64
}

func registerUploadRoutes(rg *gin.RouterGroup, rs portssvc.ReceiptSvcFacade, maxUploadBytes int64, throttle gin.HandlerFunc) {
	h := &uploadHandler{receiptService: rs, maxUploadBytes: maxUploadBytes}
	rg.POST("/upload-invoice", throttle, h.uploadInvoice)
}

// uploadInvoice godoc
// @Summary Analyze a supplier invoice
// @Description Reads a JPEG, PNG, WebP or PDF invoice and returns the extracted fields for review.
// @Tags expenses
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Invoice document, at most 10 MB"
// @Success 200 {object} dto.UploadInvoiceResponse
// @Failure 400 {object} ErrorResponse "Missing file, wrong type, too large or unreadable PDF"
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse "Extraction failed"
// @Security BearerAuth
// @Router /api/v1/upload-invoice [post]
func (h *uploadHandler) uploadInvoice(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	file, err := readUploadedFile(c, h.maxUploadBytes)
	if err != nil {
		respondError(c, err, "Failed to read upload")
		return
	}

	data, err := h.receiptService.AnalyzeDocument(c.Request.Context(), userID, file.ContentType, file.Data)
	if err != nil {
		// Upstream failures are reported as 500 on this endpoint.
		if errors.Is(err, apperrors.ErrExternalService) {
			logger.Error("Invoice extraction failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
			return
		}
		respondError(c, err, "Failed to analyze invoice")
		return
	}

	logger.Info("Invoice analyzed", slog.String("content_type", file.ContentType), slog.String("confidence", string(data.Confidence)))
	c.JSON(http.StatusOK, dto.UploadInvoiceResponse{Success: true, Data: data})
}
