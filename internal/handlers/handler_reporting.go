package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/easyledger/internal/core/ports/services"
	"github.com/SscSPs/easyledger/internal/dto"
	"github.com/SscSPs/easyledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// reportingHandler serves the dashboard figures and ledger exports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	rg.GET("/dashboard", h.getDashboard)
	rg.GET("/exports/ledger.xlsx", h.exportLedger)
}

// getDashboard godoc
// @Summary Dashboard statistics
// @Description Invoiced, outstanding, expenses and profit for a period; defaults to the current year to date.
// @Tags reports
// @Produce json
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Success 200 {object} dto.DashboardResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/dashboard [get]
func (h *reportingHandler) getDashboard(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.PeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	stats, err := h.reportingService.GetDashboardStats(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "Failed to compute dashboard")
		return
	}
	c.JSON(http.StatusOK, dto.ToDashboardResponse(stats))
}

// exportLedger godoc
// @Summary Export ledger workbook
// @Description Invoices and expenses of the period as an XLSX workbook.
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/exports/ledger.xlsx [get]
func (h *reportingHandler) exportLedger(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.PeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	// Buffer so a failure can still be answered with a JSON error.
	var buf bytes.Buffer
	if err := h.reportingService.ExportLedger(c.Request.Context(), userID, params, &buf); err != nil {
		respondError(c, err, "Failed to export ledger")
		return
	}

	period := h.reportingService.ResolvePeriod(params)
	name := fmt.Sprintf("regnskap-%s-%s.xlsx", period.From.Format("20060102"), period.To.Format("20060102"))
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Ledger exported", slog.Int("bytes", buf.Len()))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
