package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/injapanfood/pos-api/internal/application/service"
	"github.com/injapanfood/pos-api/internal/presentation/http/dto/request"
	"github.com/injapanfood/pos-api/internal/presentation/http/dto/response"
	"github.com/injapanfood/pos-api/pkg/aggregate"
	"github.com/injapanfood/pos-api/pkg/apperror"
	"github.com/rs/zerolog/log"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler serves the admin sales reports
type ReportHandler struct {
	reportService *service.ReportService
	now           func() time.Time
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService, now: time.Now}
}

// Sales returns the sales report for the period containing date
func (h *ReportHandler) Sales(c *gin.Context) {
	report, ok := h.salesReport(c)
	if !ok {
		return
	}

	response.OK(c, "Sales report retrieved successfully", report)
}

// ExportSales returns the sales report as a spreadsheet
func (h *ReportHandler) ExportSales(c *gin.Context) {
	report, ok := h.salesReport(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := service.WriteSalesXLSX(&buf, report); err != nil {
		log.Error().Err(err).Str("period", string(report.Period)).Msg("sales export failed")
		response.InternalServerError(c, "Failed to export sales report")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="sales-%s-%s.xlsx"`, report.Period, report.Date))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Monthly returns revenue and sale counts per month of a year
func (h *ReportHandler) Monthly(c *gin.Context) {
	var req request.MonthlyReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	year := req.Year
	if year == 0 {
		year = h.now().In(h.reportService.Location()).Year()
	}

	response.OK(c, "Monthly report retrieved successfully", h.reportService.MonthlyChart(c.Request.Context(), year))
}

func (h *ReportHandler) salesReport(c *gin.Context) (*service.SalesReport, bool) {
	var req request.SalesReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return nil, false
	}

	period, err := aggregate.ParsePeriod(req.Period)
	if err != nil {
		response.Error(c, apperror.NewBadRequestError("Invalid period"))
		return nil, false
	}

	loc := h.reportService.Location()
	date := h.now().In(loc)
	if req.Date != "" {
		date, err = time.ParseInLocation(dateLayout, req.Date, loc)
		if err != nil {
			response.Error(c, apperror.NewBadRequestError("Invalid date, expected YYYY-MM-DD"))
			return nil, false
		}
	}

	report, err := h.reportService.SalesReport(c.Request.Context(), period, date)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	return report, true
}
