package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homebudget/internal/services"
)

// ReportHandler serves the household monthly report.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// MonthlyReportQuery holds the query parameters of the monthly report.
type MonthlyReportQuery struct {
	Month string `form:"month" binding:"required,month"`
}

// GetMonthlyReport handles the monthly report of every household member.
// @Summary     Monthly report
// @Description Budget, spend and progress per category for one month, all users combined
// @Tags        reports
// @Produce     json
// @Security    SessionAuth
// @Param       month query string true "Month in YYYY-MM format"
// @Success     200 {object} services.MonthlyReport
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/monthly [get]
func (h *ReportHandler) GetMonthlyReport(c *gin.Context) {
	var query MonthlyReportQuery
	if err := bindQuery(c, &query); err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.reportService.GetMonthlyReport(c.Request.Context(), query.Month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
