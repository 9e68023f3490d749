package http

import (
	"net/http"

	"github.com/workline-hq/hrms-backend-go/internal/domain/report"
	"github.com/workline-hq/hrms-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	MonthlyReport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

func (h *reportHandlerImpl) MonthlyReport(w http.ResponseWriter, r *http.Request) {
	req := report.MonthlyReportRequest{
		Month:       r.URL.Query().Get("month"),
		WithSummary: r.URL.Query().Get("with_summary") == "true",
	}

	result, err := h.reportService.MonthlyReport(r.Context(), &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
