package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hallbook/internal/service/reporting"
)

// ReportHandler serves the monthly contract report.
type ReportHandler struct {
	svc    *reporting.Service
	logger *zap.Logger
}

// NewReportHandler constructs the HTTP handler adapter.
func NewReportHandler(svc *reporting.Service, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{svc: svc, logger: logger}
}

// Monthly returns contracts grouped by month, ascending chronologically.
func (h *ReportHandler) Monthly(c *gin.Context) {
	report, err := h.svc.MonthlyReport(c.Request.Context())
	if err != nil {
		h.logger.Error("failed building monthly report", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, report)
}
