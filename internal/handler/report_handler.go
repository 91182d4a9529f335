package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/printlab/printerm/internal/service"
	"go.uber.org/zap"
)

type ReportHandler struct {
	service *service.ReportService
	logger  *zap.Logger
}

func NewReportHandler(service *service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{service: service, logger: logger}
}

// Get returns the assembled report as JSON.
func (h *ReportHandler) Get(c *gin.Context) {
	filter, ok := parseListFilter(c)
	if !ok {
		return
	}
	report, err := h.service.Build(c.Request.Context(), filter)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, report)
}

// Export streams the report as a CSV or XLSX attachment, selected by the
// format query parameter (csv default).
func (h *ReportHandler) Export(c *gin.Context) {
	filter, ok := parseListFilter(c)
	if !ok {
		return
	}
	report, err := h.service.Build(c.Request.Context(), filter)
	if err != nil {
		Error(c, err)
		return
	}

	stamp := time.Now().Format("2006-01-02")
	format := c.DefaultQuery("format", "csv")
	switch format {
	case "csv":
		var buf bytes.Buffer
		if err := h.service.WriteCSV(report, &buf); err != nil {
			Error(c, err)
			return
		}
		filename := fmt.Sprintf("print-report-%s.csv", stamp)
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, "text/csv", buf.Bytes())
	case "xlsx":
		var buf bytes.Buffer
		if err := h.service.WriteXLSX(report, &buf); err != nil {
			Error(c, err)
			return
		}
		filename := fmt.Sprintf("print-report-%s.xlsx", stamp)
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	default:
		BadRequest(c, "unknown format, expected csv or xlsx")
		return
	}

	h.logger.Info("report exported",
		zap.String("format", format),
		zap.Int("rows", len(report.Rows)))
}
