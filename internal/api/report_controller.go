package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mohamadacma/capflow-demo/internal/service"
)

// ReportController 统计与导出控制器
type ReportController struct {
	metricsService service.MetricsService
	exportService  service.AuditExportService
}

// NewReportController 创建统计与导出控制器
func NewReportController(metricsService service.MetricsService, exportService service.AuditExportService) *ReportController {
	return &ReportController{
		metricsService: metricsService,
		exportService:  exportService,
	}
}

// Metrics 请求汇总统计
// @Router /reports/metrics [get]
func (c *ReportController) Metrics(ctx *gin.Context) {
	m, err := c.metricsService.Compute(ctx.Request.Context())
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	Success(ctx, m)
}

// ExportApprovals 导出审批历史 CSV
// @Produce text/csv
// @Router  /reports/approvals.csv [get]
func (c *ReportController) ExportApprovals(ctx *gin.Context) {
	data, err := c.exportService.ExportApprovalsCSV(ctx.Request.Context())
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="approvals.csv"`)
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
