package handler

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"aerocode/backend/internal/dto"
	"aerocode/backend/internal/service"
	"aerocode/backend/pkg/response"
)

// ReportHandler 交付报告模块 HTTP 处理器
type ReportHandler struct {
	reportSvc service.ReportService
}

// NewReportHandler 创建 ReportHandler
func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// GenerateReport 生成交付报告
// POST /api/v1/reports/generate
func (h *ReportHandler) GenerateReport(c *gin.Context) {
	var req dto.GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	report, err := h.reportSvc.Generate(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, report)
}

// ListReports 报告列表
// GET /api/v1/reports?aircraft_code=xxx
func (h *ReportHandler) ListReports(c *gin.Context) {
	var req dto.ReportListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c)
		return
	}

	reports, err := h.reportSvc.List(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": reports})
}

// GetReport 报告详情
// GET /api/v1/reports/:id
func (h *ReportHandler) GetReport(c *gin.Context) {
	id, ok := pathID(c, service.ErrReportNotFound)
	if !ok {
		return
	}

	report, err := h.reportSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, report)
}

// DownloadReport 以纯文本附件下载报告内容
// GET /api/v1/reports/:id/download
func (h *ReportHandler) DownloadReport(c *gin.Context) {
	id, ok := pathID(c, service.ErrReportNotFound)
	if !ok {
		return
	}

	report, err := h.reportSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	filename := fmt.Sprintf("报告_%s_%s.txt", report.AircraftCode, report.DeliveryDate)
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(report.Content))
}

// DeleteReport 删除报告
// DELETE /api/v1/reports/:id
func (h *ReportHandler) DeleteReport(c *gin.Context) {
	id, ok := pathID(c, service.ErrReportNotFound)
	if !ok {
		return
	}

	if err := h.reportSvc.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}
