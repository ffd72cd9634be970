package handler

import (
	"github.com/gin-gonic/gin"

	"aerocode/backend/internal/dto"
	"aerocode/backend/internal/service"
	"aerocode/backend/pkg/response"
)

// MetricHandler 请求指标 HTTP 处理器
type MetricHandler struct {
	metricSvc service.MetricService
}

// NewMetricHandler 创建 MetricHandler
func NewMetricHandler(metricSvc service.MetricService) *MetricHandler {
	return &MetricHandler{metricSvc: metricSvc}
}

// ListMetrics 最近的请求指标
// GET /api/v1/metrics?limit=100
func (h *MetricHandler) ListMetrics(c *gin.Context) {
	var req dto.MetricListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c)
		return
	}

	list, err := h.metricSvc.List(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// Summary 指标汇总
// GET /api/v1/metrics/summary
func (h *MetricHandler) Summary(c *gin.Context) {
	summary, err := h.metricSvc.Summary(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, summary)
}

// Cleanup 删除早于 days 天的指标
// DELETE /api/v1/metrics/cleanup?days=7
func (h *MetricHandler) Cleanup(c *gin.Context) {
	var req dto.MetricCleanupRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c)
		return
	}

	result, err := h.metricSvc.Cleanup(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}
