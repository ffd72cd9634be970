package handler

import (
	"github.com/gin-gonic/gin"

	"aerocode/backend/internal/dto"
	"aerocode/backend/internal/service"
	"aerocode/backend/pkg/response"
)

// StatusLogHandler 状态变更记录 HTTP 处理器
type StatusLogHandler struct {
	logSvc service.StatusLogService
}

// NewStatusLogHandler 创建 StatusLogHandler
func NewStatusLogHandler(logSvc service.StatusLogService) *StatusLogHandler {
	return &StatusLogHandler{logSvc: logSvc}
}

// ListStatusLogs 状态变更记录（分页，最新在前）
// GET /api/v1/status-logs?entity_type=part&entity_id=xxx&page=1&page_size=20
func (h *StatusLogHandler) ListStatusLogs(c *gin.Context) {
	var req dto.StatusLogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c)
		return
	}

	logs, total, err := h.logSvc.List(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OKPage(c, logs, total, req.GetPage(), req.GetPageSize())
}
