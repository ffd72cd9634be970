package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"aerocode/backend/internal/dto"
	"aerocode/backend/internal/service"
	"aerocode/backend/pkg/response"
)

// StageHandler 生产阶段模块 HTTP 处理器
type StageHandler struct {
	stageSvc    service.StageService
	calendarSvc service.CalendarService
}

// NewStageHandler 创建 StageHandler
func NewStageHandler(stageSvc service.StageService, calendarSvc service.CalendarService) *StageHandler {
	return &StageHandler{stageSvc: stageSvc, calendarSvc: calendarSvc}
}

// ListStages 阶段列表
// GET /api/v1/stages?aircraft_code=xxx
func (h *StageHandler) ListStages(c *gin.Context) {
	var req dto.StageListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c)
		return
	}

	stages, err := h.stageSvc.List(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": stages})
}

// GetStage 阶段详情
// GET /api/v1/stages/:id
func (h *StageHandler) GetStage(c *gin.Context) {
	id, ok := pathID(c, service.ErrStageNotFound)
	if !ok {
		return
	}

	stage, err := h.stageSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, stage)
}

// CreateStage 创建阶段
// POST /api/v1/stages
func (h *StageHandler) CreateStage(c *gin.Context) {
	var req dto.CreateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	stage, err := h.stageSvc.Create(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, stage)
}

// UpdateStage 更新阶段
// PUT /api/v1/stages/:id
func (h *StageHandler) UpdateStage(c *gin.Context) {
	id, ok := pathID(c, service.ErrStageNotFound)
	if !ok {
		return
	}

	var req dto.UpdateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	stage, err := h.stageSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, stage)
}

// DeleteStage 删除阶段
// DELETE /api/v1/stages/:id
func (h *StageHandler) DeleteStage(c *gin.Context) {
	id, ok := pathID(c, service.ErrStageNotFound)
	if !ok {
		return
	}

	if err := h.stageSvc.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}

// StartStage 开始阶段
// PATCH /api/v1/stages/:id/start
func (h *StageHandler) StartStage(c *gin.Context) {
	id, ok := pathID(c, service.ErrStageNotFound)
	if !ok {
		return
	}

	cpf, ok := MustGetCPF(c)
	if !ok {
		return
	}

	stage, err := h.stageSvc.Start(c.Request.Context(), id, cpf)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, stage)
}

// FinishStage 完成阶段
// PATCH /api/v1/stages/:id/finish
func (h *StageHandler) FinishStage(c *gin.Context) {
	id, ok := pathID(c, service.ErrStageNotFound)
	if !ok {
		return
	}

	cpf, ok := MustGetCPF(c)
	if !ok {
		return
	}

	stage, err := h.stageSvc.Finish(c.Request.Context(), id, cpf)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, stage)
}

// AssignEmployee 分配员工到阶段
// POST /api/v1/stages/:id/employees
func (h *StageHandler) AssignEmployee(c *gin.Context) {
	id, ok := pathID(c, service.ErrStageNotFound)
	if !ok {
		return
	}

	var req dto.AssignEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	stage, err := h.stageSvc.AssignEmployee(c.Request.Context(), id, req.CPF)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, stage)
}

// UnassignEmployee 移除阶段的员工
// DELETE /api/v1/stages/:id/employees/:cpf
func (h *StageHandler) UnassignEmployee(c *gin.Context) {
	id, ok := pathID(c, service.ErrStageNotFound)
	if !ok {
		return
	}

	if err := h.stageSvc.UnassignEmployee(c.Request.Context(), id, c.Param("cpf")); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}

// Calendar 阶段期限日历（ICS）
// GET /api/v1/stages/calendar?aircraft_code=xxx
func (h *StageHandler) Calendar(c *gin.Context) {
	buf, filename, err := h.calendarSvc.StageCalendar(c.Request.Context(), c.Query("aircraft_code"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}
