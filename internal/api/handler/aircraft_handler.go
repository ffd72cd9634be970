package handler

import (
	"github.com/gin-gonic/gin"

	"aerocode/backend/internal/dto"
	"aerocode/backend/internal/service"
	"aerocode/backend/pkg/response"
)

// AircraftHandler 飞机模块 HTTP 处理器
type AircraftHandler struct {
	aircraftSvc service.AircraftService
}

// NewAircraftHandler 创建 AircraftHandler
func NewAircraftHandler(aircraftSvc service.AircraftService) *AircraftHandler {
	return &AircraftHandler{aircraftSvc: aircraftSvc}
}

// ListAircraft 飞机列表（含零件、阶段、测试）
// GET /api/v1/aircraft
func (h *AircraftHandler) ListAircraft(c *gin.Context) {
	list, err := h.aircraftSvc.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// GetAircraft 飞机详情
// GET /api/v1/aircraft/:code
func (h *AircraftHandler) GetAircraft(c *gin.Context) {
	aircraft, err := h.aircraftSvc.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, aircraft)
}

// CreateAircraft 创建飞机
// POST /api/v1/aircraft
func (h *AircraftHandler) CreateAircraft(c *gin.Context) {
	var req dto.CreateAircraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	aircraft, err := h.aircraftSvc.Create(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, aircraft)
}

// UpdateAircraft 更新飞机
// PUT /api/v1/aircraft/:code
func (h *AircraftHandler) UpdateAircraft(c *gin.Context) {
	var req dto.UpdateAircraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	aircraft, err := h.aircraftSvc.Update(c.Request.Context(), c.Param("code"), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, aircraft)
}

// DeleteAircraft 删除飞机，零件、阶段、测试与报告级联删除
// DELETE /api/v1/aircraft/:code
func (h *AircraftHandler) DeleteAircraft(c *gin.Context) {
	if err := h.aircraftSvc.Delete(c.Request.Context(), c.Param("code")); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}
