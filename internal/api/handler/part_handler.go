package handler

import (
	"github.com/gin-gonic/gin"

	"aerocode/backend/internal/dto"
	"aerocode/backend/internal/service"
	"aerocode/backend/pkg/response"
)

// PartHandler 零件模块 HTTP 处理器
type PartHandler struct {
	partSvc service.PartService
}

// NewPartHandler 创建 PartHandler
func NewPartHandler(partSvc service.PartService) *PartHandler {
	return &PartHandler{partSvc: partSvc}
}

// ListParts 零件列表
// GET /api/v1/parts?aircraft_code=xxx
func (h *PartHandler) ListParts(c *gin.Context) {
	var req dto.PartListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c)
		return
	}

	parts, err := h.partSvc.List(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": parts})
}

// GetPart 零件详情
// GET /api/v1/parts/:id
func (h *PartHandler) GetPart(c *gin.Context) {
	id, ok := pathID(c, service.ErrPartNotFound)
	if !ok {
		return
	}

	part, err := h.partSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, part)
}

// CreatePart 创建零件
// POST /api/v1/parts
func (h *PartHandler) CreatePart(c *gin.Context) {
	var req dto.CreatePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	part, err := h.partSvc.Create(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, part)
}

// UpdatePart 更新零件
// PUT /api/v1/parts/:id
func (h *PartHandler) UpdatePart(c *gin.Context) {
	id, ok := pathID(c, service.ErrPartNotFound)
	if !ok {
		return
	}

	var req dto.UpdatePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	part, err := h.partSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, part)
}

// DeletePart 删除零件
// DELETE /api/v1/parts/:id
func (h *PartHandler) DeletePart(c *gin.Context) {
	id, ok := pathID(c, service.ErrPartNotFound)
	if !ok {
		return
	}

	if err := h.partSvc.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}

// AdvanceStatus 推进零件状态
// PATCH /api/v1/parts/:id/advance-status
func (h *PartHandler) AdvanceStatus(c *gin.Context) {
	id, ok := pathID(c, service.ErrPartNotFound)
	if !ok {
		return
	}

	cpf, ok := MustGetCPF(c)
	if !ok {
		return
	}

	part, err := h.partSvc.AdvanceStatus(c.Request.Context(), id, cpf)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, part)
}
