package handler

import (
	"github.com/gin-gonic/gin"

	"aerocode/backend/internal/dto"
	"aerocode/backend/internal/service"
	"aerocode/backend/pkg/response"
)

// QualityTestHandler 质量测试模块 HTTP 处理器
type QualityTestHandler struct {
	testSvc service.QualityTestService
}

// NewQualityTestHandler 创建 QualityTestHandler
func NewQualityTestHandler(testSvc service.QualityTestService) *QualityTestHandler {
	return &QualityTestHandler{testSvc: testSvc}
}

// ListTests 测试记录列表
// GET /api/v1/tests?aircraft_code=xxx
func (h *QualityTestHandler) ListTests(c *gin.Context) {
	var req dto.QualityTestListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c)
		return
	}

	tests, err := h.testSvc.List(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": tests})
}

// GetTest 测试记录详情
// GET /api/v1/tests/:id
func (h *QualityTestHandler) GetTest(c *gin.Context) {
	id, ok := pathID(c, service.ErrTestNotFound)
	if !ok {
		return
	}

	test, err := h.testSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, test)
}

// CreateTest 创建测试记录
// POST /api/v1/tests
func (h *QualityTestHandler) CreateTest(c *gin.Context) {
	var req dto.CreateQualityTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	test, err := h.testSvc.Create(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, test)
}

// UpdateTest 更新测试记录
// PUT /api/v1/tests/:id
func (h *QualityTestHandler) UpdateTest(c *gin.Context) {
	id, ok := pathID(c, service.ErrTestNotFound)
	if !ok {
		return
	}

	var req dto.UpdateQualityTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	test, err := h.testSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, test)
}

// DeleteTest 删除测试记录
// DELETE /api/v1/tests/:id
func (h *QualityTestHandler) DeleteTest(c *gin.Context) {
	id, ok := pathID(c, service.ErrTestNotFound)
	if !ok {
		return
	}

	if err := h.testSvc.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}
