package handler

import (
	"github.com/gin-gonic/gin"

	"aerocode/backend/internal/dto"
	"aerocode/backend/internal/service"
	"aerocode/backend/pkg/response"
)

// EmployeeHandler 员工模块 HTTP 处理器
type EmployeeHandler struct {
	employeeSvc service.EmployeeService
}

// NewEmployeeHandler 创建 EmployeeHandler
func NewEmployeeHandler(employeeSvc service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeSvc: employeeSvc}
}

// ListEmployees 员工列表
// GET /api/v1/employees
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	list, err := h.employeeSvc.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// GetEmployee 员工详情
// GET /api/v1/employees/:cpf
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	employee, err := h.employeeSvc.GetByCPF(c.Request.Context(), c.Param("cpf"))
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, employee)
}

// CreateEmployee 创建员工
// POST /api/v1/employees
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	employee, err := h.employeeSvc.Create(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, employee)
}

// UpdateEmployee 更新员工
// PUT /api/v1/employees/:cpf
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	var req dto.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	employee, err := h.employeeSvc.Update(c.Request.Context(), c.Param("cpf"), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, employee)
}

// DeleteEmployee 删除员工
// DELETE /api/v1/employees/:cpf
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	callerCPF, ok := MustGetCPF(c)
	if !ok {
		return
	}

	if err := h.employeeSvc.Delete(c.Request.Context(), c.Param("cpf"), callerCPF); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}
