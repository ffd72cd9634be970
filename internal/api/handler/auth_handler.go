package handler

import (
	"github.com/gin-gonic/gin"

	"aerocode/backend/internal/dto"
	"aerocode/backend/internal/service"
	"aerocode/backend/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login 员工登录
// POST /api/v1/employees/auth
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}

// Logout 注销当前会话
// POST /api/v1/employees/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	jti, expiresAt := sessionToken(c)

	if err := h.authSvc.Logout(c.Request.Context(), jti, expiresAt); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}

// Me 当前员工及其能力列表
// GET /api/v1/employees/me
func (h *AuthHandler) Me(c *gin.Context) {
	cpf, ok := MustGetCPF(c)
	if !ok {
		return
	}

	result, err := h.authSvc.Me(c.Request.Context(), cpf)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}
