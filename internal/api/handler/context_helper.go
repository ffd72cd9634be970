package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"aerocode/backend/pkg/response"
)

// MustGetCPF 从 Gin 上下文中提取当前会话的员工 CPF。
// SessionAuth 未注入时写入 401 响应并返回 false，调用方应直接 return。
func MustGetCPF(c *gin.Context) (string, bool) {
	v, exists := c.Get("employee_cpf")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// sessionToken 当前会话 Token 的 jti 与过期时间，注销时使用
func sessionToken(c *gin.Context) (string, time.Time) {
	jti := c.GetString("token_jti")
	exp, _ := c.Get("token_exp")
	expiresAt, _ := exp.(time.Time)
	return jti, expiresAt
}

// pathID 读取路径参数 :id 并规范为标准 UUID 文本
// 格式非法时按实体不存在返回，调用方应直接 return
func pathID(c *gin.Context, notFound error) (string, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handleError(c, notFound)
		return "", false
	}
	return id.String(), true
}
