package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"aerocode/backend/internal/service"
	pkgerrors "aerocode/backend/pkg/errors"
	"aerocode/backend/pkg/jwt"
	"aerocode/backend/pkg/redis"
	"aerocode/backend/pkg/response"
)

// SessionChecker 按 CPF 读取员工当前权限等级
type SessionChecker interface {
	SessionLevel(ctx context.Context, cpf string) (int, error)
}

// SessionAuth 会话认证中间件
// 从 Authorization: Bearer <token> 中提取并验证会话 Token，rdb 为 nil 时跳过黑名单检查。
// sessions 非 nil 时以员工当前等级为准，Token 内的等级仅在签发时有效
func SessionAuth(jwtMgr *jwt.Manager, rdb *redis.Client, sessions SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "缺少认证头")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "认证头格式无效")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "Token 无效或已过期")
			c.Abort()
			return
		}

		if rdb != nil {
			revoked, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			if err != nil {
				// Redis 出错时降级放行，错误交给日志中间件
				_ = c.Error(err)
			} else if revoked {
				response.Unauthorized(c, 10002, "会话已注销")
				c.Abort()
				return
			}
		}

		level := claims.Level
		if sessions != nil {
			current, err := sessions.SessionLevel(c.Request.Context(), claims.CPF)
			if err != nil {
				if domainErr, ok := pkgerrors.As(err); ok && domainErr.Kind == pkgerrors.KindUnauthorized {
					response.Unauthorized(c, domainErr.Code, domainErr.Message)
				} else {
					_ = c.Error(err)
					response.InternalError(c)
				}
				c.Abort()
				return
			}
			level = current
		}

		// 将会话信息注入上下文
		c.Set("employee_cpf", claims.CPF)
		c.Set("login", claims.Login)
		c.Set("level", level)
		c.Set("token_jti", claims.ID)
		if claims.ExpiresAt != nil {
			c.Set("token_exp", claims.ExpiresAt.Time)
		}

		c.Next()
	}
}

// Require 能力校验中间件，须挂在 SessionAuth 之后
func Require(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		level, exists := c.Get("level")
		if !exists {
			response.Unauthorized(c, 10002, "未认证")
			c.Abort()
			return
		}

		if lv, ok := level.(int); !ok || !service.Can(lv, action) {
			response.Forbidden(c, 10003, "无权限访问")
			c.Abort()
			return
		}

		c.Next()
	}
}
