package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aerocode/backend/pkg/response"
)

// BodyLimit 请求体大小限制中间件
// 声明长度超限时直接返回 413；未声明长度的请求读取超限后绑定失败，按参数错误返回
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 {
			c.Next()
			return
		}
		if c.Request.ContentLength > maxBytes {
			response.PayloadTooLarge(c, 10005, "请求体过大")
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()
	}
}
