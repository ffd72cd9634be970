package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger 请求日志中间件
// 5xx 记 Error 并附带 c.Errors 中的内部错误，4xx 记 Warn；健康检查成功只记 Debug
func Logger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		lvl := logLevel(status, path)
		if ce := logger.Check(lvl, requestMessage(status)); ce != nil {
			ce.Write(requestFields(c, path, status, time.Since(start))...)
		}
	}
}

func logLevel(status int, path string) zapcore.Level {
	switch {
	case status >= 500:
		return zapcore.ErrorLevel
	case status >= 400:
		return zapcore.WarnLevel
	case path == "/health":
		return zapcore.DebugLevel
	default:
		return zapcore.InfoLevel
	}
}

func requestMessage(status int) string {
	switch {
	case status >= 500:
		return "请求处理失败"
	case status >= 400:
		return "客户端错误"
	default:
		return "请求完成"
	}
}

func requestFields(c *gin.Context, path string, status int, latency time.Duration) []zap.Field {
	fields := []zap.Field{
		zap.Int("status", status),
		zap.String("method", c.Request.Method),
		zap.String("path", path),
		zap.String("route", c.FullPath()),
		zap.String("query", c.Request.URL.RawQuery),
		zap.String("ip", c.ClientIP()),
		zap.String("request_id", c.GetString(requestIDKey)),
		zap.Duration("latency", latency),
	}
	if cpf := c.GetString("employee_cpf"); cpf != "" {
		fields = append(fields, zap.String("employee_cpf", cpf), zap.Int("level", c.GetInt("level")))
	}
	if len(c.Errors) > 0 {
		fields = append(fields, zap.String("errors", c.Errors.ByType(gin.ErrorTypePrivate).String()))
	}
	return fields
}
