package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"aerocode/backend/internal/model"
	"aerocode/backend/pkg/database"
)

// MetricRecorder 请求指标持久化
type MetricRecorder interface {
	Record(ctx context.Context, m *model.RequestMetric) error
}

const (
	metricsPathPrefix = "/api/v1/metrics"
	recordTimeout     = 3 * time.Second

	// 未匹配路由统一归入该标签，避免任意路径写入指标表
	unmatchedEndpoint = "unmatched"
)

// Metrics 请求指标中间件
// 记录墙钟耗时与存储层耗时（由 gorm 回调累计到请求上下文），异步落库；指标接口本身不记录
func Metrics(recorder MetricRecorder, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, metricsPathPrefix) {
			c.Next()
			return
		}

		ctx, timer := database.WithStoreTimer(c.Request.Context())
		c.Request = c.Request.WithContext(ctx)
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		calls, storeTime := timer.Snapshot()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = unmatchedEndpoint
		}
		metric := &model.RequestMetric{
			Endpoint:   endpoint,
			Method:     c.Request.Method,
			StatusCode: c.Writer.Status(),
			LatencyMs:  durationMs(latency),
			StoreMs:    durationMs(storeTime),
			StoreCalls: calls,
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
			defer cancel()
			if err := recorder.Record(ctx, metric); err != nil {
				logger.Warn("请求指标写入失败", zap.String("endpoint", metric.Endpoint), zap.Error(err))
			}
		}()
	}
}

func durationMs(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
