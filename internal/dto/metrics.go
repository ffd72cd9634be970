package dto

// ── 指标与审计 DTO ──

// MetricListRequest 指标列表查询参数
type MetricListRequest struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=1000"`
}

// GetLimit 默认 100 条
func (r *MetricListRequest) GetLimit() int {
	if r.Limit <= 0 {
		return 100
	}
	return r.Limit
}

// MetricResponse 单条请求指标
type MetricResponse struct {
	Endpoint   string  `json:"endpoint"`
	Method     string  `json:"method"`
	StatusCode int     `json:"status_code"`
	LatencyMs  float64 `json:"latency_ms"`
	StoreMs    float64 `json:"store_ms"`
	StoreCalls int     `json:"store_calls"`
	CreatedAt  string  `json:"created_at"`
}

// EndpointSummary 单个接口的聚合
type EndpointSummary struct {
	Endpoint     string  `json:"endpoint"`
	Method       string  `json:"method"`
	Count        int     `json:"count"`
	AvgLatencyMs float64 `json:"avg_latency_ms"`
	AvgStoreMs   float64 `json:"avg_store_ms"`
}

// MetricSummaryResponse 指标汇总
type MetricSummaryResponse struct {
	Count         int               `json:"count"`
	AvgLatencyMs  float64           `json:"avg_latency_ms"`
	MinLatencyMs  float64           `json:"min_latency_ms"`
	MaxLatencyMs  float64           `json:"max_latency_ms"`
	AvgStoreMs    float64           `json:"avg_store_ms"`
	AvgStoreCalls float64           `json:"avg_store_calls"`
	Endpoints     []EndpointSummary `json:"endpoints"`
}

// MetricCleanupRequest 清理参数，默认保留 7 天
type MetricCleanupRequest struct {
	Days int `form:"days" binding:"omitempty,min=1"`
}

// GetDays 默认 7 天
func (r *MetricCleanupRequest) GetDays() int {
	if r.Days <= 0 {
		return 7
	}
	return r.Days
}

// MetricCleanupResponse 清理结果
type MetricCleanupResponse struct {
	Deleted int64 `json:"deleted"`
}

// StatusLogListRequest 状态变更记录查询参数
type StatusLogListRequest struct {
	EntityType string `form:"entity_type" binding:"omitempty,oneof=part stage"`
	EntityID   string `form:"entity_id"   binding:"omitempty,uuid"`
	PaginationRequest
}

// StatusLogResponse 状态变更记录
type StatusLogResponse struct {
	ID         string `json:"id"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	FromStatus string `json:"from_status"`
	ToStatus   string `json:"to_status"`
	ChangedBy  string `json:"changed_by,omitempty"`
	CreatedAt  string `json:"created_at"`
}
