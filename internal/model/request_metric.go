package model

import "time"

// RequestMetric 请求指标表，对应 request_metrics
type RequestMetric struct {
	MetricID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"metric_id"`
	Endpoint   string    `gorm:"type:varchar(200);not null"                     json:"endpoint"`
	Method     string    `gorm:"type:varchar(10);not null"                      json:"method"`
	StatusCode int       `gorm:"not null"                                       json:"status_code"`
	LatencyMs  float64   `gorm:"not null"                                       json:"latency_ms"`
	StoreMs    float64   `gorm:"not null;default:0"                             json:"store_ms"`
	StoreCalls int       `gorm:"not null;default:0"                             json:"store_calls"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

func (RequestMetric) TableName() string { return "request_metrics" }
