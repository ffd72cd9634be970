package dto

// ── 报告模块 DTO ──

// GenerateReportRequest 生成报告请求
type GenerateReportRequest struct {
	Client       string `json:"client"        binding:"required,max=150"`
	DeliveryDate string `json:"delivery_date" binding:"required"`
	AircraftCode string `json:"aircraft_code" binding:"required"`
}

// ReportListRequest 报告列表查询参数
type ReportListRequest struct {
	AircraftCode string `form:"aircraft_code"`
}

// ReportResponse 报告响应
type ReportResponse struct {
	ID           string `json:"id"`
	Client       string `json:"client"`
	DeliveryDate string `json:"delivery_date"`
	AircraftCode string `json:"aircraft_code"`
	Content      string `json:"content"`
	GeneratedAt  string `json:"generated_at"`
}
