package dto

// ── 零件模块 DTO ──

// CreatePartRequest 创建零件请求（状态固定为 in_production）
type CreatePartRequest struct {
	Name         string `json:"name"          binding:"required,max=100"`
	Origin       string `json:"origin"        binding:"required,oneof=domestic imported"`
	Supplier     string `json:"supplier"      binding:"required,max=100"`
	AircraftCode string `json:"aircraft_code" binding:"required,max=50"`
}

// UpdatePartRequest 更新零件请求，状态只能通过 advance-status 推进
type UpdatePartRequest struct {
	Name         *string `json:"name"          binding:"omitempty,min=1,max=100"`
	Origin       *string `json:"origin"        binding:"omitempty,oneof=domestic imported"`
	Supplier     *string `json:"supplier"      binding:"omitempty,min=1,max=100"`
	AircraftCode *string `json:"aircraft_code" binding:"omitempty,min=1,max=50"`
}

// PartListRequest 零件列表查询参数
type PartListRequest struct {
	AircraftCode string `form:"aircraft_code"`
}

// PartResponse 零件信息响应
type PartResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Origin       string `json:"origin"`
	Supplier     string `json:"supplier"`
	Status       string `json:"status"`
	AircraftCode string `json:"aircraft_code"`
}
