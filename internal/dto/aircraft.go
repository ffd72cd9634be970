package dto

// ── 飞机模块 DTO ──

// CreateAircraftRequest 创建飞机请求
type CreateAircraftRequest struct {
	Code     string `json:"code"     binding:"required,max=50"`
	Model    string `json:"model"    binding:"required,max=100"`
	Category string `json:"category" binding:"required,oneof=commercial military"`
	Capacity int    `json:"capacity" binding:"required,min=1"`
	RangeKm  int    `json:"range_km" binding:"required,min=1"`
}

// UpdateAircraftRequest 更新飞机请求（编码不可修改）
type UpdateAircraftRequest struct {
	Model    *string `json:"model"    binding:"omitempty,min=1,max=100"`
	Category *string `json:"category" binding:"omitempty,oneof=commercial military"`
	Capacity *int    `json:"capacity" binding:"omitempty,min=1"`
	RangeKm  *int    `json:"range_km" binding:"omitempty,min=1"`
}

// AircraftResponse 飞机信息响应（列表与详情均带关联）
type AircraftResponse struct {
	Code      string                `json:"code"`
	Model     string                `json:"model"`
	Category  string                `json:"category"`
	Capacity  int                   `json:"capacity"`
	RangeKm   int                   `json:"range_km"`
	Parts     []PartResponse        `json:"parts"`
	Stages    []StageResponse       `json:"stages"`
	Tests     []QualityTestResponse `json:"tests"`
	CreatedAt string                `json:"created_at"`
	UpdatedAt string                `json:"updated_at"`
}
