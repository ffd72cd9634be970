package dto

// ── 生产阶段模块 DTO ──

// CreateStageRequest 创建阶段请求，deadline 格式 YYYY-MM-DD
type CreateStageRequest struct {
	Name         string `json:"name"          binding:"required,max=100"`
	Deadline     string `json:"deadline"      binding:"required"`
	AircraftCode string `json:"aircraft_code" binding:"required,max=50"`
}

// UpdateStageRequest 更新阶段请求
type UpdateStageRequest struct {
	Name         *string `json:"name"          binding:"omitempty,min=1,max=100"`
	Deadline     *string `json:"deadline"`
	AircraftCode *string `json:"aircraft_code" binding:"omitempty,min=1,max=50"`
}

// StageListRequest 阶段列表查询参数
type StageListRequest struct {
	AircraftCode string `form:"aircraft_code"`
}

// AssignEmployeeRequest 分配员工请求
type AssignEmployeeRequest struct {
	CPF string `json:"cpf" binding:"required"`
}

// StageResponse 阶段信息响应，employees 为已分配员工 CPF 列表
type StageResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Deadline     string   `json:"deadline"`
	Status       string   `json:"status"`
	AircraftCode string   `json:"aircraft_code"`
	Employees    []string `json:"employees"`
}
