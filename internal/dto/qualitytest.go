package dto

// ── 质量测试模块 DTO ──

// CreateQualityTestRequest 创建测试记录请求，performed_on 格式 YYYY-MM-DD
type CreateQualityTestRequest struct {
	Type         string `json:"type"          binding:"required,max=50"`
	Description  string `json:"description"   binding:"required"`
	Result       string `json:"result"        binding:"required,oneof=approved rejected"`
	PerformedOn  string `json:"performed_on"  binding:"required"`
	EmployeeCPF  string `json:"employee_cpf"  binding:"required,max=14"`
	AircraftCode string `json:"aircraft_code" binding:"required,max=50"`
}

// UpdateQualityTestRequest 更新测试记录请求
type UpdateQualityTestRequest struct {
	Type         *string `json:"type"          binding:"omitempty,min=1,max=50"`
	Description  *string `json:"description"   binding:"omitempty,min=1"`
	Result       *string `json:"result"        binding:"omitempty,oneof=approved rejected"`
	PerformedOn  *string `json:"performed_on"`
	EmployeeCPF  *string `json:"employee_cpf"  binding:"omitempty,min=1,max=14"`
	AircraftCode *string `json:"aircraft_code" binding:"omitempty,min=1,max=50"`
}

// QualityTestListRequest 测试列表查询参数
type QualityTestListRequest struct {
	AircraftCode string `form:"aircraft_code"`
}

// QualityTestResponse 测试记录响应
type QualityTestResponse struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Description  string `json:"description"`
	Result       string `json:"result"`
	PerformedOn  string `json:"performed_on"`
	EmployeeCPF  string `json:"employee_cpf"`
	AircraftCode string `json:"aircraft_code"`
}
