package dto

// ── 员工模块 DTO ──

// CreateEmployeeRequest 创建员工请求
type CreateEmployeeRequest struct {
	CPF      string `json:"cpf"      binding:"required,max=14"`
	Name     string `json:"name"     binding:"required,max=100"`
	Login    string `json:"login"    binding:"required,max=50"`
	Password string `json:"password" binding:"required,min=3,max=72"`
	Level    int    `json:"level"    binding:"required,oneof=1 2 3"`
}

// UpdateEmployeeRequest 更新员工请求（CPF 不可修改）
type UpdateEmployeeRequest struct {
	Name     *string `json:"name"     binding:"omitempty,min=1,max=100"`
	Login    *string `json:"login"    binding:"omitempty,min=1,max=50"`
	Password *string `json:"password" binding:"omitempty,min=3,max=72"`
	Level    *int    `json:"level"    binding:"omitempty,oneof=1 2 3"`
}

// EmployeeResponse 员工信息响应（不含凭据）
type EmployeeResponse struct {
	CPF   string `json:"cpf"`
	Name  string `json:"name"`
	Login string `json:"login"`
	Level int    `json:"level"`
}

// ── 认证 ──

// LoginRequest 登录请求
type LoginRequest struct {
	Login    string `json:"login"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录成功响应
type LoginResponse struct {
	Token     string           `json:"token"`
	ExpiresIn int              `json:"expires_in"` // 秒
	Employee  EmployeeResponse `json:"employee"`
}

// MeResponse 当前会话信息，capabilities 供客户端控制可见视图
type MeResponse struct {
	Employee     EmployeeResponse `json:"employee"`
	Capabilities []string         `json:"capabilities"`
}
