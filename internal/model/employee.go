package model

// Employee 员工表，对应 employees
type Employee struct {
	CPF          string `gorm:"type:varchar(14);primaryKey"  json:"cpf"`
	Name         string `gorm:"type:varchar(100);not null"   json:"name"`
	Login        string `gorm:"type:varchar(50);not null"    json:"login"`
	PasswordHash string `gorm:"type:varchar(255);not null"   json:"-"`
	Level        int    `gorm:"type:smallint;not null"       json:"level"` // 1 管理员 | 2 工程师 | 3 操作员
	BaseModel
}

// TableName 指定表名
func (Employee) TableName() string { return "employees" }

// ValidLevel 权限等级是否合法
func ValidLevel(level int) bool {
	return level == LevelAdmin || level == LevelEngineer || level == LevelOperator
}
