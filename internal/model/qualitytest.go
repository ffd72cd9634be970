package model

import "time"

// QualityTest 质量测试表，对应 quality_tests
type QualityTest struct {
	TestID       string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"test_id"`
	Type         string    `gorm:"type:varchar(50);not null"                      json:"type"`
	Description  string    `gorm:"type:text;not null"                             json:"description"`
	Result       string    `gorm:"type:varchar(20);not null"                      json:"result"` // approved | rejected
	PerformedOn  time.Time `gorm:"type:date;not null"                             json:"performed_on"`
	EmployeeCPF  string    `gorm:"type:varchar(14);not null"                      json:"employee_cpf"`
	AircraftCode string    `gorm:"type:varchar(50);not null"                      json:"aircraft_code"`
	BaseModel

	// 关联
	Employee *Employee `gorm:"foreignKey:EmployeeCPF;references:CPF" json:"employee,omitempty"`
}

func (QualityTest) TableName() string { return "quality_tests" }
