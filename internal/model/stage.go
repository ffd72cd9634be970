package model

import "time"

// Stage 生产阶段表，对应 stages，(name, aircraft_code) 唯一
type Stage struct {
	StageID      string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"stage_id"`
	Name         string    `gorm:"type:varchar(100);not null"                     json:"name"`
	Deadline     time.Time `gorm:"type:date;not null"                             json:"deadline"`
	Status       string    `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"` // pending → in_progress → done
	AircraftCode string    `gorm:"type:varchar(50);not null"                      json:"aircraft_code"`
	BaseModel

	// 关联
	Assignments []StageAssignment `gorm:"foreignKey:StageID;references:StageID" json:"assignments,omitempty"`
}

func (Stage) TableName() string { return "stages" }

// StageAssignment 阶段-员工关联表，对应 stage_assignments
type StageAssignment struct {
	StageID     string    `gorm:"type:uuid;primaryKey"               json:"stage_id"`
	EmployeeCPF string    `gorm:"type:varchar(14);primaryKey"        json:"employee_cpf"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	Employee *Employee `gorm:"foreignKey:EmployeeCPF;references:CPF" json:"employee,omitempty"`
}

func (StageAssignment) TableName() string { return "stage_assignments" }

// CanStart 仅 pending 可开始
func (s *Stage) CanStart() bool { return s.Status == StagePending }

// CanFinish 仅 in_progress 可完成
func (s *Stage) CanFinish() bool { return s.Status == StageInProgress }
