package model

import "time"

// 状态变更实体类型
const (
	EntityPart  = "part"
	EntityStage = "stage"
)

// StatusChangeLog 状态变更记录表，对应 status_change_logs（纯审计日志）
type StatusChangeLog struct {
	LogID      string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"log_id"`
	EntityType string    `gorm:"type:varchar(10);not null"                      json:"entity_type"`
	EntityID   string    `gorm:"type:uuid;not null"                             json:"entity_id"`
	FromStatus string    `gorm:"type:varchar(20);not null"                      json:"from_status"`
	ToStatus   string    `gorm:"type:varchar(20);not null"                      json:"to_status"`
	ChangedBy  *string   `gorm:"type:varchar(14)"                               json:"changed_by,omitempty"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

func (StatusChangeLog) TableName() string { return "status_change_logs" }
