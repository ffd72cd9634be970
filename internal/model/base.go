package model

import "time"

// BaseModel 通用时间戳字段（业务实体嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// DateLayout 业务日期格式（期限、测试日期、交付日期）
const DateLayout = "2006-01-02"

// ── 枚举取值 ──

const (
	CategoryCommercial = "commercial"
	CategoryMilitary   = "military"

	OriginDomestic = "domestic"
	OriginImported = "imported"

	PartInProduction = "in_production"
	PartInTransit    = "in_transit"
	PartReady        = "ready"

	StagePending    = "pending"
	StageInProgress = "in_progress"
	StageDone       = "done"

	ResultApproved = "approved"
	ResultRejected = "rejected"

	LevelAdmin    = 1
	LevelEngineer = 2
	LevelOperator = 3
)
