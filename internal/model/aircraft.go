package model

// Aircraft 飞机表，对应 aircraft（聚合根）
type Aircraft struct {
	Code     string `gorm:"type:varchar(50);primaryKey"  json:"code"`
	Model    string `gorm:"type:varchar(100);not null"   json:"model"`
	Category string `gorm:"type:varchar(20);not null"    json:"category"` // commercial | military
	Capacity int    `gorm:"not null"                     json:"capacity"`
	RangeKm  int    `gorm:"column:range_km;not null"     json:"range_km"`
	BaseModel

	// 关联
	Parts  []Part        `gorm:"foreignKey:AircraftCode;references:Code" json:"parts,omitempty"`
	Stages []Stage       `gorm:"foreignKey:AircraftCode;references:Code" json:"stages,omitempty"`
	Tests  []QualityTest `gorm:"foreignKey:AircraftCode;references:Code" json:"tests,omitempty"`
}

// TableName 指定表名
func (Aircraft) TableName() string { return "aircraft" }
