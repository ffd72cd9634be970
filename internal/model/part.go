package model

// Part 零件表，对应 parts，(name, aircraft_code) 唯一
type Part struct {
	PartID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"part_id"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	Origin       string `gorm:"type:varchar(20);not null"                      json:"origin"`   // domestic | imported
	Supplier     string `gorm:"type:varchar(100);not null"                     json:"supplier"`
	Status       string `gorm:"type:varchar(20);not null;default:'in_production'" json:"status"` // in_production → in_transit → ready
	AircraftCode string `gorm:"type:varchar(50);not null"                      json:"aircraft_code"`
	BaseModel
}

func (Part) TableName() string { return "parts" }

var partNext = map[string]string{
	PartInProduction: PartInTransit,
	PartInTransit:    PartReady,
}

// NextPartStatus 返回零件的下一状态，终态返回 false
func NextPartStatus(current string) (string, bool) {
	next, ok := partNext[current]
	return next, ok
}
