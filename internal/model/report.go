package model

import "time"

// Report 交付报告表，对应 reports（只写一次，无更新）
type Report struct {
	ReportID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"report_id"`
	Client       string    `gorm:"type:varchar(150);not null"                     json:"client"`
	DeliveryDate time.Time `gorm:"type:date;not null"                             json:"delivery_date"`
	AircraftCode string    `gorm:"type:varchar(50);not null"                      json:"aircraft_code"`
	Content      string    `gorm:"type:text;not null"                             json:"content"`
	GeneratedAt  time.Time `gorm:"not null"                                       json:"generated_at"`
}

func (Report) TableName() string { return "reports" }
