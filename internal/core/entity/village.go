package entity

import "time"

// Village is an administrative village, unique by (cell, village)
type Village struct {
	ID           string    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Province     string    `gorm:"column:province"                                          json:"province"`
	District     string    `gorm:"column:district"                                          json:"district"`
	Sector       string    `gorm:"column:sector"                                            json:"sector"`
	Cell         string    `gorm:"column:cell"                                              json:"cell"`
	Village      string    `gorm:"column:village"                                           json:"village"`
	AboutVillage *string   `gorm:"column:aboutVillage"                                      json:"aboutVillage,omitempty"`
	CreatedAt    time.Time `gorm:"column:createdAt"                                         json:"createdAt"`
	UpdatedAt    time.Time `gorm:"column:updatedAt"                                         json:"updatedAt"`
}

// TableName implements gorm's Tabler
func (Village) TableName() string { return "villages" }
