package model

import (
	"time"
)

type Property struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	OwnerID   int64     `gorm:"not null;index" json:"owner_id"` // 房东用户 ID
	Name      string    `gorm:"size:100;not null" json:"name"`
	Address   string    `gorm:"size:255" json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Property) TableName() string {
	return "properties"
}

type Unit struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	PropertyID  int64     `gorm:"not null;index" json:"property_id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	RentAmount  float64   `gorm:"type:decimal(10,2)" json:"rent_amount"`
	IsAvailable bool      `gorm:"default:true" json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Unit) TableName() string {
	return "units"
}
