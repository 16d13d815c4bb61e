package model

import (
	"time"
)

type TenantProfile struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	UserID      int64     `gorm:"not null;uniqueIndex" json:"user_id"`
	LandlordID  *int64    `gorm:"index" json:"landlord_id,omitempty"` // 所属房东，可能尚未关联
	Occupation  string    `gorm:"size:100" json:"occupation,omitempty"`
	CivilStatus string    `gorm:"size:20" json:"civil_status,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (TenantProfile) TableName() string {
	return "tenant_profiles"
}
