package model

import (
	"time"
)

// 用户角色
const (
	RoleAdmin    = "admin"
	RoleLandlord = "landlord"
	RoleTenant   = "tenant"
)

type User struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	FirstName     string    `gorm:"size:50;not null" json:"first_name"`
	MiddleName    *string   `gorm:"size:50" json:"middle_name,omitempty"`
	LastName      string    `gorm:"size:50;not null" json:"last_name"`
	Email         string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash  string    `gorm:"size:255;not null" json:"-"`
	Role          string    `gorm:"size:20;default:tenant;index" json:"role"` // admin, landlord, tenant
	ContactNumber string    `gorm:"size:30" json:"contact_number,omitempty"`
	TelegramID    *string   `gorm:"column:telegram_id;size:50" json:"-"`
	MessengerPSID *string   `gorm:"column:messenger_psid;size:100" json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// HasTelegram 是否已绑定 Telegram
func (u *User) HasTelegram() bool {
	return u.TelegramID != nil && *u.TelegramID != ""
}

// HasMessenger 是否已绑定 Messenger
func (u *User) HasMessenger() bool {
	return u.MessengerPSID != nil && *u.MessengerPSID != ""
}
