package model

import (
	"time"
)

// 订阅状态
const (
	SubscriptionPending  = "pending"
	SubscriptionActive   = "active"
	SubscriptionExpired  = "expired"
	SubscriptionPaused   = "paused"
	SubscriptionCanceled = "canceled"
)

type Subscription struct {
	ID        int64      `gorm:"primaryKey" json:"id"`
	UserID    int64      `gorm:"not null;index" json:"user_id"`
	PlanID    int64      `gorm:"not null;index" json:"plan_id"`
	Status    string     `gorm:"size:20;default:pending;index" json:"status"`
	StartedAt *time.Time `json:"started_at,omitempty"`
	EndsAt    *time.Time `gorm:"index" json:"ends_at,omitempty"` // nil = 不限期
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
