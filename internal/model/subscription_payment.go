package model

import (
	"time"
)

// 订阅付款审核状态
const (
	PaymentPending  = "pending"
	PaymentApproved = "approved"
	PaymentRejected = "rejected"
)

type SubscriptionPayment struct {
	ID             int64      `gorm:"primaryKey" json:"id"`
	SubscriptionID int64      `gorm:"not null;index" json:"subscription_id"`
	UserID         int64      `gorm:"not null;index" json:"user_id"`
	Amount         float64    `gorm:"type:decimal(10,2);not null" json:"amount"`
	Method         string     `gorm:"size:30" json:"method,omitempty"` // gcash, bank_transfer, cash
	Reference      string     `gorm:"size:100" json:"reference,omitempty"`
	Status         string     `gorm:"size:20;default:pending;index" json:"status"`
	ReviewedBy     *int64     `json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (SubscriptionPayment) TableName() string {
	return "subscription_payments"
}
