package model

import (
	"time"
)

// 通知投递状态
const (
	NotificationQueued = "queued"
	NotificationSent   = "sent"
	NotificationFailed = "failed"
)

// Notification 单次渠道投递的审计记录，只追加不更新
type Notification struct {
	ID        int64      `gorm:"primaryKey" json:"id"`
	UserID    int64      `gorm:"not null;index" json:"user_id"`
	Channel   string     `gorm:"size:20;not null" json:"channel"`
	Event     string     `gorm:"size:100;not null" json:"event"`
	Payload   string     `gorm:"type:text" json:"payload"` // JSON：subject/message，失败时含 error
	Status    string     `gorm:"size:20;default:queued;index" json:"status"`
	Attempts  int        `gorm:"default:0" json:"attempts"`
	SentAt    *time.Time `json:"sent_at,omitempty"`
	CreatedAt time.Time  `gorm:"index" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
