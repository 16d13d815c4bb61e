package model

import (
	"encoding/json"
	"time"

	"github.com/hxlane/rental_go_server/internal/pkg/channel"
)

type Plan struct {
	ID                  int64     `gorm:"primaryKey" json:"id"`
	Name                string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description         string    `gorm:"type:text" json:"description,omitempty"`
	AllowedProperties   *int      `json:"allowed_properties,omitempty"` // nil = 不限
	AllowedUnits        *int      `json:"allowed_units,omitempty"`      // nil = 不限
	EnableNotifications string    `gorm:"type:text" json:"enable_notifications"` // JSON 数组，如 ["email","telegram"]
	Price               float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	DurationDays        *int      `json:"duration_days,omitempty"` // nil = 不限期
	IsDefault           bool      `gorm:"default:false;index" json:"is_default"`
	IsActive            bool      `gorm:"default:true" json:"is_active"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (Plan) TableName() string {
	return "plans"
}

// Channels 解析套餐启用的通知渠道；历史数据可能为空或非法 JSON，统一按空处理
func (p *Plan) Channels() []channel.Channel {
	if p.EnableNotifications == "" {
		return nil
	}

	var names []string
	if err := json.Unmarshal([]byte(p.EnableNotifications), &names); err != nil {
		return nil
	}

	channels := make([]channel.Channel, 0, len(names))
	for _, name := range names {
		ch := channel.Channel(name)
		if channel.Valid(ch) {
			channels = append(channels, ch)
		}
	}
	return channels
}

// SetChannels 序列化渠道列表写入存储字段
func (p *Plan) SetChannels(channels []channel.Channel) {
	if len(channels) == 0 {
		p.EnableNotifications = "[]"
		return
	}
	data, _ := json.Marshal(channels)
	p.EnableNotifications = string(data)
}
