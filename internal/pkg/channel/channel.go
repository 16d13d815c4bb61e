package channel

import (
	"context"
)

// Channel 通知渠道标识
type Channel string

const (
	Email     Channel = "email"
	Telegram  Channel = "telegram"
	Messenger Channel = "messenger"
)

// All 全部已知渠道
func All() []Channel {
	return []Channel{Email, Telegram, Messenger}
}

// Valid 是否为已知渠道
func Valid(ch Channel) bool {
	switch ch {
	case Email, Telegram, Messenger:
		return true
	}
	return false
}

// Sender 单一渠道的发送器。实现必须无状态，不负责审计与去重
type Sender interface {
	Send(ctx context.Context, dest, subject, message string) error
}
