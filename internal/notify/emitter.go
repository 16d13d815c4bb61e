package notify

import (
	"context"
	"log"

	"github.com/hxlane/rental_go_server/internal/pkg/queue"
)

// Emitter 业务侧抛出通知事件的入口。
// 调用是 fire-and-forget 的：入队失败只记日志，绝不影响触发它的业务事务
type Emitter struct {
	queue *queue.Queue
}

func NewEmitter(q *queue.Queue) *Emitter {
	return &Emitter{queue: q}
}

// Raise 抛出通知事件。可安全重复调用，下游抑制窗口负责去重
func (e *Emitter) Raise(ctx context.Context, userID int64, subject, message string) {
	evt := &queue.NotificationEvent{
		UserID:  userID,
		Subject: subject,
		Message: message,
	}

	if err := e.queue.Push(ctx, evt); err != nil {
		log.Printf("Failed to enqueue notification for user %d: %v", userID, err)
	}
}
