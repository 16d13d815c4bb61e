package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type Queue struct {
	client    *redis.Client
	queueName string
}

// NotificationEvent 业务侧抛出的通知事件，经队列交给 Dispatcher 消费
type NotificationEvent struct {
	UserID  int64  `json:"user_id"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func NewQueue(client *redis.Client, queueName string) *Queue {
	return &Queue{
		client:    client,
		queueName: queueName,
	}
}

// Push 将事件加入队列
func (q *Queue) Push(ctx context.Context, evt *NotificationEvent) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	return q.client.LPush(ctx, q.queueName, data).Err()
}

// Pop 从队列获取事件（阻塞）
func (q *Queue) Pop(ctx context.Context, timeout time.Duration) (*NotificationEvent, error) {
	result, err := q.client.BRPop(ctx, timeout, q.queueName).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // 超时，无事件
		}
		return nil, fmt.Errorf("failed to pop from queue: %w", err)
	}

	if len(result) < 2 {
		return nil, nil
	}

	var evt NotificationEvent
	if err := json.Unmarshal([]byte(result[1]), &evt); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	return &evt, nil
}

// Length 获取队列长度
func (q *Queue) Length(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.queueName).Result()
}
