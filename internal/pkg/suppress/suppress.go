package suppress

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// Store 基于 Redis 过期键的通知抑制窗口。
// 键存在期间，同一 (渠道, 用户, 内容) 不再重复投递。
type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// Seen 键是否仍在抑制窗口内。
// Redis 不可用时按"未命中"处理：宁可偶发重复，也不静默丢通知
func (s *Store) Seen(ctx context.Context, key string) bool {
	n, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		log.Printf("Suppress check failed for %s, treating as absent: %v", key, err)
		return false
	}
	return n > 0
}

// Mark 写入抑制键，窗口时长 ttl。写失败仅记录日志
func (s *Store) Mark(ctx context.Context, key string, ttl time.Duration) {
	if err := s.client.Set(ctx, key, 1, ttl).Err(); err != nil {
		log.Printf("Suppress mark failed for %s: %v", key, err)
	}
}

// DispatchKey 投递级抑制键：notif:<channel>:<user_id>:<content_hash>
func DispatchKey(channel string, userID int64, contentHash string) string {
	return fmt.Sprintf("notif:%s:%d:%s", channel, userID, contentHash)
}

// ContentHash 对 (subject, message) 计算确定性摘要
func ContentHash(subject, message string) string {
	sum := sha1.Sum([]byte(subject + message))
	return hex.EncodeToString(sum[:])
}
