package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/hxlane/rental_go_server/internal/pkg/channel"
	"github.com/hxlane/rental_go_server/internal/repository"
)

const linkCodeCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789" // 去掉易混字符
const linkCodeLength = 6

// MessengerLinkService 处理 Messenger 身份绑定：
// 用户生成短期有效的绑定码，向主页发送该码后，webhook 将发送者 PSID 写回用户
type MessengerLinkService struct {
	rdb      *redis.Client
	userRepo *repository.UserRepository
	sender   channel.Sender
	codeTTL  time.Duration
}

func NewMessengerLinkService(
	rdb *redis.Client,
	userRepo *repository.UserRepository,
	sender channel.Sender,
	codeTTL time.Duration,
) *MessengerLinkService {
	return &MessengerLinkService{
		rdb:      rdb,
		userRepo: userRepo,
		sender:   sender,
		codeTTL:  codeTTL,
	}
}

func linkCodeKey(code string) string {
	return "msgr:link:" + strings.ToUpper(code)
}

// GenerateCode 为用户生成绑定码，旧码自然过期失效
func (s *MessengerLinkService) GenerateCode(ctx context.Context, userID int64) (string, error) {
	code, err := randomLinkCode()
	if err != nil {
		return "", err
	}

	if err := s.rdb.Set(ctx, linkCodeKey(code), userID, s.codeTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store link code: %w", err)
	}

	return code, nil
}

// HandleIncoming 处理 webhook 收到的用户消息。
// 文本命中有效绑定码时完成绑定并回发确认；不命中则静默忽略
func (s *MessengerLinkService) HandleIncoming(ctx context.Context, psid, text string) {
	code := strings.ToUpper(strings.TrimSpace(text))
	if psid == "" || len(code) != linkCodeLength {
		return
	}

	userID, err := s.rdb.Get(ctx, linkCodeKey(code)).Int64()
	if err != nil {
		return // 码不存在或已过期
	}

	if err := s.userRepo.SetMessengerPSID(userID, psid); err != nil {
		log.Printf("Messenger link: failed to bind psid for user %d: %v", userID, err)
		return
	}

	s.rdb.Del(ctx, linkCodeKey(code))

	if err := s.sender.Send(ctx, psid, "", "Your Messenger is now linked. You'll receive updates here."); err != nil {
		log.Printf("Messenger link: confirmation send failed for user %d: %v", userID, err)
	}
}

func randomLinkCode() (string, error) {
	buf := make([]byte, linkCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = linkCodeCharset[int(b)%len(linkCodeCharset)]
	}
	return string(buf), nil
}
