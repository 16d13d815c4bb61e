package notify

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/hxlane/rental_go_server/internal/model"
	"github.com/hxlane/rental_go_server/internal/pkg/channel"
	"github.com/hxlane/rental_go_server/internal/pkg/queue"
	"github.com/hxlane/rental_go_server/internal/pkg/suppress"
	"github.com/hxlane/rental_go_server/internal/repository"
)

// EventName 审计记录中的事件标签
const EventName = "SignificantNotificationEvent"

// Dispatcher 消费通知事件，按渠道独立投递并落审计记录。
// 每个渠道各自经过抑制窗口检查、发送、记录，互不影响
type Dispatcher struct {
	userRepo     *repository.UserRepository
	notifRepo    *repository.NotificationRepository
	entitlements *Entitlements
	suppressor   *suppress.Store
	senders      map[channel.Channel]channel.Sender
	suppressTTL  time.Duration
	sendTimeout  time.Duration
}

func NewDispatcher(
	userRepo *repository.UserRepository,
	notifRepo *repository.NotificationRepository,
	entitlements *Entitlements,
	suppressor *suppress.Store,
	senders map[channel.Channel]channel.Sender,
	suppressTTL time.Duration,
	sendTimeout time.Duration,
) *Dispatcher {
	return &Dispatcher{
		userRepo:     userRepo,
		notifRepo:    notifRepo,
		entitlements: entitlements,
		suppressor:   suppressor,
		senders:      senders,
		suppressTTL:  suppressTTL,
		sendTimeout:  sendTimeout,
	}
}

// Dispatch 处理一个通知事件。不返回错误：所有结果以审计记录形式落库
func (d *Dispatcher) Dispatch(ctx context.Context, evt *queue.NotificationEvent) {
	user, err := d.userRepo.GetByID(evt.UserID)
	if err != nil {
		// 收件人不存在，没有可投递对象，静默结束
		log.Printf("Dispatch: recipient %d not found, dropping event", evt.UserID)
		return
	}

	entitled := d.entitlements.ResolveChannels(user)
	contentHash := suppress.ContentHash(evt.Subject, evt.Message)

	for _, ch := range entitled {
		dest, ok := destination(user, ch)
		if !ok {
			continue // 未配置该渠道的接收身份，静默跳过，不落记录
		}

		sender, ok := d.senders[ch]
		if !ok {
			continue
		}

		key := suppress.DispatchKey(string(ch), user.ID, contentHash)
		if d.suppressor.Seen(ctx, key) {
			continue // 窗口内已处理过同内容，跳过且不落记录
		}

		d.attempt(ctx, user, ch, sender, dest, evt)

		// 成功与失败都计入"已处理"，防止触发方短时间重复抛出造成轰炸
		d.suppressor.Mark(ctx, key, d.suppressTTL)
	}
}

// attempt 单渠道一次投递，结果各自落一条审计记录
func (d *Dispatcher) attempt(ctx context.Context, user *model.User, ch channel.Channel, sender channel.Sender, dest string, evt *queue.NotificationEvent) {
	sendCtx, cancel := context.WithTimeout(ctx, d.sendTimeout)
	defer cancel()

	record := &model.Notification{
		UserID:   user.ID,
		Channel:  string(ch),
		Event:    EventName,
		Attempts: 1,
	}

	if err := sender.Send(sendCtx, dest, evt.Subject, evt.Message); err != nil {
		record.Status = model.NotificationFailed
		record.Payload = marshalPayload(map[string]string{
			"message": evt.Message,
			"error":   err.Error(),
		})
		log.Printf("Dispatch: %s send to user %d failed: %v", ch, user.ID, err)
	} else {
		now := time.Now()
		record.Status = model.NotificationSent
		record.SentAt = &now
		record.Payload = marshalPayload(map[string]string{
			"subject": evt.Subject,
			"message": evt.Message,
		})
	}

	// 单渠道记录写失败不影响其余渠道
	if err := d.notifRepo.Create(record); err != nil {
		log.Printf("Dispatch: failed to write %s audit record for user %d: %v", ch, user.ID, err)
	}
}

// destination 渠道对应的接收身份；为空视为未配置
func destination(user *model.User, ch channel.Channel) (string, bool) {
	switch ch {
	case channel.Email:
		return user.Email, user.Email != ""
	case channel.Telegram:
		if user.HasTelegram() {
			return *user.TelegramID, true
		}
	case channel.Messenger:
		if user.HasMessenger() {
			return *user.MessengerPSID, true
		}
	}
	return "", false
}

func marshalPayload(fields map[string]string) string {
	data, err := json.Marshal(fields)
	if err != nil {
		return "{}"
	}
	return string(data)
}
