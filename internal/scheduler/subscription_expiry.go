package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hxlane/rental_go_server/internal/model"
	"github.com/hxlane/rental_go_server/internal/pkg/suppress"
	"github.com/hxlane/rental_go_server/internal/repository"
)

// SubscriptionExpiryJob 订阅到期处理：提前 3 天提醒，到期置为 expired 并通知
type SubscriptionExpiryJob struct {
	subRepo    *repository.SubscriptionRepository
	userRepo   *repository.UserRepository
	suppressor *suppress.Store
	notifier   Notifier
}

func NewSubscriptionExpiryJob(
	subRepo *repository.SubscriptionRepository,
	userRepo *repository.UserRepository,
	suppressor *suppress.Store,
	notifier Notifier,
) *SubscriptionExpiryJob {
	return &SubscriptionExpiryJob{
		subRepo:    subRepo,
		userRepo:   userRepo,
		suppressor: suppressor,
		notifier:   notifier,
	}
}

// Run 执行一轮订阅到期处理
func (j *SubscriptionExpiryJob) Run(ctx context.Context, now time.Time) {
	reminders := j.sendReminders(ctx, now)
	expired := j.expireSubscriptions(ctx, now)

	if reminders > 0 || expired > 0 {
		log.Printf("Subscription expiration job: %d reminder(s) sent, %d subscription(s) expired", reminders, expired)
	}
}

func (j *SubscriptionExpiryJob) sendReminders(ctx context.Context, now time.Time) int {
	in3Days := startOfDay(now).Add(3 * 24 * time.Hour)

	subs, err := j.subRepo.ListActiveEndingOn(in3Days)
	if err != nil {
		log.Printf("Subscription reminders: query failed: %v", err)
		return 0
	}

	count := 0
	for _, sub := range subs {
		user, err := j.userRepo.GetByID(sub.UserID)
		if err != nil {
			continue
		}

		key := fmt.Sprintf("notif:reminder:%d", sub.ID)
		if j.suppressor.Seen(ctx, key) {
			continue
		}

		j.notifier.Raise(ctx, user.ID,
			"Subscription Expiry Reminder",
			fmt.Sprintf("Hi %s, your subscription (ID: %d) will expire on %s.",
				user.FirstName, sub.ID, sub.EndsAt.Format("2006-01-02")))
		j.suppressor.Mark(ctx, key, 24*time.Hour)
		count++
	}
	return count
}

func (j *SubscriptionExpiryJob) expireSubscriptions(ctx context.Context, now time.Time) int {
	subs, err := j.subRepo.ListActiveEndedBefore(now)
	if err != nil {
		log.Printf("Subscription expiry: query failed: %v", err)
		return 0
	}

	count := 0
	for _, sub := range subs {
		sub.Status = model.SubscriptionExpired
		if err := j.subRepo.Update(&sub); err != nil {
			log.Printf("Subscription expiry: failed to expire subscription %d: %v", sub.ID, err)
			continue
		}
		count++

		user, err := j.userRepo.GetByID(sub.UserID)
		if err != nil {
			continue
		}
		j.notifier.Raise(ctx, user.ID,
			"Subscription Expired",
			fmt.Sprintf("Hi %s, your subscription (ID: %d) expired on %s.",
				user.FirstName, sub.ID, sub.EndsAt.Format("2006-01-02")))
	}
	return count
}
