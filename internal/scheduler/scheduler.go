package scheduler

import (
	"context"
	"log"
	"time"
)

// Notifier 调度任务抛通知事件用的最小接口，由 notify.Emitter 实现
type Notifier interface {
	Raise(ctx context.Context, userID int64, subject, message string)
}

// Service 周期性业务任务：租约到期、订阅到期、租金提醒。
// 任务本身幂等，依赖日粒度抑制键防止重复提醒，因此按小时轮询即可
type Service struct {
	leases        *LeaseExpiryJob
	subscriptions *SubscriptionExpiryJob
	rentDue       *RentDueJob
	interval      time.Duration
	stopChan      chan struct{}
}

func NewService(leases *LeaseExpiryJob, subscriptions *SubscriptionExpiryJob, rentDue *RentDueJob) *Service {
	return &Service{
		leases:        leases,
		subscriptions: subscriptions,
		rentDue:       rentDue,
		interval:      time.Hour,
		stopChan:      make(chan struct{}),
	}
}

// Start 启动定时任务
func (s *Service) Start() {
	go s.run()
	log.Println("Scheduler started (lease expiry + subscription expiry + rent due)")
}

// Stop 停止定时任务
func (s *Service) Stop() {
	close(s.stopChan)
	log.Println("Scheduler stopped")
}

func (s *Service) run() {
	// 启动时先跑一轮，之后按固定间隔执行
	s.RunAll(context.Background(), time.Now())

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.RunAll(context.Background(), time.Now())
		}
	}
}

// RunAll 立即执行全部任务（也用于手动触发）
func (s *Service) RunAll(ctx context.Context, now time.Time) {
	s.leases.Run(ctx, now)
	s.subscriptions.Run(ctx, now)
	s.rentDue.Run(ctx, now)
}

// startOfDay 当天零点
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// sameDay 是否同一自然日
func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
