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

// RentDueJob 租金提醒：到期前 3 天、到期当天、宽限期过后逾期，各提醒一次。
// 三类提醒使用独立的日粒度抑制键，与 Dispatcher 的内容级 5 分钟窗口是
// 两层刻意分开的机制（粗粒度"今天提醒过了" vs 细粒度防轰炸）
type RentDueJob struct {
	leaseRepo  *repository.LeaseRepository
	userRepo   *repository.UserRepository
	suppressor *suppress.Store
	notifier   Notifier
}

func NewRentDueJob(
	leaseRepo *repository.LeaseRepository,
	userRepo *repository.UserRepository,
	suppressor *suppress.Store,
	notifier Notifier,
) *RentDueJob {
	return &RentDueJob{
		leaseRepo:  leaseRepo,
		userRepo:   userRepo,
		suppressor: suppressor,
		notifier:   notifier,
	}
}

// Run 执行一轮租金提醒
func (j *RentDueJob) Run(ctx context.Context, now time.Time) {
	leases, err := j.leaseRepo.ListActive()
	if err != nil {
		log.Printf("Rent due job: query failed: %v", err)
		return
	}

	today := startOfDay(now)
	dueCount := 0
	lateCount := 0

	for _, lease := range leases {
		terms := lease.Terms()
		if terms.RentDueDay <= 0 {
			continue // 合同未约定到期日，跳过
		}

		tenant, err := j.userRepo.GetByID(lease.TenantID)
		if err != nil {
			continue
		}
		propertyName := j.propertyName(&lease)

		// 本月租金到期日与宽限期截止日
		dueDate := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location()).
			Add(time.Duration(terms.RentDueDay-1) * 24 * time.Hour)
		graceDeadline := dueDate.Add(time.Duration(terms.GracePeriodDays) * 24 * time.Hour)

		base := fmt.Sprintf("notif:rent_due:%d", lease.ID)

		switch {
		case sameDay(dueDate, today):
			if j.remind(ctx, base+":today", 12*time.Hour, tenant.ID,
				"Rent Due Today",
				fmt.Sprintf("Reminder: Your rent for %s is due today (%s). Please make your payment promptly.",
					propertyName, today.Format("2006-01-02"))) {
				dueCount++
			}

		case sameDay(dueDate, today.Add(3*24*time.Hour)):
			if j.remind(ctx, base+":in3", 12*time.Hour, tenant.ID,
				"Upcoming Rent Due",
				fmt.Sprintf("Heads up! Your rent for %s is due in 3 days (on the %s). Kindly prepare your payment.",
					propertyName, ordinal(terms.RentDueDay))) {
				dueCount++
			}

		case today.After(graceDeadline):
			if j.remind(ctx, base+":late", 24*time.Hour, tenant.ID,
				"Late Rent Payment",
				fmt.Sprintf("Overdue Notice: Your rent for %s was due on %s and the %d-day grace period has ended. Please settle immediately.",
					propertyName, dueDate.Format("2006-01-02"), terms.GracePeriodDays)) {
				lateCount++
			}
		}
	}

	if dueCount > 0 || lateCount > 0 {
		log.Printf("Rent due job: %d due notification(s), %d late notification(s)", dueCount, lateCount)
	}
}

// remind 带抑制的单次提醒，返回是否真正触发
func (j *RentDueJob) remind(ctx context.Context, key string, ttl time.Duration, userID int64, subject, message string) bool {
	if j.suppressor.Seen(ctx, key) {
		return false
	}
	j.notifier.Raise(ctx, userID, subject, message)
	j.suppressor.Mark(ctx, key, ttl)
	return true
}

func (j *RentDueJob) propertyName(lease *model.Lease) string {
	unit, err := j.leaseRepo.GetUnit(lease.UnitID)
	if err != nil {
		return "your unit"
	}
	property, err := j.leaseRepo.GetProperty(unit.PropertyID)
	if err != nil {
		return "your unit"
	}
	return property.Name
}

func ordinal(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
