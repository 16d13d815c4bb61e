package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hxlane/rental_go_server/internal/pkg/suppress"
	"github.com/hxlane/rental_go_server/internal/repository"
)

// LeaseExpiryJob 租约到期处理：提前 3 天提醒租客，到期后置为过期并释放房源
type LeaseExpiryJob struct {
	leaseRepo  *repository.LeaseRepository
	userRepo   *repository.UserRepository
	suppressor *suppress.Store
	notifier   Notifier
}

func NewLeaseExpiryJob(
	leaseRepo *repository.LeaseRepository,
	userRepo *repository.UserRepository,
	suppressor *suppress.Store,
	notifier Notifier,
) *LeaseExpiryJob {
	return &LeaseExpiryJob{
		leaseRepo:  leaseRepo,
		userRepo:   userRepo,
		suppressor: suppressor,
		notifier:   notifier,
	}
}

// Run 执行一轮租约到期处理
func (j *LeaseExpiryJob) Run(ctx context.Context, now time.Time) {
	reminders := j.sendReminders(ctx, now)
	expired := j.expireLeases(ctx, now)

	if reminders > 0 || expired > 0 {
		log.Printf("Lease expiration job: %d reminder(s) sent, %d lease(s) expired", reminders, expired)
	}
}

// sendReminders 对 3 天后到期的生效租约发送提醒，日粒度抑制防止重复
func (j *LeaseExpiryJob) sendReminders(ctx context.Context, now time.Time) int {
	in3Days := startOfDay(now).Add(3 * 24 * time.Hour)

	leases, err := j.leaseRepo.ListActiveEndingOn(in3Days)
	if err != nil {
		log.Printf("Lease reminders: query failed: %v", err)
		return 0
	}

	count := 0
	for _, lease := range leases {
		tenant, err := j.userRepo.GetByID(lease.TenantID)
		if err != nil {
			continue
		}

		key := fmt.Sprintf("notif:lease:reminder:%d", lease.ID)
		if j.suppressor.Seen(ctx, key) {
			continue
		}

		j.notifier.Raise(ctx, tenant.ID,
			"Lease Expiry Reminder",
			fmt.Sprintf("Hi %s, your lease (ID: %d) will expire on %s.",
				tenant.FirstName, lease.ID, lease.EndDate.Format("2006-01-02")))
		j.suppressor.Mark(ctx, key, 24*time.Hour)
		count++
	}
	return count
}

// expireLeases 将已过期租约置为 expired，恢复房源可租，并通知租客
func (j *LeaseExpiryJob) expireLeases(ctx context.Context, now time.Time) int {
	leases, err := j.leaseRepo.ListActiveEndedBefore(startOfDay(now))
	if err != nil {
		log.Printf("Lease expiry: query failed: %v", err)
		return 0
	}

	count := 0
	for _, lease := range leases {
		if err := j.leaseRepo.MarkExpired(lease.ID); err != nil {
			log.Printf("Lease expiry: failed to expire lease %d: %v", lease.ID, err)
			continue
		}
		count++

		if err := j.leaseRepo.SetUnitAvailable(lease.UnitID, true); err != nil {
			log.Printf("Lease expiry: failed to release unit %d: %v", lease.UnitID, err)
		}

		tenant, err := j.userRepo.GetByID(lease.TenantID)
		if err != nil {
			continue
		}
		j.notifier.Raise(ctx, tenant.ID,
			"Lease Expired",
			fmt.Sprintf("Hi %s, your lease (ID: %d) expired on %s and the unit is now available again.",
				tenant.FirstName, lease.ID, lease.EndDate.Format("2006-01-02")))
	}
	return count
}
