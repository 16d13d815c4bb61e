package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/hxlane/rental_go_server/internal/model"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Create(sub *model.Subscription) error {
	return r.db.Create(sub).Error
}

func (r *SubscriptionRepository) GetByID(id int64) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.Where("id = ?", id).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepository) Update(sub *model.Subscription) error {
	return r.db.Save(sub).Error
}

func (r *SubscriptionRepository) ListByUser(userID int64) ([]model.Subscription, error) {
	var subs []model.Subscription
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&subs).Error
	return subs, err
}

// GetActivePaidByUser 获取用户当前生效的付费订阅（套餐非默认）
func (r *SubscriptionRepository) GetActivePaidByUser(userID int64) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.
		Joins("JOIN plans ON plans.id = subscriptions.plan_id").
		Where("subscriptions.user_id = ? AND subscriptions.status = ? AND plans.is_default = ?",
			userID, model.SubscriptionActive, false).
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// HasActivePaid 用户是否已有生效中的付费订阅
func (r *SubscriptionRepository) HasActivePaid(userID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).
		Joins("JOIN plans ON plans.id = subscriptions.plan_id").
		Where("subscriptions.user_id = ? AND subscriptions.status = ? AND plans.is_default = ?",
			userID, model.SubscriptionActive, false).
		Count(&count).Error
	return count > 0, err
}

// HasPendingForPlan 用户是否已有同套餐的待审订阅
func (r *SubscriptionRepository) HasPendingForPlan(userID, planID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).
		Where("user_id = ? AND plan_id = ? AND status = ?", userID, planID, model.SubscriptionPending).
		Count(&count).Error
	return count > 0, err
}

// ExpireActivePaid 将用户所有生效中的付费订阅置为过期，返回影响行数
func (r *SubscriptionRepository) ExpireActivePaid(userID int64) (int64, error) {
	result := r.db.Model(&model.Subscription{}).
		Where("status = ? AND user_id = ? AND plan_id IN (?)",
			model.SubscriptionActive, userID,
			r.db.Model(&model.Plan{}).Select("id").Where("is_default = ?", false)).
		Update("status", model.SubscriptionExpired)
	return result.RowsAffected, result.Error
}

// ListActiveEndingOn 生效订阅中 ends_at 落在指定自然日内的记录（到期提醒用）
func (r *SubscriptionRepository) ListActiveEndingOn(day time.Time) ([]model.Subscription, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	var subs []model.Subscription
	err := r.db.
		Where("status = ? AND ends_at >= ? AND ends_at < ?", model.SubscriptionActive, dayStart, dayEnd).
		Find(&subs).Error
	return subs, err
}

// ListActiveEndedBefore 生效订阅中已过期（ends_at 早于 now）的记录
func (r *SubscriptionRepository) ListActiveEndedBefore(now time.Time) ([]model.Subscription, error) {
	var subs []model.Subscription
	err := r.db.
		Where("status = ? AND ends_at IS NOT NULL AND ends_at < ?", model.SubscriptionActive, now).
		Find(&subs).Error
	return subs, err
}

// DeletePending 删除待审订阅（仅 pending 可由本人取消）
func (r *SubscriptionRepository) DeletePending(id, userID int64) (int64, error) {
	result := r.db.
		Where("id = ? AND user_id = ? AND status = ?", id, userID, model.SubscriptionPending).
		Delete(&model.Subscription{})
	return result.RowsAffected, result.Error
}
