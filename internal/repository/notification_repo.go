package repository

import (
	"gorm.io/gorm"

	"github.com/hxlane/rental_go_server/internal/model"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create 追加一条投递记录。记录创建后不再修改
func (r *NotificationRepository) Create(notification *model.Notification) error {
	return r.db.Create(notification).Error
}

// ListByUser 用户通知流，最新在前
func (r *NotificationRepository) ListByUser(userID int64) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&notifications).Error
	return notifications, err
}

// CountByUser 用户通知总数
func (r *NotificationRepository) CountByUser(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Notification{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
