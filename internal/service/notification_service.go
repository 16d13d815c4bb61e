package service

import (
	"github.com/hxlane/rental_go_server/internal/model"
	"github.com/hxlane/rental_go_server/internal/repository"
)

// NotificationService 用户通知流（只读，投递记录由 Dispatcher 写入）
type NotificationService struct {
	notifRepo *repository.NotificationRepository
}

func NewNotificationService(notifRepo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{notifRepo: notifRepo}
}

// Feed 当前用户自己的通知记录，最新在前
func (s *NotificationService) Feed(userID int64) ([]model.Notification, error) {
	return s.notifRepo.ListByUser(userID)
}
