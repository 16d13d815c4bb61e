package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/hxlane/rental_go_server/internal/api/middleware"
	"github.com/hxlane/rental_go_server/internal/pkg/response"
	"github.com/hxlane/rental_go_server/internal/service"
)

type NotificationHandler struct {
	notifService *service.NotificationService
}

func NewNotificationHandler(notifService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notifService: notifService,
	}
}

// Feed 当前用户的通知记录，最新在前
// GET /api/v1/notifications
func (h *NotificationHandler) Feed(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	notifications, err := h.notifService.Feed(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, notifications)
}
