package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/hxlane/rental_go_server/internal/api/middleware"
	"github.com/hxlane/rental_go_server/internal/model/dto"
	"github.com/hxlane/rental_go_server/internal/pkg/response"
	"github.com/hxlane/rental_go_server/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GetProfile 获取当前用户资料
// GET /api/v1/user/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	user, err := h.userService.GetProfile(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFoundError(c, err.Error())
		} else {
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, user)
}

// UpdateProfile 更新当前用户资料（含 Telegram 绑定）
// PUT /api/v1/user/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	fields := make(map[string]interface{})
	if req.FirstName != nil {
		fields["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		fields["last_name"] = *req.LastName
	}
	if req.ContactNumber != nil {
		fields["contact_number"] = *req.ContactNumber
	}
	if req.TelegramID != nil {
		fields["telegram_id"] = req.TelegramID
	}

	user, err := h.userService.UpdateProfile(userID, fields)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessWithMessage(c, "资料已更新", user)
}
