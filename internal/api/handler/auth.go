package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/hxlane/rental_go_server/internal/model/dto"
	"github.com/hxlane/rental_go_server/internal/pkg/response"
	"github.com/hxlane/rental_go_server/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register 用户注册
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	user, token, err := h.authService.Register(&service.RegisterInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Password:      req.Password,
		Role:          req.Role,
		ContactNumber: req.ContactNumber,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			response.ParamError(c, err.Error())
		case errors.Is(err, service.ErrInvalidRole):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "注册成功", dto.AuthResponse{Token: token, User: user})
}

// Login 用户登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	user, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.AuthError(c, err.Error())
		} else {
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "登录成功", dto.AuthResponse{Token: token, User: user})
}
