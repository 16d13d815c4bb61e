package dto

import (
	"github.com/hxlane/rental_go_server/internal/model"
)

type RegisterRequest struct {
	FirstName     string `json:"first_name" binding:"required,max=50"`
	LastName      string `json:"last_name" binding:"required,max=50"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=6"`
	Role          string `json:"role" binding:"required,oneof=landlord tenant"`
	ContactNumber string `json:"contact_number"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

type UpdateProfileRequest struct {
	FirstName     *string `json:"first_name"`
	LastName      *string `json:"last_name"`
	ContactNumber *string `json:"contact_number"`
	TelegramID    *string `json:"telegram_id"`
}
