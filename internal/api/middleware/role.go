package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/hxlane/rental_go_server/internal/pkg/response"
	"github.com/hxlane/rental_go_server/internal/repository"
)

// RequireRole 角色检查中间件，必须挂在 Auth 之后
func RequireRole(userRepo *repository.UserRepository, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			response.AuthError(c, "")
			c.Abort()
			return
		}

		user, err := userRepo.GetByID(userID)
		if err != nil {
			response.AuthError(c, "")
			c.Abort()
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		response.PermissionError(c, "")
		c.Abort()
	}
}
