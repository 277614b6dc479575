package user

import (
	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"

	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *casbin.Enforcer) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		users.POST("/me/change-password", middleware.RateLimitByUser(0.1, 1), h.ChangePassword)

		users.GET("", middleware.RateLimitByUser(3, 10), middleware.Authorize(enforcer, "users", "read"), h.GetAll)
		users.GET("/:id", middleware.RateLimitByUser(3, 10), middleware.Authorize(enforcer, "users", "read"), h.GetByID)
		users.POST("", middleware.RateLimitByUser(0.1, 1), middleware.Authorize(enforcer, "users", "manage"), h.Create)
		users.PUT("/:id", middleware.RateLimitByUser(0.5, 2), middleware.Authorize(enforcer, "users", "manage"), h.Update)
		users.PATCH("/:id/status", middleware.RateLimitByUser(0.5, 2), middleware.Authorize(enforcer, "users", "manage"), h.ToggleStatus)
		users.POST("/:id/reset-password", middleware.RateLimitByUser(0.1, 1), middleware.Authorize(enforcer, "users", "manage"), h.ResetPassword)
		users.DELETE("/:id", middleware.RateLimitByUser(0.5, 2), middleware.Authorize(enforcer, "users", "manage"), h.Delete)
	}
}
