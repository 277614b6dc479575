package message

import (
	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"

	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *casbin.Enforcer) {
	messages := r.Group("/messages")
	messages.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		messages.POST("", middleware.Authorize(enforcer, "messages", "create"), h.Send)
		messages.GET("/unread", middleware.Authorize(enforcer, "messages", "read_own"), h.GetUnread)
		messages.GET("/:user_id", middleware.Authorize(enforcer, "messages", "read_own"), h.GetConversation)
	}
}
