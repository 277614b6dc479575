package issue

import (
	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"

	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *casbin.Enforcer) {
	issues := r.Group("/issues")
	issues.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		issues.POST("", middleware.Authorize(enforcer, "issues", "create"), h.Create)
		issues.GET("/me", middleware.Authorize(enforcer, "issues", "read_own"), h.GetMine)
		issues.GET("", middleware.Authorize(enforcer, "issues", "read_all"), h.GetAll)
		issues.PATCH("/:id/status", middleware.Authorize(enforcer, "issues", "update"), h.UpdateStatus)
	}
}
