package project

import (
	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"

	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *casbin.Enforcer) {
	projects := r.Group("/projects")
	projects.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		projects.GET("/me", middleware.Authorize(enforcer, "projects", "read_own"), h.GetMine)

		projects.GET("", middleware.Authorize(enforcer, "projects", "read"), h.GetAll)
		projects.GET("/:id", middleware.Authorize(enforcer, "projects", "read"), h.GetByID)
		projects.PATCH("/:id/tasks/:taskId/status", middleware.Authorize(enforcer, "projects", "update_task"), h.UpdateTaskStatus)

		projects.POST("", middleware.Authorize(enforcer, "projects", "create"), h.Create)
		projects.PUT("/:id", middleware.Authorize(enforcer, "projects", "update"), h.Update)
		projects.DELETE("/:id", middleware.Authorize(enforcer, "projects", "delete"), h.Delete)
	}
}
