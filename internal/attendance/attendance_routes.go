package attendance

import (
	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"

	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *casbin.Enforcer) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		attendances.GET("/status", middleware.Authorize(enforcer, "attendance", "read"), h.Status)
		attendances.POST("/location-consent", middleware.Authorize(enforcer, "attendance", "consent"), h.RecordConsent)
		attendances.POST("/check-in", middleware.Authorize(enforcer, "attendance", "create"), h.CheckIn)
		attendances.POST("/check-out", middleware.Authorize(enforcer, "attendance", "create"), h.CheckOut)
		attendances.GET("/me", middleware.Authorize(enforcer, "attendance", "read"), h.GetMine)
		attendances.GET("", middleware.Authorize(enforcer, "attendance", "read_all"), h.GetAll)
	}
}
