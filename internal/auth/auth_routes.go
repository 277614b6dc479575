package auth

import (
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/middleware"
)

func RegisterRoutes(rg *gin.RouterGroup, handler *Handler) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/login", middleware.RateLimitByIP(rate.Every(time.Second), 5), handler.Login)
		authGroup.POST("/refresh", middleware.RateLimitByIP(rate.Every(time.Second), 5), handler.Refresh)
		authGroup.GET("/me", middleware.AuthMiddleware(), middleware.ExtractUserID(), handler.GetMe)
	}
}
