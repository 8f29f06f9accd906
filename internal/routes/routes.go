package routes

import (
	"reliefhub_backend/internal/handlers"
	"reliefhub_backend/internal/logger"
	"reliefhub_backend/internal/middleware"
	"reliefhub_backend/ws"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every HTTP and WebSocket route onto the engine.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	wsHandler *ws.Handler,
) {
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.Auth.RegisterRoutes(api)
		appHandlers.Profile.RegisterRoutes(api)
		appHandlers.Program.RegisterRoutes(api)
		appHandlers.Resource.RegisterRoutes(api)
		appHandlers.Emergency.RegisterRoutes(api)
		appHandlers.Notification.RegisterRoutes(api)
	}

	wsGroup := ginRouter.Group("/ws")
	wsGroup.Use(middleware.AuthMiddleware())
	{
		wsGroup.GET("", wsHandler.ServeWS)
	}
	logger.Info("WebSocket route /ws registered")
}
