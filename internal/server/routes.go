package server

import (
	"github.com/labstack/echo/v4"

	"example.com/wedding-marketplace/backend/internal/handlers"
)

func registerRoutes(
	e *echo.Echo,
	healthHandler *handlers.HealthHandler,
	categoryHandler *handlers.CategoryHandler,
	genieHandler *handlers.GenieHandler,
	savedPlanHandler *handlers.SavedPlanHandler,
	notificationHandler *handlers.NotificationHandler,
	authMiddleware echo.MiddlewareFunc,
	genieRateLimiter echo.MiddlewareFunc,
) {
	e.GET("/health", healthHandler.Health)

	api := e.Group("/api/v1")
	api.GET("/categories", categoryHandler.List)

	genieGroup := api.Group("/genie")
	genieGroup.POST("/plans", genieHandler.Generate, genieRateLimiter)

	saved := genieGroup.Group("/saved-plans", authMiddleware)
	saved.POST("", savedPlanHandler.Create)
	saved.GET("", savedPlanHandler.List)
	saved.GET("/:id", savedPlanHandler.Get)
	saved.GET("/:id/export/csv", savedPlanHandler.ExportCSV)
	saved.DELETE("/:id", savedPlanHandler.Delete)

	notifications := api.Group("/notifications", authMiddleware)
	notifications.GET("/stream", notificationHandler.Stream)
}
