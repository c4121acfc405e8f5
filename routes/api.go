package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/center-locator/app/controllers"
)

// Options cấu hình cho router
type Options struct {
	ServiceName string
	Version     string
	CORSOrigins []string
}

// SetupAPIRoutes thiết lập chat và admin routes
func SetupAPIRoutes(router *gin.Engine, chatController *controllers.ChatController, adminController *controllers.AdminController) {
	// Chat API, giữ đường dẫn cũ /api/chat
	api := router.Group("/api")
	{
		api.POST("/chat", chatController.Chat)
		api.POST("/chat/batch", chatController.BatchChat)
	}

	// API v1 group
	v1 := router.Group("/v1")
	{
		admin := v1.Group("/admin")
		{
			admin.GET("/stats", adminController.GetStats)
			admin.POST("/catalog/reload", adminController.ReloadCatalog)
			admin.POST("/catalog/publish", adminController.PublishCatalog)
			admin.GET("/catalog/search", adminController.SearchCatalog)
			admin.POST("/cache/invalidate", adminController.InvalidateCache)
		}

		v1.GET("/health", chatController.HealthCheck)
	}
}

// SetupHealthRoutes thiết lập health check routes
func SetupHealthRoutes(router *gin.Engine, chatController *controllers.ChatController) {
	router.GET("/health", chatController.HealthCheck)
}

// SetupMetricsRoutes thiết lập metrics routes (cho Prometheus)
func SetupMetricsRoutes(router *gin.Engine) {
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// SetupAllRoutes thiết lập tất cả routes
func SetupAllRoutes(router *gin.Engine, opts Options, chatController *controllers.ChatController, adminController *controllers.AdminController, logger *zap.Logger) {
	// Thiết lập middleware
	setupMiddleware(router, opts, logger)

	// Thiết lập các loại routes
	SetupWebRoutes(router, opts)
	SetupHealthRoutes(router, chatController)
	SetupAPIRoutes(router, chatController, adminController)
	SetupMetricsRoutes(router)

	// 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":  "Route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})
}
