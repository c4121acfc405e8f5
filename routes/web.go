package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupWebRoutes thiết lập web routes
func SetupWebRoutes(router *gin.Engine, opts Options) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": opts.ServiceName,
			"version": opts.Version,
			"endpoints": map[string]string{
				"chat":    "POST /api/chat",
				"batch":   "POST /api/chat/batch",
				"health":  "GET /health",
				"metrics": "GET /metrics",
				"stats":   "GET /v1/admin/stats",
				"reload":  "POST /v1/admin/catalog/reload",
				"publish": "POST /v1/admin/catalog/publish",
				"search":  "GET /v1/admin/catalog/search?q=",
				"cache":   "POST /v1/admin/cache/invalidate",
			},
		})
	})
}
