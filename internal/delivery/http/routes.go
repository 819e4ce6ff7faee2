package http

import (
	"github.com/gin-gonic/gin"

	"github.com/eatwise/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		meals := v1.Group("/meals")
		{
			meals.POST("/analyze", handler.AnalyzeText)
			meals.POST("/analyze-image", handler.AnalyzeImage)
			meals.GET("/history", handler.ListHistory)
			meals.GET("/history/:id", handler.GetAnalysis)
		}
	}

	return router
}
