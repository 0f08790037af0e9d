package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/learnloop-backend/internal/handlers"
	"github.com/yungbote/learnloop-backend/internal/middleware"
)

type RouterConfig struct {
	IdentityMiddleware    *middleware.IdentityMiddleware
	RecommendationHandler *handlers.RecommendationHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-User-ID"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)

	// ===============
	// || Protected ||
	// ===============
	api := router.Group("/api")
	api.Use(cfg.IdentityMiddleware.RequireUser())
	// Recommendations
	api.GET("/recommendations", cfg.RecommendationHandler.GetRecommendations)
	api.POST("/recommendations/refresh", cfg.RecommendationHandler.RefreshRecommendations)
	api.GET("/recommendations/history", cfg.RecommendationHandler.GetHistory)

	return router
}
