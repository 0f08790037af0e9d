package main

import (
	"fmt"
	"os"

	redisclient "github.com/yungbote/learnloop-backend/internal/clients/redis"
	"github.com/yungbote/learnloop-backend/internal/db"
	"github.com/yungbote/learnloop-backend/internal/handlers"
	"github.com/yungbote/learnloop-backend/internal/logger"
	"github.com/yungbote/learnloop-backend/internal/middleware"
	"github.com/yungbote/learnloop-backend/internal/recommend"
	"github.com/yungbote/learnloop-backend/internal/repos"
	"github.com/yungbote/learnloop-backend/internal/server"
	"github.com/yungbote/learnloop-backend/internal/services"
	"github.com/yungbote/learnloop-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	port := utils.GetEnv("PORT", "8080", log)
	recoConfigPath := utils.GetEnv("RECO_CONFIG", "", log)

	// Ranking weights
	recoConfig, err := recommend.LoadConfig(recoConfigPath)
	if err != nil {
		log.Error("Could not load recommendation config", "error", err)
		os.Exit(1)
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	learningItemRepo := repos.NewLearningItemRepo(thePG, log)
	itemProgressRepo := repos.NewItemProgressRepo(thePG, log)
	recommendationLogRepo := repos.NewRecommendationLogRepo(thePG, log)

	// Redis (optional)
	recoBus, err := redisclient.NewRecoBus(log)
	if err != nil {
		log.Warn("Redis reco bus unavailable, events disabled", "error", err)
		recoBus = nil
	}

	// Services
	log.Info("Setting up Services from main...")
	recommendationService := services.NewRecommendationService(
		thePG,
		log,
		recoConfig,
		userRepo,
		learningItemRepo,
		itemProgressRepo,
		recommendationLogRepo,
		recoBus,
	)

	// Handlers + middleware
	identityMiddleware := middleware.NewIdentityMiddleware(log)
	recommendationHandler := handlers.NewRecommendationHandler(recommendationService)

	// Router
	router := server.NewRouter(server.RouterConfig{
		IdentityMiddleware:    identityMiddleware,
		RecommendationHandler: recommendationHandler,
	})

	log.Info("Starting server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
