package main

import (
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"time"

	"bravoo/internal/api"
	"bravoo/internal/middleware"
	"bravoo/internal/repository"
	"bravoo/internal/service"
	"bravoo/pkg/auth"
	"bravoo/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	err = logger.Initialize(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zapLogger := logger.Logger()

	repo, err := repository.New(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to initialize repository", zap.Error(err))
	}
	defer repo.Close()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	userService := service.NewUserService(repo, time.Now)
	questService := service.NewQuestService(repo, rng, time.Now)
	maintenanceService := service.NewMaintenanceService(repo, time.Now)
	feedbackService := service.NewFeedbackService(repo, time.Now)

	tokenAuth := auth.NewTokenAuth(userService)
	maintenanceGuard := middleware.NewMaintenanceGuard(cfg.Maintenance.Key)
	hub := api.NewHub()

	router := gin.New()
	router.Use(gin.Recovery())

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{
		http.MethodHead,
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
	}
	config.AllowHeaders = []string{"*"}
	config.AllowCredentials = true
	config.MaxAge = 12 * time.Hour

	router.Use(cors.New(config))

	a := router.Group("/api/v1")
	api.NewUserRoutes(a, userService, tokenAuth)
	api.NewQuestRoutes(a, questService, hub, tokenAuth)
	api.NewFeedbackRoutes(a, feedbackService, tokenAuth)
	api.NewMaintenanceRoutes(a, maintenanceService, maintenanceGuard)
	api.NewNotificationRoutes(a, hub, tokenAuth)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	zapLogger.Info("Starting server", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		zapLogger.Fatal("Failed to start server", zap.Error(err))
	}
}
