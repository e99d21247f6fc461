package main

import (
	"coachvision/backend/internal/api"
	"coachvision/backend/internal/auth"
	"coachvision/backend/internal/config"
	"coachvision/backend/internal/generator"
	"coachvision/backend/internal/logger"
	"coachvision/backend/internal/service"
	"coachvision/backend/internal/storage"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @title CoachVision API
// @version 1.0
// @description Personalized weekly training plans, completion tracking and exercise video analysis.
// @host localhost:8000
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		zap.NewExample().Fatal("Could not load config", zap.Error(err))
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	defer func() { _ = log.Sync() }()
	log.Info("Starting CoachVision server",
		zap.String("address", cfg.Server.Address),
		zap.String("database", cfg.Database.Driver))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Stores ---
	st, err := openStores(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal("Could not open database", zap.Error(err))
	}
	defer st.close()

	// --- Token revocation ---
	var revoker auth.Revoker = auth.NewMemoryRevoker()
	if cfg.Redis.Addr != "" {
		rdb, err := auth.ConnectRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Could not connect to Redis", zap.Error(err))
		}
		defer func() { _ = rdb.Close() }()
		revoker = auth.NewRedisRevoker(rdb)
		log.Info("Token revocation backed by Redis", zap.String("addr", cfg.Redis.Addr))
	} else {
		log.Warn("Redis not configured; revoked tokens are kept in memory")
	}

	tokens, err := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Expiration)
	if err != nil {
		log.Fatal("Invalid JWT configuration", zap.Error(err))
	}

	// --- Storage and generator ---
	fileStorage, err := storage.NewS3Storage(ctx, cfg.S3, log)
	if err != nil {
		log.Fatal("Failed to initialize S3 storage", zap.Error(err))
	}
	planGenerator := generator.NewOpenAIGenerator(cfg.OpenAI, log)

	// --- Services ---
	authService := service.NewAuthService(st.users, tokens, revoker, log)
	planService := service.NewPlanService(st.plans, st.users, planGenerator, log)
	videoService := service.NewVideoService(st.videos, fileStorage, log)

	// --- Router ---
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(logger.RequestID(), logger.GinMiddleware(log), logger.Recovery(log))
	api.SetupRoutes(router, authService, planService, videoService, st.health)

	// Generation calls can take most of a minute.
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("Server listening", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("ListenAndServe failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exiting")
}
