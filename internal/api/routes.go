package api

import (
	"coachvision/backend/internal/service"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck probes a backing store. A nil check always reports healthy.
type HealthCheck func(ctx context.Context) error

func SetupRoutes(
	router *gin.Engine,
	authService service.AuthService,
	planService service.PlanService,
	videoService service.VideoService,
	health HealthCheck,
) {
	RegisterValidators()

	authHandler := NewAuthHandler(authService)
	planHandler := NewPlanHandler(planService)
	videoHandler := NewVideoHandler(videoService)

	authMiddleware := AuthMiddleware(authService)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/health", healthHandler(health))

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		// --- Session Routes ---
		protected.GET("/auth/me", authHandler.Me)
		protected.POST("/auth/refresh", authHandler.Refresh)
		protected.POST("/auth/logout", authHandler.Logout)
		protected.POST("/auth/complete-profile", authHandler.CompleteProfile)

		// --- Plan Routes ---
		plans := protected.Group("/plans")
		{
			plans.POST("/generate", planHandler.Generate)
			plans.POST("/replace", planHandler.Replace)
			plans.GET("/user/:userId", planHandler.ListUserPlans)
			plans.GET("/user/:userId/active", planHandler.GetActivePlan)
			plans.GET("/:planId", planHandler.GetPlan)
			plans.GET("/:planId/week", planHandler.GetWeek)
			plans.PUT("/:planId/completed-days", planHandler.UpdateCompletedDays)
			plans.POST("/:planId/days/:day/toggle", planHandler.ToggleDay)
			plans.PUT("/:planId/edit-day", planHandler.EditDay)
			plans.DELETE("/:planId", planHandler.DeletePlan)
		}

		// --- Video Routes ---
		videos := protected.Group("/videos")
		{
			videos.POST("/upload-url", videoHandler.RequestUploadURL)
			videos.POST("/analyze", videoHandler.Analyze)
			videos.GET("/user/:userId", videoHandler.ListUserVideos)
			videos.GET("/:videoId", videoHandler.GetVideo)
			videos.GET("/:videoId/download", videoHandler.GetDownloadURL)
			videos.DELETE("/:videoId", videoHandler.DeleteVideo)
		}
	}
}

func healthHandler(check HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	}
}
