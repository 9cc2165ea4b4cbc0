package api

import (
	"net/http"

	"fittrack/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	syncService service.SyncService,
) {
	authHandler := NewAuthHandler(authService)
	syncHandler := NewSyncHandler(syncService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

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
		protected.GET("/me", func(c *gin.Context) {
			userID, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": userID})
		})

		// --- Sync Store Routes ---
		protected.GET("/profile", syncHandler.GetProfile)
		protected.PUT("/profile", syncHandler.PutProfile)

		protected.GET("/logs", syncHandler.GetWorkoutLogs)
		protected.PUT("/logs/:id", syncHandler.PutWorkoutLog)
		protected.DELETE("/logs/:id", syncHandler.DeleteWorkoutLog)

		protected.GET("/exercises", syncHandler.GetExercises)
	}
}
