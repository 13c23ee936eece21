package api

import (
	"alcyxob/fitgpt/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	authService service.AuthService,
	appService service.AppService,
	backupService service.BackupService,
) {
	authHandler := NewAuthHandler(authService)
	profileHandler := NewProfileHandler(appService)
	planHandler := NewPlanHandler(appService)
	logHandler := NewWorkoutLogHandler(appService)
	progressHandler := NewProgressHandler(appService)
	settingsHandler := NewSettingsHandler(appService)
	dataHandler := NewDataHandler(appService, backupService)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/session", authHandler.CreateSession)
		}
	}

	protected := apiV1.Group("")
	protected.Use(AuthMiddleware(authService))
	{
		protected.GET("/state", dataHandler.GetState)

		profileGroup := protected.Group("/profile")
		{
			profileGroup.GET("", profileHandler.GetProfile)
			profileGroup.PUT("", profileHandler.SetProfile)
			profileGroup.PATCH("", profileHandler.UpdateProfile)
			profileGroup.DELETE("", profileHandler.ClearProfile)
		}

		planGroup := protected.Group("/plan")
		{
			planGroup.GET("", planHandler.GetPlan)
			planGroup.PUT("", planHandler.SetPlan)
			planGroup.DELETE("", planHandler.ClearPlan)
			planGroup.POST("/generate", planHandler.GeneratePlan)
			planGroup.GET("/status", planHandler.GetStatus)
		}

		logGroup := protected.Group("/logs")
		{
			logGroup.GET("", logHandler.ListLogs)
			logGroup.PUT("", logHandler.ReplaceLogs)
			logGroup.DELETE("", logHandler.ClearLogs)
			logGroup.PUT("/:date", logHandler.UpsertLog)
			logGroup.PATCH("/:date", logHandler.UpdateLog)
			logGroup.POST("/:date/exercises/:exerciseId/toggle", logHandler.ToggleExercise)
			logGroup.POST("/:date/complete", logHandler.CompleteWorkout)
		}

		protected.GET("/workouts/today", progressHandler.GetToday)
		protected.GET("/workouts/:date", progressHandler.GetWorkoutForDate)
		protected.GET("/statistics", progressHandler.GetStatistics)
		protected.GET("/calendar", progressHandler.GetCalendar)

		settingsGroup := protected.Group("/settings")
		{
			settingsGroup.GET("", settingsHandler.GetSettings)
			settingsGroup.PUT("", settingsHandler.SetSettings)
			settingsGroup.PATCH("", settingsHandler.UpdateSettings)
			settingsGroup.PUT("/api-key", settingsHandler.SetAPIKey)
		}

		dataGroup := protected.Group("/data")
		{
			dataGroup.GET("/export", dataHandler.Export)
			dataGroup.POST("/import", dataHandler.Import)
			dataGroup.DELETE("", dataHandler.ClearAll)
			dataGroup.POST("/backups", dataHandler.CreateBackup)
			dataGroup.POST("/backups/restore", dataHandler.RestoreBackup)
			dataGroup.DELETE("/backups", dataHandler.DeleteBackup)
		}
	}
}
