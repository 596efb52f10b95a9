package transport

import (
	"net/http"
	"time"

	"medreminder/internal/transport/middleware"

	"github.com/gin-gonic/gin"
)

func InitRoutes(scheduleHandler *ScheduleHandler, userHandler *UserHandler) *gin.Engine {

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(30 * time.Second))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		// Schedule routes
		schedules := api.Group("/schedules")
		{
			schedules.POST("", scheduleHandler.CreateSchedule)
			schedules.GET("", scheduleHandler.GetAllSchedules)
			schedules.GET("/:id", scheduleHandler.GetSchedule)
			schedules.DELETE("/:id", scheduleHandler.DeleteSchedule)
		}

		// User routes
		users := api.Group("/users")
		{
			users.POST("/register", userHandler.RegisterUser)
			users.GET("/:id", userHandler.GetUser)
			users.GET("/:id/schedules", scheduleHandler.GetUserSchedules)
			users.POST("/:id/token", userHandler.UpdateFCMToken)
		}
	}

	return router
}
