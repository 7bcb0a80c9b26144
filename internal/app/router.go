package app

import (
	"study_coach_backend/docs"
	"study_coach_backend/internal/config"
	"study_coach_backend/internal/middleware"
	"study_coach_backend/internal/util"
	"study_coach_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
	{
		a.registerSessionRoutes(authGroup, c)
		a.registerGoalRoutes(authGroup, c)
		a.registerReminderRoutes(authGroup, c)
		a.registerAnalyticsRoutes(authGroup, c)

		// 本地存储的导出文件
		if cfg.Storage.Type == util.StorageLocal {
			authGroup.Static("/exports", cfg.Storage.LocalPath)
		}
	}
}

func (a *App) registerSessionRoutes(group *gin.RouterGroup, c *controllers) {
	sessions := group.Group("/sessions")
	{
		sessions.POST("", c.session.CreateSession)
		sessions.GET("", c.session.ListSessions)
		sessions.POST("/sync", c.session.SyncSessions)
		sessions.POST("/export", c.session.ExportSessions)
		sessions.GET("/:id", c.session.GetSession)
		sessions.PATCH("/:id/progress", c.session.UpdateProgress)
		sessions.DELETE("/:id", c.session.DeleteSession)
	}
}

func (a *App) registerGoalRoutes(group *gin.RouterGroup, c *controllers) {
	goals := group.Group("/goals")
	{
		goals.POST("", c.goal.CreateGoal)
		goals.GET("", c.goal.ListGoals)
		goals.GET("/:id/progress", c.goal.GetProgress)
		goals.PUT("/:id", c.goal.UpdateGoal)
		goals.PATCH("/:id/toggle", c.goal.ToggleGoal)
		goals.DELETE("/:id", c.goal.DeleteGoal)
	}
}

func (a *App) registerReminderRoutes(group *gin.RouterGroup, c *controllers) {
	reminders := group.Group("/reminders")
	{
		reminders.GET("", c.reminder.ListReminders)
		reminders.DELETE("", c.reminder.ClearReminders)
		reminders.POST("/:goalId/dismiss", c.reminder.DismissReminder)
	}
}

func (a *App) registerAnalyticsRoutes(group *gin.RouterGroup, c *controllers) {
	analytics := group.Group("/analytics")
	{
		analytics.GET("/insights", c.analytics.GetInsights)
		analytics.GET("/streak", c.analytics.GetStreak)
	}
}
