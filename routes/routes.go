package routes

import (
	"github.com/gin-gonic/gin"

	"PlanifyGo/config"
	"PlanifyGo/controllers"
	"PlanifyGo/middleware"
	"PlanifyGo/services"
)

func RegisterRoutes(r *gin.Engine, cfg config.Config, plannerService *services.PlannerService, store services.TaskStore) {
	taskController := controllers.NewTaskController(store, plannerService)
	enrichController := controllers.NewEnrichController(plannerService)
	planController := controllers.NewPlanController(plannerService, cfg)
	timelineController := controllers.NewTimelineController(plannerService, cfg)
	calendarController := controllers.NewCalendarController(cfg)
	internalController := controllers.InternalController{}

	// 需要认证的路由
	private := r.Group("/api/v1")
	private.Use(middleware.AuthMiddleware())
	{
		private.GET("/lists", taskController.GetLists)
		private.GET("/tasks", taskController.GetTasks)

		private.POST("/lists/:listId/tasks", taskController.CreateTask)
		private.PATCH("/lists/:listId/tasks/:taskId", taskController.UpdateTask)
		private.DELETE("/lists/:listId/tasks/:taskId", taskController.DeleteTask)
		private.POST("/lists/:listId/tasks/:taskId/complete", taskController.CompleteTask)
		private.POST("/lists/:listId/tasks/:taskId/enrich", enrichController.EnrichTask)

		private.POST("/tasks/:taskId/checklist", taskController.CreateChecklistItem)
		private.PATCH("/tasks/:taskId/checklist/:itemId", taskController.UpdateChecklistItem)
		private.DELETE("/tasks/:taskId/checklist/:itemId", taskController.DeleteChecklistItem)

		private.POST("/enrich/batch", enrichController.EnrichBatch)
		private.POST("/plan/generate", planController.GeneratePlan)
		private.POST("/plan/export", planController.ExportPlan)

		private.GET("/timeline", timelineController.GetTimeline)
		private.PUT("/timeline/items/:itemId/position", timelineController.MoveItem)

		private.GET("/calendar/events", calendarController.GetEvents)
	}

	// 内部路由组（仅限服务器内部调用）
	internal := r.Group("/internal")
	internal.Use(middleware.InternalAuthMiddleware())
	{
		internal.GET("/token", internalController.IssueToken)
	}

	// 测试路由
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
}
