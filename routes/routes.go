package routes

import (
	"github.com/gin-gonic/gin"

	"MenteSanaGo/controllers"
	"MenteSanaGo/middleware"
	"MenteSanaGo/store"
)

func RegisterRoutes(r *gin.Engine, manager *store.Manager) {
	authController := controllers.AuthController{}
	catalogController := controllers.CatalogController{}
	entryController := controllers.NewEntryController(manager)
	streamController := controllers.NewStreamController(manager)
	statsController := controllers.NewStatsController(manager)

	// 公开路由（无需认证）
	public := r.Group("/api/v1")
	{
		public.POST("/auth/demo", authController.CreateDemoSession)
		public.POST("/auth/login", authController.Login)
		public.GET("/catalogs", catalogController.GetCatalogs)
	}

	// 需要认证的路由
	private := r.Group("/api/v1")
	private.Use(middleware.AuthMiddleware()) // 应用认证中间件
	{
		private.GET("/entries", entryController.ListEntries)
		private.POST("/entries", entryController.SaveEntry)
		private.DELETE("/entries/:id", entryController.DeleteEntry)
		private.GET("/entries/export", entryController.ExportEntries)
		private.POST("/entries/import", entryController.ImportEntries)
		private.GET("/entries/stream", streamController.StreamEntries)
		private.GET("/entries/stats", statsController.GetStats)
	}

	// 测试路由
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
}
