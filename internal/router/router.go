package router

import (
	"github.com/ZhehuanUnique/AIGC-Studio/internal/config"
	"github.com/ZhehuanUnique/AIGC-Studio/internal/handler"
	"github.com/ZhehuanUnique/AIGC-Studio/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, store *storage.Store, cfg *config.Config) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())
	r.Use(requestIDMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "aigc-studio",
		})
	})

	// API 路由。前端按集合路径整体读写，保持原有请求形态
	api := r.Group("/api")
	{
		teamHandler := handler.NewTeamHandler(db)
		api.GET("/teams", teamHandler.GetTeams)
		api.PUT("/teams", teamHandler.UpsertTeam)
		api.DELETE("/teams", teamHandler.DeleteTeam)

		newsHandler := handler.NewNewsHandler(db)
		api.GET("/news", newsHandler.GetNews)
		api.POST("/news", newsHandler.AddNews)
		api.PUT("/news", newsHandler.UpdateNews)
		api.DELETE("/news", newsHandler.DeleteNews)

		announcementHandler := handler.NewAnnouncementHandler(db)
		api.GET("/announcement", announcementHandler.GetAnnouncement)
		api.PUT("/announcement", announcementHandler.UpdateAnnouncement)

		uploadHandler := handler.NewUploadHandler(store)
		api.POST("/upload", uploadHandler.Upload)
		api.POST("/blob-delete", uploadHandler.DeleteBlob)
	}

	return r
}

// CORS中间件，面板跨域访问全放开
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// 请求ID中间件
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-ID", id)
		c.Set("request_id", id)
		c.Next()
	}
}
