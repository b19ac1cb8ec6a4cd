package main

import (
	"github.com/ZhehuanUnique/AIGC-Studio/internal/config"
	"github.com/ZhehuanUnique/AIGC-Studio/internal/database"
	"github.com/ZhehuanUnique/AIGC-Studio/internal/logger"
	"github.com/ZhehuanUnique/AIGC-Studio/internal/router"
	"github.com/ZhehuanUnique/AIGC-Studio/internal/storage"
	"github.com/ZhehuanUnique/AIGC-Studio/internal/task"
	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	level := logger.ParseLogLevel(cfg.Log.Level)
	if cfg.Log.Output == "file" {
		l, err := logger.NewWithFileRotation(level, cfg.Log.File)
		if err != nil {
			logger.Fatal("Failed to initialize file logger: %v", err)
		}
		logger.SetDefaultLogger(l)
	} else if l, err := logger.New(level); err == nil {
		logger.SetDefaultLogger(l)
	}
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 初始化对象存储
	store, err := storage.New(cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to initialize object storage: %v", err)
	}

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(db, store, cfg)

	// 启动定时任务
	task.Start(db, store, cfg)

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
