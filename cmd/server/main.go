package main

import (
	"github.com/gin-gonic/gin"
	"github.com/imohsin99/Bugzilla/internal/config"
	"github.com/imohsin99/Bugzilla/internal/logger"
	"github.com/imohsin99/Bugzilla/internal/repository"
	"github.com/imohsin99/Bugzilla/internal/router"
	"github.com/imohsin99/Bugzilla/internal/task"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	if cfg.Log.Output == "file" {
		l, err := logger.NewWithFileRotation(logger.ParseLevel(cfg.Log.Level), cfg.Log.File)
		if err != nil {
			logger.Fatal("Failed to initialize file logger: %v", err)
		}
		logger.SetDefaultLogger(l)
	}
	defer logger.Sync()

	// 初始化数据库
	db, err := repository.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(db, cfg)

	// 启动定时任务
	manager := task.Start(db, cfg)
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
