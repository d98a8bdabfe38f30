package router

import (
	"github.com/gin-gonic/gin"
	"github.com/imohsin99/Bugzilla/internal/auth"
	"github.com/imohsin99/Bugzilla/internal/config"
	"github.com/imohsin99/Bugzilla/internal/handler"
	"github.com/imohsin99/Bugzilla/internal/logic"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "bugzilla",
		})
	})

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 注册登录
		authHandler := handler.NewAuthHandler(db)
		v1.POST("/register", authHandler.Register)
		v1.POST("/login", authHandler.Login)
		v1.POST("/logout", authHandler.Logout)

		// 以下路由均需登录
		authed := v1.Group("")
		authed.Use(auth.Middleware(logic.NewUserLogic(db)))

		// 项目相关路由
		projectHandler := handler.NewProjectHandler(db)
		projects := authed.Group("/projects")
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.GetProjects)
			projects.GET("/:id", projectHandler.GetProject)
			projects.PUT("/:id", projectHandler.UpdateProject)
			projects.DELETE("/:id", projectHandler.DeleteProject)
			projects.DELETE("/:id/assignments/:assignment_id", projectHandler.RemoveUser)
		}

		// 缺陷相关路由，嵌套在项目下
		bugHandler := handler.NewBugHandler(db)
		bugs := authed.Group("/projects/:id/bugs")
		{
			bugs.POST("", bugHandler.CreateBug)
			bugs.GET("", bugHandler.GetBugs)
			bugs.GET("/:bug_id", bugHandler.GetBug)
			bugs.PUT("/:bug_id", bugHandler.UpdateBug)
			bugs.DELETE("/:bug_id", bugHandler.DeleteBug)
			bugs.POST("/:bug_id/assign", bugHandler.AssignBug)
			bugs.POST("/:bug_id/status", bugHandler.UpdateStatus)
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
