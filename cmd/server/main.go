package main

import (
	"classhub/internal/api"
	"classhub/internal/config"
	"classhub/internal/model"
	"classhub/internal/storage"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// 本地开发时从 .env 读取配置，文件不存在则忽略
	_ = godotenv.Load()

	// 初始化配置
	cfg, err := config.ParseConfig()
	if err != nil {
		logrus.WithError(err).Error("Failed to parse config")
		return
	}

	// 初始化logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	repo, err := model.InitRepository(&cfg)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise repository")
		return
	}

	if repo != nil {
		if err := model.SeedAdminUser(context.Background(), repo, cfg); err != nil {
			logrus.WithError(err).Warn("failed to seed admin user")
		}
	}

	store, err := storage.NewStorage(cfg)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise storage")
		return
	}

	httpHandler, err := api.NewHTTPHandler(cfg, repo, store)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise http handler")
		return
	}

	// 设置Gin模式
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// 添加中间件
	r.Use(LoggingMiddleware())
	r.Use(CORSMiddleware())
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	apiGroup := r.Group("/api")

	authGroup := apiGroup.Group("/auth")
	authGroup.POST("/login", httpHandler.Login)
	authGroup.GET("/me", httpHandler.AuthMiddleware(), httpHandler.Me)

	protected := apiGroup.Group("")
	protected.Use(httpHandler.AuthMiddleware())

	users := protected.Group("/users")
	users.GET("", httpHandler.SearchUsers)
	users.GET("/check-name", httpHandler.CheckName)
	users.GET("/:id", httpHandler.GetUser)
	users.PATCH("/:id", httpHandler.UpdateUser)
	users.POST("/:id/avatar", httpHandler.UploadAvatar)
	users.GET("/:id/followers", httpHandler.ListFollowers)
	users.GET("/:id/following", httpHandler.ListFollowing)
	users.POST("/:id/follow", httpHandler.Follow)
	users.POST("/:id/unfollow", httpHandler.Unfollow)
	users.POST("", httpHandler.RequireAdmin(), httpHandler.CreateUser)

	students := protected.Group("/students")
	students.GET("", httpHandler.ListStudents)
	students.POST("", httpHandler.RequireAdmin(), httpHandler.CreateStudent)
	students.GET("/:id", httpHandler.GetStudent)
	students.PATCH("/:id", httpHandler.RequireAdmin(), httpHandler.UpdateStudent)
	students.DELETE("/:id", httpHandler.RequireAdmin(), httpHandler.DeleteStudent)

	protected.GET("/subjects", httpHandler.ListSubjects)
	protected.POST("/subjects", httpHandler.RequireAdmin(), httpHandler.CreateSubject)
	protected.GET("/lessons", httpHandler.ListLessons)
	protected.POST("/lessons", httpHandler.RequireAdmin(), httpHandler.CreateLesson)
	protected.GET("/grades", httpHandler.ListGrades)
	protected.POST("/grades", httpHandler.RequireAdmin(), httpHandler.CreateGrade)
	protected.GET("/resources", httpHandler.ListResources)
	protected.GET("/resources/:id", httpHandler.GetResource)
	protected.POST("/resources", httpHandler.RequireAdmin(), httpHandler.CreateResource)

	if localProvider, ok := store.(storage.LocalBaseDirProvider); ok {
		publicPrefix := strings.TrimSpace(cfg.StoragePublicBaseURL)
		if publicPrefix == "" {
			publicPrefix = "/files"
		}
		if !strings.HasPrefix(publicPrefix, "http://") && !strings.HasPrefix(publicPrefix, "https://") {
			if !strings.HasPrefix(publicPrefix, "/") {
				publicPrefix = "/" + publicPrefix
			}
			r.Static(publicPrefix, localProvider.LocalBaseDir())
		}
	}

	serverHost := fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)
	logger.WithField("host", serverHost).Info("服务器启动")
	// 创建HTTP服务器
	httpServer := &http.Server{
		Addr:         serverHost,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	err = httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		logger.WithError(err).Error("服务器启动失败")
	}
}

// CORSMiddleware CORS跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		c.Header("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// LoggingMiddleware 日志记录中间件
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		// 处理请求
		c.Next()
		// 记录请求结束
		duration := time.Since(start)
		logrus.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"duration":  duration.String(),
			"size":      c.Writer.Size(),
			"client_ip": c.ClientIP(),
		}).Info("http_request")
	}
}
