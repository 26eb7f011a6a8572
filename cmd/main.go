package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/antonkk11/Netology-diploma/config"
	"github.com/antonkk11/Netology-diploma/internal/api/post"
	"github.com/antonkk11/Netology-diploma/internal/api/user"
	"github.com/antonkk11/Netology-diploma/internal/middleware"
	"github.com/antonkk11/Netology-diploma/internal/repository/mysql"
	"github.com/antonkk11/Netology-diploma/internal/service"
	"github.com/antonkk11/Netology-diploma/internal/storage"
	"github.com/antonkk11/Netology-diploma/internal/util"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

func main() {
	// 初始化配置
	config.Init()

	// 初始化日志
	util.InitLogger(config.AppConfig.LogLevel)
	defer util.Logger.Sync()
	zap.ReplaceGlobals(util.Logger)

	util.Logger.Info("应用程序启动")

	// 设置数据库连接字符串
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		config.AppConfig.DBUser,
		config.AppConfig.DBPassword,
		config.AppConfig.DBHost,
		config.AppConfig.DBPort,
		config.AppConfig.DBName)

	// 连接数据库
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		util.Logger.Fatal("连接数据库失败", zap.Error(err))
	}
	defer db.Close()

	// 测试数据库连接
	if err := db.Ping(); err != nil {
		util.Logger.Fatal("数据库连接测试失败", zap.Error(err))
	}
	util.Logger.Info("数据库连接成功")

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	// 注册自定义验证器
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("username_format", util.ValidateUsername)
	}

	// 初始化媒体存储
	fileStorage, err := newFileStorage()
	if err != nil {
		util.Logger.Fatal("初始化媒体存储失败", zap.Error(err))
	}

	// 初始化存储库、服务和处理器
	userRepo := mysql.NewUserRepository(db)
	userService := service.NewUserService(userRepo)
	authHandler := user.NewAuthHandler(userService)

	postRepo := mysql.NewPostRepository(db)
	postService := service.NewPostService(postRepo)
	postHandler := post.NewPostHandler(postService, fileStorage)

	// 初始化错误监控
	errorMonitor := middleware.NewErrorMonitor()

	// 设置 Gin 路由
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.ErrorMonitorMiddleware(errorMonitor))

	// 配置 CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{config.AppConfig.FrontendURL}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Length",
		"Content-Type",
		"Authorization",
	}
	r.Use(cors.New(corsConfig))

	// 配置静态文件服务（本地存储的图片通过 /uploads 访问）
	r.Static("/uploads", config.AppConfig.LocalStoragePath)

	// 定义 API 路由
	api := r.Group("/api")
	{
		// 用户相关路由
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.GET("/profile", middleware.AuthMiddleware(), authHandler.GetProfile)

		// 帖子读取对匿名用户开放
		api.GET("/posts", middleware.OptionalAuthMiddleware(), postHandler.ListPosts)
		api.GET("/posts/:id", middleware.OptionalAuthMiddleware(), postHandler.GetPost)

		// 写操作需要认证；作者校验在服务层完成
		api.POST("/posts", middleware.AuthMiddleware(), postHandler.CreatePost)
		api.PUT("/posts/:id", middleware.AuthMiddleware(), postHandler.UpdatePost)
		api.PATCH("/posts/:id", middleware.AuthMiddleware(), postHandler.UpdatePost)
		api.DELETE("/posts/:id", middleware.AuthMiddleware(), postHandler.DeletePost)

		api.POST("/posts/:id/like", middleware.AuthMiddleware(), postHandler.LikePost)
		api.DELETE("/posts/:id/like", middleware.AuthMiddleware(), postHandler.UnlikePost)

		api.POST("/posts/:id/comment", middleware.AuthMiddleware(), postHandler.CreateComment)
		api.POST("/posts/:id/images", middleware.AuthMiddleware(), postHandler.AddPostImage)
	}

	// 创建一个带有超时的 http.Server
	srv := &http.Server{
		Addr:    ":8080",
		Handler: r,
	}

	// 在一个新的 goroutine 中启动服务器
	go func() {
		util.Logger.Info("服务器正在启动，监听端口 :8080")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			util.Logger.Fatal("启动服务器失败", zap.Error(err))
		}
	}()

	// 等待中断信号以优雅地关闭服务器（设置 5 秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	util.Logger.Info("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		util.Logger.Fatal("服务器强制关闭", zap.Error(err))
	}

	util.Logger.Info("服务器已优雅关闭")
}

// newFileStorage 根据配置选择媒体存储后端
func newFileStorage() (storage.FileStorage, error) {
	switch config.AppConfig.StorageBackend {
	case "s3":
		return storage.NewS3Client(config.AppConfig.S3Region, config.AppConfig.S3Bucket)
	case "gcs":
		return storage.NewGCSClient(config.AppConfig.GCSBucketName, config.AppConfig.GCSCredentialsFile)
	default:
		return storage.NewLocalStorage(config.AppConfig.LocalStoragePath)
	}
}
