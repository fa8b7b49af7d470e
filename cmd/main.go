package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"publishhub-backend/config"
	"publishhub-backend/internal/api/feed"
	"publishhub-backend/internal/api/post"
	"publishhub-backend/internal/api/social"
	"publishhub-backend/internal/api/user"
	"publishhub-backend/internal/common"
	"publishhub-backend/internal/middleware"
	"publishhub-backend/internal/repository/interfaces"
	"publishhub-backend/internal/repository/memory"
	"publishhub-backend/internal/repository/mysql"
	"publishhub-backend/internal/service"
	"publishhub-backend/internal/storage"
	"publishhub-backend/internal/util"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			util.Logger.Error("程序发生严重错误", zap.Any("error", r))
		}
	}()

	// 初始化配置
	config.Init()

	// 初始化日志
	util.InitLogger(config.AppConfig.LogLevel)
	defer util.Logger.Sync()

	util.Logger.Info("应用程序启动")

	// 根据配置选择数据后端
	var (
		userRepo    interfaces.UserRepository
		contentRepo interfaces.ContentRepository
		socialRepo  interfaces.SocialRepository
	)

	if config.AppConfig.StoreBackend == "mysql" {
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			config.AppConfig.DBUser,
			config.AppConfig.DBPassword,
			config.AppConfig.DBHost,
			config.AppConfig.DBPort,
			config.AppConfig.DBName)

		db, err := sql.Open("mysql", dsn)
		if err != nil {
			util.Logger.Fatal("连接数据库失败", zap.Error(err))
		}
		defer db.Close()

		if err := common.WithRetry(db.Ping, 3); err != nil {
			util.Logger.Fatal("数据库连接测试失败", zap.Error(err))
		}
		util.Logger.Info("数据库连接成功")

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)

		userRepo = mysql.NewUserRepository(db)
		contentRepo = mysql.NewContentRepository(db)
		socialRepo = mysql.NewSocialRepository(db)
	} else {
		util.Logger.Info("使用内存数据后端")
		userRepo = memory.NewUserRepository()
		contentRepo = memory.NewContentRepository()
		socialRepo = memory.NewSocialRepository()
	}

	// 注册自定义验证器
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("post_status", util.ValidatePostStatus)
	}

	// 根据配置选择文件存储后端
	var uploader storage.Uploader
	var err error
	switch config.AppConfig.StorageBackend {
	case "s3":
		uploader, err = storage.NewS3Client(config.AppConfig.S3Region, config.AppConfig.S3Bucket)
	case "gcs":
		uploader, err = storage.NewGCSClient(
			config.AppConfig.GCSProjectID,
			config.AppConfig.GCSBucketName,
			config.AppConfig.GCSCredentialsFile)
	default:
		ensureUploadsFolder()
		uploader, err = storage.NewLocalStorage(config.AppConfig.LocalStoragePath)
	}
	if err != nil {
		util.Logger.Fatal("初始化文件存储失败", zap.Error(err))
	}

	// 初始化服务和处理器
	userService := service.NewUserService(userRepo)
	contentService := service.NewContentService(contentRepo)
	socialService := service.NewSocialService(socialRepo)
	feedService := service.NewFeedService(contentRepo)

	authHandler := user.NewAuthHandler(userService)
	profileHandler := user.NewProfileHandler(userService, uploader)
	postHandler := post.NewPostHandler(contentService, userService, uploader)
	feedHandler := feed.NewFeedHandler(feedService, contentService)
	socialHandler := social.NewSocialHandler(socialService, contentService, userService)

	// 初始化错误监控
	errorMonitor := middleware.NewErrorMonitor()

	// 设置 Gin 路由
	r := gin.Default()

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
	corsConfig.ExposeHeaders = []string{
		"Content-Length",
		"Content-Type",
		"Access-Control-Allow-Origin",
	}
	r.Use(cors.New(corsConfig))

	// 静态文件的CORS处理
	r.Use(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/uploads/") {
			c.Header("Access-Control-Allow-Origin", config.AppConfig.FrontendURL)
			c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Origin, Content-Type")

			if c.Request.Method == "OPTIONS" {
				c.AbortWithStatus(200)
				return
			}
		}
		c.Next()
	})

	// 配置静态文件服务
	if config.AppConfig.StorageBackend == "local" {
		r.Static("/uploads", config.AppConfig.LocalStoragePath)
	}

	// 定义 API 路由
	api := r.Group("/api")
	{
		// 认证相关路由
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		// 需要认证的路由
		authorized := api.Group("/")
		authorized.Use(middleware.AuthMiddleware(userService))
		{
			authorized.GET("/profile", profileHandler.GetProfile)
			authorized.PUT("/profile", profileHandler.UpdateProfile)
			authorized.POST("/logout", authHandler.Logout)
			authorized.POST("/refresh-token", authHandler.RefreshToken)
			authorized.POST("/profile/avatar", profileHandler.UploadAvatar)
		}

		// 文章相关路由
		api.POST("/posts", middleware.AuthMiddleware(userService), postHandler.CreatePost)
		api.GET("/posts/:id", postHandler.GetPost)
		api.PUT("/posts/:id", middleware.AuthMiddleware(userService), postHandler.UpdatePost)
		api.DELETE("/posts/:id", middleware.AuthMiddleware(userService), postHandler.DeletePost)
		api.GET("/posts/slug/:slug", postHandler.GetPostBySlug)
		api.GET("/my/posts", middleware.AuthMiddleware(userService), postHandler.GetMyPosts)
		api.POST("/posts/cover", middleware.AuthMiddleware(userService), postHandler.UploadCoverImage)

		// 信息流、搜索和标签
		api.GET("/feed", feedHandler.GetFeed)
		api.GET("/search", feedHandler.SearchPosts)
		api.GET("/tags", feedHandler.GetTagCloud)
		api.GET("/posts-by-tags", feedHandler.GetPostsByTags)

		// 评论相关路由
		api.POST("/comments", middleware.AuthMiddleware(userService), socialHandler.CreateComment)
		api.GET("/comments", socialHandler.GetComments)
		api.GET("/comments/:id/replies", socialHandler.GetReplies)
		api.DELETE("/comments/:id", middleware.AuthMiddleware(userService), socialHandler.DeleteComment)

		// 点赞相关路由
		api.POST("/posts/:id/reactions", middleware.AuthMiddleware(userService), socialHandler.ToggleReaction)
		api.GET("/posts/:id/reactions", socialHandler.GetReactionStatus)

		// 关注相关路由
		api.POST("/users/:id/follow", middleware.AuthMiddleware(userService), socialHandler.ToggleFollow)
		api.GET("/users/:id/follow/status", socialHandler.GetFollowStatus)

		// 用户公开信息和作者文章
		api.GET("/users/:id", profileHandler.GetUser)
		api.GET("/users/:id/posts", postHandler.GetPostsByAuthor)
	}

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

	// 等待中断信号以优雅地关闭服务器
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

// 确保上传文件夹存在
func ensureUploadsFolder() {
	uploadsPath := config.AppConfig.LocalStoragePath
	if err := os.MkdirAll(uploadsPath, 0755); err != nil {
		util.Logger.Fatal("创建上传文件夹失败", zap.Error(err), zap.String("path", uploadsPath))
	}
}
