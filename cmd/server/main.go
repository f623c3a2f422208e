package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"social-system/config"
	"social-system/internal/handler"
	"social-system/internal/model"
	"social-system/internal/repository"
	"social-system/internal/service"
	"social-system/pkg/db"
	"social-system/pkg/jwt"
	"social-system/pkg/logger"
	"social-system/pkg/ratelimit"
	"social-system/pkg/redis"
	"social-system/pkg/response"
	"social-system/pkg/storage"
	"social-system/pkg/websocket"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.InitLogger(cfg.Log)
	defer logger.Sync()

	if _, err := db.InitDB(cfg.Database); err != nil {
		logger.Fatal("init database failed", zap.Error(err))
	}
	defer db.CloseDB()

	if err := db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Post{},
		&model.Comment{},
		&model.Like{},
		&model.Friendship{},
		&model.Notification{},
	); err != nil {
		logger.Fatal("auto migrate failed", zap.Error(err))
	}

	if err := redis.InitRedis(cfg.Redis); err != nil {
		// degraded mode: presence and unread counters fall back to the store
		logger.Warn("init redis failed, continuing without cache", zap.Error(err))
	} else {
		defer redis.Close()
	}

	var media service.MediaStorage
	if objectStore, err := storage.NewObjectStorage(context.Background(), cfg.ObjectStore); err != nil {
		logger.Warn("object storage unavailable, media uploads disabled", zap.Error(err))
	} else {
		media = objectStore
	}

	gormDB := db.GetDB()
	userRepo := repository.NewUserRepository(gormDB)
	profileRepo := repository.NewProfileRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)
	likeRepo := repository.NewLikeRepository(gormDB)
	friendshipRepo := repository.NewFriendshipRepository(gormDB)
	notifyRepo := repository.NewNotificationRepository(gormDB)
	adminRepo := repository.NewAdminRepository(gormDB)

	jwtService := jwt.NewJWTService(cfg.JWT)

	notifyService := service.NewNotificationService(notifyRepo, userRepo, websocket.GetManager())
	friendshipService := service.NewFriendshipService(friendshipRepo, userRepo, notifyService, cfg.Friendship.AllowRerequestAfterDecline)
	userService := service.NewUserService(userRepo, jwtService)
	profileService := service.NewProfileService(profileRepo, userRepo, friendshipService, media)
	postService := service.NewPostService(postRepo, likeRepo)
	commentService := service.NewCommentService(commentRepo, postRepo, notifyService)
	likeService := service.NewLikeService(likeRepo, postRepo, notifyService)
	adminService := service.NewAdminService(adminRepo)

	userHandler := handler.NewUserHandler(userService)
	profileHandler := handler.NewProfileHandler(profileService)
	friendshipHandler := handler.NewFriendshipHandler(friendshipService)
	postHandler := handler.NewPostHandler(postService, likeService)
	commentHandler := handler.NewCommentHandler(commentService)
	notifyHandler := handler.NewNotificationHandler(notifyService)
	adminHandler := handler.NewAdminHandler(adminService)

	authLimiter := ratelimit.NewKeyedLimiter(
		cfg.RateLimit.Requests,
		cfg.RateLimit.Window,
		cfg.RateLimit.Burst,
		cfg.RateLimit.TTL,
	)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(logger.RequestIDMiddleware())
	router.Use(logger.LoggerMiddleware())
	router.Use(logger.ErrorLoggerMiddleware())
	router.Use(func(c *gin.Context) {
		c.Set("jwt_config", cfg.JWT)
		c.Set("ws_config", cfg.WebSocket)
		c.Next()
	})

	router.GET("/health", func(c *gin.Context) {
		if err := db.HealthCheck(); err != nil {
			response.InternalError(c, "database unavailable")
			return
		}
		response.Success(c, gin.H{"status": "ok"})
	})

	auth := jwtService.AuthMiddleware()

	v1 := router.Group("/api/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", ratelimit.Middleware(authLimiter), userHandler.Register)
			authGroup.POST("/login", ratelimit.Middleware(authLimiter), userHandler.Login)
			authGroup.GET("/me", auth, userHandler.Me)
			authGroup.POST("/change-password", auth, userHandler.ChangePassword)
			authGroup.POST("/logout", auth, userHandler.Logout)
		}

		users := v1.Group("/users", auth)
		{
			users.GET("/search", profileHandler.Search)
			users.GET("/:userId", profileHandler.GetUser)
			users.GET("/:userId/posts", postHandler.ListByUser)
			users.PUT("/me/profile", profileHandler.UpdateProfile)
			users.PUT("/me/avatar", profileHandler.UpdateAvatar)
			users.PUT("/me/cover", profileHandler.UpdateCover)
		}

		friendships := v1.Group("/friendships", auth)
		{
			friendships.POST("", friendshipHandler.SendRequest)
			friendships.PUT("/:requestId", friendshipHandler.Respond)
			friendships.GET("", friendshipHandler.ListFriends)
			friendships.GET("/pending", friendshipHandler.ListPending)
		}

		posts := v1.Group("/posts", auth)
		{
			posts.POST("", postHandler.Create)
			posts.GET("", postHandler.Feed)
			posts.GET("/:postId", postHandler.Get)
			posts.DELETE("/:postId", postHandler.Delete)
			posts.POST("/:postId/likes", postHandler.Like)
			posts.DELETE("/:postId/likes", postHandler.Unlike)
			posts.POST("/:postId/comments", commentHandler.Create)
			posts.GET("/:postId/comments", commentHandler.List)
		}

		comments := v1.Group("/comments", auth)
		{
			comments.DELETE("/:commentId", commentHandler.Delete)
		}

		notifications := v1.Group("/notifications", auth)
		{
			notifications.GET("", notifyHandler.List)
			notifications.GET("/unread-count", notifyHandler.UnreadCount)
			notifications.PUT("/:notificationId/read", notifyHandler.MarkRead)
			notifications.PUT("/read-all", notifyHandler.MarkAllRead)
		}

		admin := v1.Group("/admin", auth, jwt.RequireRole(model.RoleAdmin))
		{
			admin.GET("/stats", adminHandler.Stats)
			admin.GET("/login-activity", adminHandler.LoginActivity)
			admin.GET("/likes", adminHandler.Likes)
			admin.GET("/comments", adminHandler.Comments)
		}
	}

	router.GET("/ws", websocket.WsHandler)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
}
