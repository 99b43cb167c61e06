package router

import (
	"github.com/heyZakaria/01Blog/internal/config"
	"github.com/heyZakaria/01Blog/internal/handler"
	"github.com/heyZakaria/01Blog/internal/middleware"
	"github.com/heyZakaria/01Blog/internal/pkg"
	"github.com/heyZakaria/01Blog/internal/service"
	"github.com/heyZakaria/01Blog/internal/storage"

	"github.com/gin-gonic/gin"
)

func InitRouter(cfg *config.Config, store *storage.FileStore) *gin.Engine {
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	smtpCfg := pkg.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}

	emailSvc := service.NewEmailService(smtpCfg)
	userSvc := service.NewUserService(store)
	postSvc := service.NewPostService(store)
	commentSvc := service.NewCommentService()
	likeSvc := service.NewLikeService()
	subSvc := service.NewSubscriptionService()
	notifSvc := service.NewNotificationService()
	reportSvc := service.NewReportService()
	statsSvc := service.NewStatsService()

	email := handler.NewEmailHandler(emailSvc)
	user := handler.NewUserHandler(userSvc, emailSvc)
	post := handler.NewPostHandler(postSvc)
	comment := handler.NewCommentHandler(commentSvc)
	like := handler.NewLikeHandler(likeSvc)
	sub := handler.NewSubscriptionHandler(subSvc)
	notif := handler.NewNotificationHandler(notifSvc)
	report := handler.NewReportHandler(reportSvc)
	admin := handler.NewAdminHandler(reportSvc, userSvc, statsSvc)
	media := handler.NewMediaHandler(store)

	emailGroup := r.Group("/api/email")
	{
		emailGroup.POST("/:scope/code", email.SendCode)
	}

	userGroup := r.Group("/api/user")
	{
		userGroup.POST("/register", user.Register)
		userGroup.POST("/login", user.Login)
		userGroup.POST("/reset", user.ResetPassword)
	}

	tokenGroup := r.Group("/api/token")
	{
		tokenGroup.POST("/refresh", user.TokenRefresh)
	}

	// Stored media is public by filename; names are unguessable UUIDs.
	r.GET("/api/v1/media/:filename", media.Serve)

	authGroup := r.Group("/api/auth")
	authGroup.Use(middleware.AuthMiddleware())
	{
		authGroup.POST("/logout", user.Logout)
		authGroup.POST("/change-password", user.ChangePassword)
		authGroup.GET("/me", user.Me)
		authGroup.PUT("/me", user.UpdateProfile)
		authGroup.DELETE("/me", user.DeleteAccount)
	}

	usersGroup := r.Group("/api/users")
	usersGroup.Use(middleware.AuthMiddleware())
	{
		usersGroup.GET("/:id", user.GetByID)
		usersGroup.GET("/:id/posts", post.ListByUser)
		usersGroup.GET("/:id/followers", sub.Followers)
		usersGroup.GET("/:id/following", sub.Following)
		usersGroup.GET("/:id/follow-counts", sub.Counts)
		usersGroup.GET("/:id/relation", sub.Relation)
		usersGroup.POST("/:id/follow", sub.Toggle)
		usersGroup.POST("/:id/report", report.Create)
	}

	postGroup := r.Group("/api/posts")
	postGroup.Use(middleware.AuthMiddleware())
	{
		postGroup.POST("", post.Create)
		postGroup.GET("", post.List)
		postGroup.GET("/feed", post.Feed)
		postGroup.GET("/:id", post.GetByID)
		postGroup.PUT("/:id", post.Update)
		postGroup.DELETE("/:id", post.Delete)
		postGroup.POST("/:id/media", post.UploadMedia)
		postGroup.DELETE("/:id/media", post.DeleteMedia)
		postGroup.POST("/:id/like", like.Toggle)
		postGroup.POST("/:id/comments", comment.Create)
		postGroup.GET("/:id/comments", comment.ListByPost)
	}

	commentGroup := r.Group("/api/comments")
	commentGroup.Use(middleware.AuthMiddleware())
	{
		commentGroup.PUT("/:id", comment.Update)
		commentGroup.DELETE("/:id", comment.Delete)
	}

	notifGroup := r.Group("/api/notifications")
	notifGroup.Use(middleware.AuthMiddleware())
	{
		notifGroup.GET("", notif.List)
		notifGroup.GET("/unread-count", notif.UnreadCount)
		notifGroup.POST("/:id/read", notif.MarkRead)
		notifGroup.POST("/read-all", notif.MarkAllRead)
		notifGroup.DELETE("/:id", notif.Delete)
		notifGroup.DELETE("", notif.DeleteAll)
	}

	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.AuthMiddleware(), middleware.AdminOnly())
	{
		adminGroup.GET("/reports", admin.ListReports)
		adminGroup.GET("/reports/:id", admin.GetReport)
		adminGroup.PUT("/reports/:id", admin.ResolveReport)
		adminGroup.DELETE("/reports/:id", admin.DeleteReport)
		adminGroup.GET("/users", admin.ListUsers)
		adminGroup.POST("/users/:id/ban", admin.ToggleBan)
		adminGroup.DELETE("/users/:id", admin.DeleteUser)
		adminGroup.GET("/analytics", admin.Analytics)
	}

	return r
}
