package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ppa-connect/backend/config"
	"ppa-connect/backend/internal/api/handler"
	"ppa-connect/backend/internal/api/middleware"
	"ppa-connect/backend/internal/service"
	"ppa-connect/backend/pkg/jwt"
	"ppa-connect/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(
	cfg *config.Config,
	h *handler.Handler,
	svc *service.Service,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(16 << 20)) // 核验文档走 multipart，上限放宽到 16MB

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证；登录注册带速率限制）
		auth := v1.Group("/auth")
		{
			auth.POST("/register", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Register)
			auth.POST("/login", middleware.RateLimit(rdb, 20, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 公开模块（可选认证：登录用户附带收藏/名次等视角信息）
		public := v1.Group("")
		public.Use(middleware.OptionalJWTAuth(jwtMgr, rdb))
		{
			public.GET("/postings", h.Posting.List)
			public.GET("/postings/featured", h.Posting.ListFeatured)
			public.GET("/postings/:id", h.Posting.Get)
			public.GET("/postings/:id/reviews", h.Review.ListByPosting)
			public.GET("/leaderboard", h.Leaderboard.List)
			public.GET("/users/:id/profile", h.User.GetPublicProfile)
			public.POST("/marketplace/subscribe", middleware.RateLimit(rdb, 10, time.Minute), h.Marketplace.Subscribe)
			public.POST("/marketplace/feedback", middleware.RateLimit(rdb, 10, time.Minute), h.Marketplace.SubmitFeedback)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		authorized.Use(middleware.Activity(svc.User))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 用户资料模块
			users := authorized.Group("/users")
			{
				users.GET("/me/profile", h.User.GetMyProfile)
				users.PUT("/me/profile", h.User.UpdateMyProfile)
				users.PUT("/me/notify-prefs", h.User.UpdateNotifyPrefs)
				users.POST("/:id/follow", h.User.ToggleFollow)
			}

			// 岗位模块
			postings := authorized.Group("/postings")
			{
				postings.POST("", h.Posting.Create)
				postings.PUT("/:id", h.Posting.Update)
				postings.DELETE("/:id", h.Posting.Delete)
				postings.POST("/:id/verification", middleware.RateLimit(rdb, 5, time.Minute), h.Posting.SubmitVerification)
				postings.POST("/:id/reviews", h.Review.Submit)
				postings.POST("/:id/bookmark", h.Bookmark.Toggle)
			}

			// 评价模块
			authorized.DELETE("/reviews/:id", h.Review.Delete)

			// 收藏模块
			authorized.GET("/bookmarks", h.Bookmark.List)

			// 通知模块
			notifications := authorized.Group("/notifications")
			{
				notifications.GET("", h.Notification.List)
				notifications.GET("/unread-count", h.Notification.UnreadCount)
				notifications.PUT("/read-all", h.Notification.MarkAllRead)
				notifications.PUT("/:id/read", h.Notification.MarkRead)
				notifications.DELETE("", h.Notification.ClearAll)
			}

			// 管理端
			admin := authorized.Group("/admin")
			admin.Use(middleware.RoleAuth("admin"))
			{
				admin.POST("/leaderboard/reset", h.Leaderboard.Reset)
				admin.PUT("/postings/:id/verification", h.Posting.ReviewVerification)
				admin.POST("/notifications/sweep", h.Notification.SweepExpired)
				admin.GET("/marketplace/stats", h.Marketplace.Stats)
				admin.GET("/export/leaderboard", h.Export.ExportLeaderboard)
			}
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
