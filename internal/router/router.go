package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/user/eazybee/internal/handler"
	"github.com/user/eazybee/internal/middleware"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(middleware.Client(h.Storage))

	// ==================== 变更通知 ====================
	api.GET("/events", h.Events)

	// ==================== 认证 ====================
	auth := api.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)
		auth.POST("/logout", h.Logout)
	}
	authed := auth.Group("")
	authed.Use(middleware.RequireAuth(h.Config.AppSecret))
	{
		authed.GET("/me", h.Me)
		authed.PUT("/profile", h.UpdateProfile)
	}

	// ==================== 片源目录 ====================
	catalog := api.Group("/catalog")
	{
		catalog.GET("/trending/:mediaType/:window", h.Trending)
		catalog.GET("/popular/:mediaType", h.Popular)
		catalog.GET("/details/:mediaType/:id", h.Details)
		catalog.GET("/search", h.Search)
		catalog.GET("/discover/:mediaType", h.Discover)
		catalog.GET("/genres/:mediaType", h.Genres)
		catalog.GET("/videos/:mediaType/:id", h.Videos)
		catalog.GET("/recommendations/:mediaType/:id", h.Recommendations)
		catalog.GET("/similar/:mediaType/:id", h.Similar)
	}

	// ==================== 本地内容 ====================
	api.GET("/content", h.LocalContent)
	api.GET("/announcements", h.Announcements)

	// ==================== 个人数据（需要登录）====================
	user := api.Group("")
	user.Use(middleware.RequireAuth(h.Config.AppSecret))
	{
		user.GET("/watchlist", h.Watchlist)
		user.POST("/watchlist/toggle", h.ToggleWatchlist)
		user.GET("/watchlist/:mediaType/:id", h.WatchlistStatus)
		user.DELETE("/watchlist/:mediaType/:id", h.RemoveWatchlist)

		user.GET("/history", h.History)
		user.POST("/history", h.RecordHistory)
		user.DELETE("/history/:id", h.RemoveHistory)
		user.DELETE("/history", h.ClearHistory)

		user.GET("/continue-watching", h.ContinueWatching)
		user.POST("/continue-watching", h.StartWatching)
		user.POST("/continue-watching/:id/advance", h.AdvanceWatching)
		user.DELETE("/continue-watching/:id", h.RemoveWatching)

		user.GET("/comments/:mediaType/:mediaId", h.Comments)
		user.POST("/comments/:mediaType/:mediaId", h.AddComment)
	}

	// ==================== 管理后台 ====================
	admin := api.Group("/admin")
	admin.Use(middleware.RequireAuth(h.Config.AppSecret), middleware.RequireAdmin())
	{
		admin.GET("/stats", h.AdminStats)

		admin.GET("/content", h.AdminContent)
		admin.POST("/content", h.AdminContentCreate)
		admin.PUT("/content/:id", h.AdminContentUpdate)
		admin.DELETE("/content/:id", h.AdminContentDelete)

		admin.GET("/users", h.AdminUsers)
		admin.POST("/users", h.AdminUserCreate)
		admin.PUT("/users/:id", h.AdminUserUpdate)
		admin.DELETE("/users/:id", h.AdminUserDelete)

		admin.GET("/announcements", h.Announcements)
		admin.POST("/announcements", h.AdminAnnouncementCreate)
		admin.DELETE("/announcements/:id", h.AdminAnnouncementDelete)

		admin.GET("/settings", h.AdminSettings)
		admin.PUT("/settings", h.AdminSettingsUpdate)
	}
}
