package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata" // 确保在精简镜像中也能识别时区

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"

	"github.com/user/eazybee/internal/config"
	"github.com/user/eazybee/internal/events"
	"github.com/user/eazybee/internal/handler"
	"github.com/user/eazybee/internal/middleware"
	"github.com/user/eazybee/internal/router"
	"github.com/user/eazybee/internal/service"
	"github.com/user/eazybee/internal/storage"
	"github.com/user/eazybee/internal/utils"
)

func main() {
	// 加载环境变量
	if err := godotenv.Load(); err != nil {
		log.Println("未找到 .env 文件，使用系统环境变量")
	}

	// 加载配置
	cfg := config.Load()

	logCloser := utils.InitLogger(cfg)
	defer logCloser.Close()

	if cfg.TMDBAPIKey == "" {
		log.Println("[Catalog] 未设置 TMDB_API_KEY，片源目录请求将被拒绝")
	}

	// 初始化存储
	backend, err := openBackend(cfg)
	if err != nil {
		log.Fatalf("存储初始化失败: %v", err)
	}
	manager, err := storage.NewManager(backend, cfg.SessionCacheSize)
	if err != nil {
		log.Fatalf("存储初始化失败: %v", err)
	}
	defer manager.Close()

	// 初始化缓存
	utils.InitCache()

	catalog := service.NewCatalogCache(service.NewCatalogClient(cfg), cfg.CatalogCacheSize, cfg.CatalogCacheTTL)
	h := handler.NewHandler(cfg, manager, events.NewHub(), catalog)

	// 初始化 Gin
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger("/health"))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.ClientHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// SSE 需要逐条刷新，不压缩
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/api/events"})))

	// 设置 Session 中间件，只保存客户端命名空间 id
	store := cookie.NewStore([]byte(cfg.AppSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 365,
		HttpOnly: true,
		Secure:   cfg.Env == "production",
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("eazybee", store))

	r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	// 注册路由
	router.RegisterRoutes(r, h)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// SSE 连接是长连接，不设置写超时
		MaxHeaderBytes: 1 << 20,
	}

	// 在 goroutine 中启动服务器，这样我们就可以监听信号
	go func() {
		log.Printf("服务器启动于 http://localhost:%s (存储: %s)", cfg.Port, cfg.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("服务器启动失败: %v", err)
		}
	}()

	// 等待中断信号以优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Println("服务器强制关闭:", err)
	}

	log.Println("服务器已退出")
}

// openBackend 按 STORAGE_DRIVER 选择存储
func openBackend(cfg *config.Config) (storage.Store, error) {
	switch cfg.StorageDriver {
	case "memory":
		return storage.NewMemoryStore(cfg.StorageQuotaBytes), nil
	case "file":
		return storage.NewFileStore(afero.NewOsFs(), cfg.StorageDir)
	case "sqlite":
		return storage.NewSQLiteStore(cfg.SQLitePath)
	case "postgres":
		db, err := storage.InitDB(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return storage.NewPostgresStore(db)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
