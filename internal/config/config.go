package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config 应用配置
type Config struct {
	Env       string
	AppSecret string
	Port      string
	SiteName  string
	JWTExpiry time.Duration

	// 片源目录 API
	TMDBAPIKey       string
	TMDBBaseURL      string
	TMDBImageBaseURL string
	TMDBTimeout      time.Duration

	// 本地存储
	StorageDriver     string // memory / file / sqlite / postgres
	StorageDir        string
	SQLitePath        string
	DatabaseURL       string
	StorageQuotaBytes int64
	SessionCacheSize  int

	// 目录查询缓存
	CatalogCacheSize int
	CatalogCacheTTL  time.Duration

	// 限流与跨域
	RateLimitRPS   float64
	RateLimitBurst int
	CORSOrigins    []string

	// 日志
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
}

// Load 加载配置
func Load() *Config {
	expiryHours := getEnvInt("JWT_EXPIRY_HOURS", 72)

	dbUser := getEnv("DB_USER", "postgres")
	dbPass := getEnv("DB_PASSWORD", "postgres")
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbName := getEnv("DB_NAME", "eazybee")
	dbSSL := getEnv("DB_SSLMODE", "disable")

	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		dbUser, dbPass, dbHost, dbPort, dbName, dbSSL)

	appSecret := getEnv("APP_SECRET", getEnv("JWT_SECRET", "your-secret-key-change-in-production"))

	if getEnv("APP_ENV", "development") == "production" && appSecret == "your-secret-key-change-in-production" {
		fmt.Println("【严重警告】生产环境正在使用默认密钥！请立即设置 APP_SECRET 环境变量。")
	}

	rps, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "10"), 64)
	if err != nil {
		rps = 10
	}

	return &Config{
		Env:       getEnv("APP_ENV", "development"),
		AppSecret: appSecret,
		Port:      getEnv("PORT", "5005"),
		SiteName:  getEnv("SITE_NAME", "EazyBee"),
		JWTExpiry: time.Duration(expiryHours) * time.Hour,

		TMDBAPIKey:       getEnv("TMDB_API_KEY", ""),
		TMDBBaseURL:      strings.TrimRight(getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"), "/"),
		TMDBImageBaseURL: strings.TrimRight(getEnv("TMDB_IMAGE_BASE_URL", "https://image.tmdb.org/t/p"), "/"),
		TMDBTimeout:      time.Duration(getEnvInt("TMDB_TIMEOUT_SECONDS", 15)) * time.Second,

		StorageDriver:     strings.ToLower(getEnv("STORAGE_DRIVER", "file")),
		StorageDir:        getEnv("STORAGE_DIR", "./data"),
		SQLitePath:        getEnv("SQLITE_PATH", "./data/eazybee.db"),
		DatabaseURL:       dbURL,
		StorageQuotaBytes: int64(getEnvInt("STORAGE_QUOTA_BYTES", 0)),
		SessionCacheSize:  getEnvInt("SESSION_CACHE_SIZE", 1024),

		CatalogCacheSize: getEnvInt("CATALOG_CACHE_SIZE", 500),
		CatalogCacheTTL:  time.Duration(getEnvInt("CATALOG_CACHE_TTL_MINUTES", 5)) * time.Minute,

		RateLimitRPS:   rps,
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 20),
		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "http://localhost:8080")),

		LogFile:       getEnv("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 50),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 14),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, strconv.Itoa(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}
