package handler

import (
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/user/eazybee/internal/config"
	"github.com/user/eazybee/internal/events"
	"github.com/user/eazybee/internal/middleware"
	"github.com/user/eazybee/internal/repository"
	"github.com/user/eazybee/internal/service"
	"github.com/user/eazybee/internal/storage"
	"github.com/user/eazybee/internal/utils"
)

// Handler HTTP 处理器
type Handler struct {
	Config    *config.Config
	Storage   *storage.Manager
	Hub       *events.Hub
	Catalog   *service.CatalogCache
	Validate  *validator.Validate
	IDs       *service.IDGenerator
	KeepAlive time.Duration
}

// NewHandler 创建处理器
func NewHandler(cfg *config.Config, manager *storage.Manager, hub *events.Hub, catalog *service.CatalogCache) *Handler {
	return &Handler{
		Config:    cfg,
		Storage:   manager,
		Hub:       hub,
		Catalog:   catalog,
		Validate:  validator.New(),
		IDs:       service.NewIDGenerator(),
		KeepAlive: 25 * time.Second,
	}
}

// repos 当前客户端命名空间下的集合，变更通知发往同一命名空间
func (h *Handler) repos(c *gin.Context) *repository.Repositories {
	return repository.New(middleware.Store(c), h.Hub.Publisher(middleware.Namespace(c)))
}

func (h *Handler) auth(c *gin.Context) *service.AuthService {
	return service.NewAuthService(repository.NewSessionRepository(middleware.Store(c)), h.Config.AppSecret, h.Config.JWTExpiry)
}

func (h *Handler) admin(c *gin.Context) *service.AdminService {
	return service.NewAdminService(h.repos(c), h.Validate, h.IDs, h.Config.SiteName)
}

// respondWrite 统一处理写入结果。
// 超出配额不算致命错误：数据在当前会话内保留，返回 507 并附带结果。
func respondWrite(c *gin.Context, err error, message string, data interface{}) {
	switch {
	case err == nil:
		utils.SuccessWithMessage(c, message, data)
	case errors.Is(err, storage.ErrQuotaExceeded):
		utils.InsufficientStorage(c, "", data)
	default:
		log.Printf("[Handler] %s %s 写入失败: %v", c.Request.Method, c.Request.URL.Path, err)
		utils.InternalServerError(c, "")
	}
}

// paramID 解析路径中的数字 id
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		utils.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}
