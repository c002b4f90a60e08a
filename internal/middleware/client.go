package middleware

import (
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/user/eazybee/internal/storage"
	"github.com/user/eazybee/internal/utils"
)

const (
	// ClientHeader 非浏览器客户端可以直接指定命名空间
	ClientHeader = "X-EazyBee-Client"

	ContextNamespace = "namespace"
	ContextStore     = "store"

	sessionClientKey = "client_id"
)

// Client 为每个浏览器分配命名空间并打开对应的存储
func Client(manager *storage.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		namespace := c.GetHeader(ClientHeader)
		fromHeader := storage.ValidNamespace(namespace)
		if !fromHeader {
			session := sessions.Default(c)
			namespace, _ = session.Get(sessionClientKey).(string)
			if !storage.ValidNamespace(namespace) {
				namespace = uuid.NewString()
				session.Set(sessionClientKey, namespace)
				if err := session.Save(); err != nil {
					log.Printf("[Client] 保存会话失败: %v", err)
				}
			}
		}

		store, err := manager.Open(namespace)
		if err != nil {
			log.Printf("[Client] 打开存储失败 (%s): %v", namespace, err)
			utils.InternalServerError(c, "")
			c.Abort()
			return
		}

		c.Set(ContextNamespace, namespace)
		c.Set(ContextStore, store)
		// cookie 分配的命名空间不回写，避免被页面脚本读到
		if fromHeader {
			c.Header(ClientHeader, namespace)
		}
		c.Next()
	}
}

// Namespace 当前请求的命名空间
func Namespace(c *gin.Context) string {
	return c.GetString(ContextNamespace)
}

// Store 当前请求的命名空间存储
func Store(c *gin.Context) *storage.Session {
	if v, exists := c.Get(ContextStore); exists {
		if s, ok := v.(*storage.Session); ok {
			return s
		}
	}
	return nil
}
