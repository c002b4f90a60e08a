package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger 请求日志中间件，skip 中的路径不记录
func Logger(skip ...string) gin.HandlerFunc {
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		if _, ok := skipped[path]; ok {
			return
		}

		ns := Namespace(c)
		if ns == "" {
			ns = "-"
		}
		log.Printf("[%s] %s %s %s %d %v",
			c.Request.Method,
			path,
			c.ClientIP(),
			ns,
			c.Writer.Status(),
			time.Since(start),
		)
		for _, e := range c.Errors {
			log.Printf("[HTTP] %s %s: %v", c.Request.Method, path, e.Err)
		}
	}
}
