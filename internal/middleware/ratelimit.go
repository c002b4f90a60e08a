package middleware

import (
	"sync"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/user/eazybee/internal/utils"
)

// RateLimit 按客户端 IP 的令牌桶限流，rps <= 0 时不限流
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if burst <= 0 {
		burst = 1
	}

	var mu sync.Mutex
	limiters, _ := lru.New[string, *rate.Limiter](4096)

	limiter := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		if l, ok := limiters.Get(ip); ok {
			return l
		}
		l := rate.NewLimiter(rate.Limit(rps), burst)
		limiters.Add(ip, l)
		return l
	}

	return func(c *gin.Context) {
		if !limiter(c.ClientIP()).Allow() {
			utils.TooManyRequests(c, "")
			c.Abort()
			return
		}
		c.Next()
	}
}
