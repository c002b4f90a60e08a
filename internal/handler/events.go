package handler

import (
	"io"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/user/eazybee/internal/events"
	"github.com/user/eazybee/internal/middleware"
)

// Events 以 SSE 推送当前命名空间的变更通知，只发送主题名，不携带数据
func (h *Handler) Events(c *gin.Context) {
	ns := middleware.Namespace(c)
	topics := []events.Topic{events.WatchlistUpdate, events.WatchHistoryUpdate}

	// 每个主题一个容量为 1 的通道，未送达的重复通知合并
	pending := make(map[events.Topic]chan struct{}, len(topics))
	for _, topic := range topics {
		ch := make(chan struct{}, 1)
		pending[topic] = ch
		unsubscribe := h.Hub.Subscribe(ns, topic, func() {
			select {
			case ch <- struct{}{}:
			default:
			}
		})
		defer unsubscribe()
	}

	keepAlive := h.KeepAlive
	if keepAlive <= 0 {
		keepAlive = 25 * time.Second
	}
	ticker := time.NewTicker(keepAlive)
	defer ticker.Stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("ready", ns)
	c.Writer.Flush()

	log.Printf("[Events] %s 已连接", ns)
	defer log.Printf("[Events] %s 已断开", ns)

	watchlist := pending[events.WatchlistUpdate]
	history := pending[events.WatchHistoryUpdate]
	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case <-watchlist:
			c.SSEvent(string(events.WatchlistUpdate), "")
		case <-history:
			c.SSEvent(string(events.WatchHistoryUpdate), "")
		case <-ticker.C:
			c.SSEvent("ping", "")
		}
		return true
	})
}
