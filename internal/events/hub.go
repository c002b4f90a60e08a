package events

import "sync"

// Hub 按客户端命名空间管理通知总线
type Hub struct {
	mu    sync.Mutex
	buses map[string]*Bus
}

// NewHub 创建 Hub
func NewHub() *Hub {
	return &Hub{buses: make(map[string]*Bus)}
}

// Subscribe 订阅某个命名空间下的主题
func (h *Hub) Subscribe(namespace string, topic Topic, fn Listener) func() {
	h.mu.Lock()
	bus, ok := h.buses[namespace]
	if !ok {
		bus = NewBus()
		h.buses[namespace] = bus
	}
	unsubscribe := bus.Subscribe(topic, fn)
	h.mu.Unlock()

	return func() {
		unsubscribe()
		h.mu.Lock()
		defer h.mu.Unlock()
		if h.buses[namespace] == bus && bus.Len() == 0 {
			delete(h.buses, namespace)
		}
	}
}

// Publish 没有订阅者时什么也不做
func (h *Hub) Publish(namespace string, topic Topic) {
	h.mu.Lock()
	bus, ok := h.buses[namespace]
	h.mu.Unlock()
	if ok {
		bus.Publish(topic)
	}
}

// Publisher 返回绑定到命名空间的发布者
func (h *Hub) Publisher(namespace string) Publisher {
	return namespacePublisher{hub: h, namespace: namespace}
}

type namespacePublisher struct {
	hub       *Hub
	namespace string
}

func (p namespacePublisher) Publish(topic Topic) {
	p.hub.Publish(p.namespace, topic)
}

// Discard 丢弃所有通知
var Discard Publisher = discard{}

type discard struct{}

func (discard) Publish(Topic) {}
