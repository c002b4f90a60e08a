// Package events 实现同一客户端内的数据变更通知。
// 写入方在写成功后发布主题，订阅方收到后重新读取对应集合。
package events

import (
	"log"
	"sync"
)

// Topic 变更主题
type Topic string

const (
	WatchlistUpdate    Topic = "watchlistUpdate"
	WatchHistoryUpdate Topic = "watchHistoryUpdate"
)

// Listener 通知不携带数据，收到后自行读取
type Listener func()

// Publisher 发布变更通知
type Publisher interface {
	Publish(topic Topic)
}

type subscription struct {
	id uint64
	fn Listener
}

// Bus 单个客户端的通知总线，按订阅顺序同步调用监听者
type Bus struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[Topic][]subscription
}

// NewBus 创建通知总线
func NewBus() *Bus {
	return &Bus{subs: make(map[Topic][]subscription)}
}

// Subscribe 订阅主题，返回的函数用于取消订阅，可重复调用
func (b *Bus) Subscribe(topic Topic, fn Listener) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[topic] = append(b.subs[topic], subscription{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.unsubscribe(topic, id) })
	}
}

func (b *Bus) unsubscribe(topic Topic, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.subs[topic]
	for i, s := range subs {
		if s.id == id {
			b.subs[topic] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(b.subs[topic]) == 0 {
		delete(b.subs, topic)
	}
}

// Publish 通知主题的所有当前订阅者
func (b *Bus) Publish(topic Topic) {
	b.mu.Lock()
	snapshot := make([]subscription, len(b.subs[topic]))
	copy(snapshot, b.subs[topic])
	b.mu.Unlock()

	for _, s := range snapshot {
		b.notify(topic, s.fn)
	}
}

func (b *Bus) notify(topic Topic, fn Listener) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Events] %s 监听者 panic: %v", topic, r)
		}
	}()
	fn()
}

// Len 订阅者总数
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, subs := range b.subs {
		n += len(subs)
	}
	return n
}
