package repository

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/user/eazybee/internal/storage"
)

// Collection 存储在单个 key 下的有序记录集合。
// 每次操作都重新读取存储，不缓存成员关系。
type Collection[T any] struct {
	store storage.Store
	key   string
}

// NewCollection 创建集合
func NewCollection[T any](store storage.Store, key string) *Collection[T] {
	return &Collection[T]{store: store, key: key}
}

// Read 读取整个集合，key 不存在或数据损坏时返回空集合
func (c *Collection[T]) Read() []T {
	raw, ok, err := c.store.Get(c.key)
	if err != nil {
		log.Printf("[Repository] 读取 %s 失败: %v", c.key, err)
		return []T{}
	}
	if !ok || len(raw) == 0 {
		return []T{}
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Printf("[Repository] %v: %s: %v", storage.ErrStorageCorrupt, c.key, err)
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

// Write 整体替换集合
func (c *Collection[T]) Write(items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	return c.store.Set(c.key, data)
}

// Find 返回第一条匹配记录
func (c *Collection[T]) Find(match func(T) bool) (T, bool) {
	for _, item := range c.Read() {
		if match(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// ToggleMembership 存在匹配记录则全部移除，否则追加 rec。
// 返回操作后 rec 是否在集合中。
func (c *Collection[T]) ToggleMembership(match func(T) bool, rec T) (bool, error) {
	items := c.Read()
	kept := items[:0:0]
	for _, item := range items {
		if !match(item) {
			kept = append(kept, item)
		}
	}
	if len(kept) < len(items) {
		return false, c.Write(kept)
	}
	return true, c.Write(append(items, rec))
}

// UpsertFront 移除匹配记录后把 rec 放到最前
func (c *Collection[T]) UpsertFront(match func(T) bool, rec T) error {
	items := c.Read()
	out := make([]T, 0, len(items)+1)
	out = append(out, rec)
	for _, item := range items {
		if !match(item) {
			out = append(out, item)
		}
	}
	return c.Write(out)
}

// Append 追加到末尾
func (c *Collection[T]) Append(rec T) error {
	return c.Write(append(c.Read(), rec))
}

// Prepend 插入到最前
func (c *Collection[T]) Prepend(rec T) error {
	return c.Write(append([]T{rec}, c.Read()...))
}

// RemoveWhere 删除所有匹配记录，没有匹配时不写入
func (c *Collection[T]) RemoveWhere(match func(T) bool) (int, error) {
	items := c.Read()
	kept := make([]T, 0, len(items))
	for _, item := range items {
		if !match(item) {
			kept = append(kept, item)
		}
	}
	removed := len(items) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	return removed, c.Write(kept)
}

// ReplaceWhere 原位替换第一条匹配记录
func (c *Collection[T]) ReplaceWhere(match func(T) bool, rec T) (bool, error) {
	items := c.Read()
	for i, item := range items {
		if match(item) {
			items[i] = rec
			return true, c.Write(items)
		}
	}
	return false, nil
}

// Clear 清空集合（写入空数组）
func (c *Collection[T]) Clear() error {
	return c.Write([]T{})
}
