// Package storage 提供按 key 保存整段 JSON 的键值存储，
// 对应浏览器端 localStorage 的语义：读写同步、整值覆盖、后写者胜。
package storage

import (
	"errors"
	"strings"
)

var (
	ErrKeyRequired       = errors.New("storage key is required")
	ErrInvalidKey        = errors.New("storage key is invalid")
	ErrNamespaceRequired = errors.New("storage namespace is required")
	ErrQuotaExceeded     = errors.New("storage quota exceeded")
	ErrStorageCorrupt    = errors.New("stored value is corrupt")
)

// Store 键值存储
type Store interface {
	// Get 返回 key 对应的值，key 不存在时 ok 为 false
	Get(key string) (value []byte, ok bool, err error)
	// Set 整体替换 key 对应的值
	Set(key string, value []byte) error
	// Remove 删除 key，不存在时不报错
	Remove(key string) error
}

type prefixed struct {
	inner  Store
	prefix string
}

// Prefixed 把 store 限定在某个客户端命名空间下
func Prefixed(store Store, namespace string) Store {
	return &prefixed{inner: store, prefix: namespace + "/"}
}

func (p *prefixed) Get(key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, ErrKeyRequired
	}
	return p.inner.Get(p.prefix + key)
}

func (p *prefixed) Set(key string, value []byte) error {
	if key == "" {
		return ErrKeyRequired
	}
	return p.inner.Set(p.prefix+key, value)
}

func (p *prefixed) Remove(key string) error {
	if key == "" {
		return ErrKeyRequired
	}
	return p.inner.Remove(p.prefix + key)
}

// ValidNamespace 命名空间只允许字母、数字和 -_
func ValidNamespace(ns string) bool {
	if ns == "" || len(ns) > 64 {
		return false
	}
	return strings.IndexFunc(ns, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_')
	}) < 0
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
