package storage

import (
	"io"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Manager 按命名空间打开并缓存 Session
type Manager struct {
	backend  Store
	mu       sync.Mutex
	sessions *lru.Cache[string, *Session]
}

// NewManager size 为缓存的命名空间数量上限
func NewManager(backend Store, size int) (*Manager, error) {
	if size <= 0 {
		size = 1024
	}
	cache, err := lru.New[string, *Session](size)
	if err != nil {
		return nil, err
	}
	return &Manager{backend: backend, sessions: cache}, nil
}

// Open 返回命名空间对应的 Session
func (m *Manager) Open(namespace string) (*Session, error) {
	if namespace == "" {
		return nil, ErrNamespaceRequired
	}
	if !ValidNamespace(namespace) {
		return nil, ErrInvalidKey
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions.Get(namespace); ok {
		return s, nil
	}
	s := NewSession(namespace, Prefixed(m.backend, namespace))
	m.sessions.Add(namespace, s)
	return s, nil
}

// Close 关闭底层存储
func (m *Manager) Close() error {
	if c, ok := m.backend.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
