package storage

import (
	"errors"
	"log"
	"sync"
)

// Session 单个客户端命名空间的存储视图。
// 写入因配额被拒时，被拒的值保留在内存中，本进程内后续读取以它为准。
type Session struct {
	namespace string
	store     Store

	mu       sync.RWMutex
	retained map[string][]byte
}

// NewSession 包装命名空间存储
func NewSession(namespace string, store Store) *Session {
	return &Session{
		namespace: namespace,
		store:     store,
		retained:  make(map[string][]byte),
	}
}

// Namespace 命名空间
func (s *Session) Namespace() string {
	return s.namespace
}

func (s *Session) Get(key string) ([]byte, bool, error) {
	s.mu.RLock()
	v, ok := s.retained[key]
	s.mu.RUnlock()
	if ok {
		return cloneBytes(v), true, nil
	}
	return s.store.Get(key)
}

func (s *Session) Set(key string, value []byte) error {
	err := s.store.Set(key, value)

	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case err == nil:
		delete(s.retained, key)
	case errors.Is(err, ErrQuotaExceeded):
		s.retained[key] = cloneBytes(value)
		log.Printf("[Storage] %s/%s 写入超出配额，仅在当前会话内保留: %v", s.namespace, key, err)
	}
	return err
}

func (s *Session) Remove(key string) error {
	s.mu.Lock()
	delete(s.retained, key)
	s.mu.Unlock()
	return s.store.Remove(key)
}

// Retained 是否存在仅保留在内存中的值
func (s *Session) Retained(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.retained[key]
	return ok
}
