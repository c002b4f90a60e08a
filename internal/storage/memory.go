package storage

import "sync"

// MemoryStore 内存存储，quota > 0 时限制所有值的总字节数
type MemoryStore struct {
	mu    sync.RWMutex
	data  map[string][]byte
	quota int64
	used  int64
}

// NewMemoryStore 创建内存存储
func NewMemoryStore(quota int64) *MemoryStore {
	return &MemoryStore{
		data:  make(map[string][]byte),
		quota: quota,
	}
}

func (s *MemoryStore) Get(key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, ErrKeyRequired
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return cloneBytes(v), ok, nil
}

func (s *MemoryStore) Set(key string, value []byte) error {
	if key == "" {
		return ErrKeyRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	used := s.used - int64(len(s.data[key])) + int64(len(value))
	if s.quota > 0 && used > s.quota {
		return ErrQuotaExceeded
	}
	s.data[key] = cloneBytes(value)
	s.used = used
	return nil
}

func (s *MemoryStore) Remove(key string) error {
	if key == "" {
		return ErrKeyRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.used -= int64(len(s.data[key]))
	delete(s.data, key)
	return nil
}

// Used 当前占用字节数
func (s *MemoryStore) Used() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.used
}
