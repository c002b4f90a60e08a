package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/user/eazybee/internal/model"
	"github.com/user/eazybee/internal/storage"
)

// SessionRepository 登录态：eazybee-token 保存原始 token，eazybee-user 保存用户 JSON
type SessionRepository struct {
	store storage.Store
}

func NewSessionRepository(store storage.Store) *SessionRepository {
	return &SessionRepository{store: store}
}

// Load 任一 key 缺失或用户数据损坏时返回 false
func (r *SessionRepository) Load() (string, *model.SessionUser, bool) {
	token, ok, err := r.store.Get(KeyToken)
	if err != nil || !ok || len(token) == 0 {
		return "", nil, false
	}
	raw, ok, err := r.store.Get(KeyUser)
	if err != nil || !ok {
		return "", nil, false
	}
	var user model.SessionUser
	if err := json.Unmarshal(raw, &user); err != nil {
		log.Printf("[Repository] %v: %s: %v", storage.ErrStorageCorrupt, KeyUser, err)
		return "", nil, false
	}
	return string(token), &user, true
}

// Save 保存 token 和用户
func (r *SessionRepository) Save(token string, user *model.SessionUser) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeyUser, err)
	}
	return errors.Join(
		r.store.Set(KeyToken, []byte(token)),
		r.store.Set(KeyUser, data),
	)
}

// SaveUser 只更新用户
func (r *SessionRepository) SaveUser(user *model.SessionUser) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeyUser, err)
	}
	return r.store.Set(KeyUser, data)
}

// SaveToken 只更新 token
func (r *SessionRepository) SaveToken(token string) error {
	return r.store.Set(KeyToken, []byte(token))
}

// Clear 删除登录态
func (r *SessionRepository) Clear() error {
	return errors.Join(r.store.Remove(KeyToken), r.store.Remove(KeyUser))
}
