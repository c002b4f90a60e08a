package repository

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/user/eazybee/internal/model"
	"github.com/user/eazybee/internal/storage"
)

// SettingsRepository 站点设置，保存为单个对象
type SettingsRepository struct {
	store storage.Store
}

func NewSettingsRepository(store storage.Store) *SettingsRepository {
	return &SettingsRepository{store: store}
}

// Load 未保存或损坏时返回默认值
func (r *SettingsRepository) Load(defaults model.SiteSettings) model.SiteSettings {
	raw, ok, err := r.store.Get(KeySettings)
	if err != nil || !ok {
		return defaults
	}
	settings := defaults
	if err := json.Unmarshal(raw, &settings); err != nil {
		log.Printf("[Repository] %v: %s: %v", storage.ErrStorageCorrupt, KeySettings, err)
		return defaults
	}
	return settings
}

func (r *SettingsRepository) Save(settings model.SiteSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeySettings, err)
	}
	return r.store.Set(KeySettings, data)
}
