package repository

import (
	"github.com/user/eazybee/internal/events"
	"github.com/user/eazybee/internal/model"
	"github.com/user/eazybee/internal/storage"
)

type HistoryRepository struct {
	items *Collection[model.WatchHistoryEntry]
	pub   events.Publisher
}

func NewHistoryRepository(store storage.Store, pub events.Publisher) *HistoryRepository {
	return &HistoryRepository{
		items: NewCollection[model.WatchHistoryEntry](store, KeyWatchHistory),
		pub:   pub,
	}
}

// List 观看历史，最近的在前
func (r *HistoryRepository) List() []model.WatchHistoryEntry {
	return r.items.Read()
}

// Record 记录一次观看，同一 id 只保留最新一条并移到最前
func (r *HistoryRepository) Record(entry model.WatchHistoryEntry) (model.WatchHistoryEntry, error) {
	if entry.WatchedAt == "" {
		entry.WatchedAt = model.ISOTime(now())
	}
	err := r.items.UpsertFront(func(e model.WatchHistoryEntry) bool {
		return e.ID == entry.ID
	}, entry)
	return entry, publishAfter(r.pub, events.WatchHistoryUpdate, err)
}

// Remove 删除观看记录
func (r *HistoryRepository) Remove(id int64) (bool, error) {
	n, err := r.items.RemoveWhere(func(e model.WatchHistoryEntry) bool {
		return e.ID == id
	})
	if n == 0 && err == nil {
		return false, nil
	}
	return n > 0, publishAfter(r.pub, events.WatchHistoryUpdate, err)
}

// Clear 清空观看历史
func (r *HistoryRepository) Clear() error {
	return publishAfter(r.pub, events.WatchHistoryUpdate, r.items.Clear())
}
