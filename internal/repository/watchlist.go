package repository

import (
	"errors"
	"time"

	"github.com/user/eazybee/internal/events"
	"github.com/user/eazybee/internal/model"
	"github.com/user/eazybee/internal/storage"
)

var now = time.Now

// publishAfter 写入成功或仅超出配额时发布通知
func publishAfter(pub events.Publisher, topic events.Topic, err error) error {
	if err == nil || errors.Is(err, storage.ErrQuotaExceeded) {
		pub.Publish(topic)
	}
	return err
}

type WatchlistRepository struct {
	items *Collection[model.WatchlistEntry]
	pub   events.Publisher
}

func NewWatchlistRepository(store storage.Store, pub events.Publisher) *WatchlistRepository {
	return &WatchlistRepository{
		items: NewCollection[model.WatchlistEntry](store, KeyWatchlist),
		pub:   pub,
	}
}

func sameMedia(id int64, mediaType string) func(model.WatchlistEntry) bool {
	return func(e model.WatchlistEntry) bool {
		return e.ID == id && e.MediaType == mediaType
	}
}

// List 按加入顺序返回待看清单
func (r *WatchlistRepository) List() []model.WatchlistEntry {
	return r.items.Read()
}

// Contains 是否已在待看清单
func (r *WatchlistRepository) Contains(id int64, mediaType string) bool {
	_, ok := r.items.Find(sameMedia(id, mediaType))
	return ok
}

// Toggle 已存在则移除，否则追加到末尾，返回操作后是否在清单中
func (r *WatchlistRepository) Toggle(entry model.WatchlistEntry) (bool, error) {
	present, err := r.items.ToggleMembership(sameMedia(entry.ID, entry.MediaType), entry)
	return present, publishAfter(r.pub, events.WatchlistUpdate, err)
}

// Remove 从待看清单移除
func (r *WatchlistRepository) Remove(id int64, mediaType string) (bool, error) {
	n, err := r.items.RemoveWhere(sameMedia(id, mediaType))
	if n == 0 && err == nil {
		return false, nil
	}
	return n > 0, publishAfter(r.pub, events.WatchlistUpdate, err)
}
